package tscore

import "testing"

func Test_Union_CanonicalOrderIndependent(t *testing.T) {
	r := NewRegistry()
	num, str, b := r.GetNative(NativeNumber), r.GetNative(NativeString), r.GetNative(NativeBoolean)

	u1 := r.CreateUnion(num, str, b)
	u2 := r.CreateUnion(b, num, str)
	u3 := r.CreateUnion(str, b, num)

	if u1 != u2 || u2 != u3 {
		t.Fatalf("union construction not permutation-invariant: %v %v %v", u1, u2, u3)
	}
	if r.TypeString(u1) != "(boolean|number|string)" {
		t.Fatalf("unexpected union rendering: %s", r.TypeString(u1))
	}
}

func Test_Union_FlattensNested(t *testing.T) {
	r := NewRegistry()
	num, str, b := r.GetNative(NativeNumber), r.GetNative(NativeString), r.GetNative(NativeBoolean)
	inner := r.CreateUnion(num, str)
	outer := r.CreateUnion(inner, b)
	if r.TypeString(outer) != "(boolean|number|string)" {
		t.Fatalf("expected flattened union, got %s", r.TypeString(outer))
	}
	if r.Type(outer).Kind != KindUnion {
		t.Fatalf("expected a union kind")
	}
	for _, alt := range r.Type(outer).Alternates {
		if r.Type(alt).Kind == KindUnion {
			t.Fatalf("union must not contain a nested union")
		}
	}
}

func Test_Union_DedupesAndAllAbsorbs(t *testing.T) {
	r := NewRegistry()
	num := r.GetNative(NativeNumber)
	all := r.GetNative(NativeAll)

	if got := r.CreateUnion(num, num); got != num {
		t.Fatalf("duplicate alternates should collapse to the single type")
	}
	if got := r.CreateUnion(num, all); got != all {
		t.Fatalf("All should absorb any union containing it")
	}
}

func Test_Union_UnknownDominates(t *testing.T) {
	r := NewRegistry()
	num := r.GetNative(NativeNumber)
	unk := r.GetNative(NativeUnknown)
	if got := r.CreateUnion(num, unk); got != unk {
		t.Fatalf("Unknown should dominate any union containing it")
	}
}

func Test_Union_NominalIdentityFirstWins(t *testing.T) {
	r := NewRegistry()
	a := r.CreateObject("Shared", noTypeID)
	b := r.CreateObject("Shared", noTypeID)
	if a != b {
		t.Fatalf("creating the same qualified name twice should return the same type")
	}
}

func Test_Union_NullableRendersWithNull(t *testing.T) {
	r := NewRegistry()
	num, null := r.GetNative(NativeNumber), r.GetNative(NativeNull)
	got := r.CreateUnion(num, null)
	if r.TypeString(got) != "(null|number)" {
		t.Fatalf("expected nullable rendering, got %s", r.TypeString(got))
	}
}
