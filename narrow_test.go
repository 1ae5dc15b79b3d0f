package tscore

import "testing"

func Test_Narrow_RestrictNotNullOrVoid(t *testing.T) {
	r := NewRegistry()
	num, null, void := r.GetNative(NativeNumber), r.GetNative(NativeNull), r.GetNative(NativeVoid)
	u := r.CreateUnion(num, null, void)

	got := r.RestrictNotNullOrVoid(u)
	if got != num {
		t.Fatalf("expected bare number after stripping null/void, got %s", r.TypeString(got))
	}
}

func Test_Narrow_PossibleToBooleanOutcomes(t *testing.T) {
	r := NewRegistry()
	cases := []struct {
		kind NativeKind
		want BoolOutcome
	}{
		{NativeNull, OutcomeFalse},
		{NativeVoid, OutcomeFalse},
		{NativeNumber, OutcomeTrue | OutcomeFalse},
		{NativeObject, OutcomeTrue},
	}
	for _, c := range cases {
		got := r.PossibleToBooleanOutcomes(r.GetNative(c.kind))
		if got != c.want {
			t.Fatalf("%v: got %v want %v", c.kind, got, c.want)
		}
	}
}

func Test_Narrow_RestrictByTruthy(t *testing.T) {
	r := NewRegistry()
	num, null, void := r.GetNative(NativeNumber), r.GetNative(NativeNull), r.GetNative(NativeVoid)
	obj := r.CreateObject("Obj", noTypeID)
	u := r.CreateUnion(num, null, void, obj)

	// objects are always truthy, so they drop out of the falsy restriction;
	// number/null/undefined can all be falsy (0, null, undefined) and stay.
	falsy := r.RestrictByTruthy(u, false)
	if r.TypeString(falsy) != "(null|number|undefined)" {
		t.Fatalf("unexpected falsy restriction: %s", r.TypeString(falsy))
	}

	// null/undefined can never be truthy, so only number and the object remain.
	truthy := r.RestrictByTruthy(u, true)
	if r.TypeString(truthy) != "(Obj|number)" {
		t.Fatalf("unexpected truthy restriction: %s", r.TypeString(truthy))
	}
}

func Test_Narrow_RestrictByTypeof(t *testing.T) {
	r := NewRegistry()
	num, str := r.GetNative(NativeNumber), r.GetNative(NativeString)
	u := r.CreateUnion(num, str)

	got := r.RestrictByTypeof(u, "number")
	if got != num {
		t.Fatalf("expected number, got %s", r.TypeString(got))
	}

	none := r.RestrictByTypeof(num, "string")
	if r.Type(none).Kind != KindNo {
		t.Fatalf("expected No when typeof tag does not match, got %s", r.TypeString(none))
	}
}

func Test_Narrow_TypeofNullIsObject(t *testing.T) {
	r := NewRegistry()
	null := r.GetNative(NativeNull)
	if r.typeofTag(null) != "object" {
		t.Fatalf(`typeof null should be "object"`)
	}
}
