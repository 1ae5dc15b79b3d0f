package tscore

import "testing"

func Test_Scope_DeclareAndLookup(t *testing.T) {
	r := NewRegistry()
	s := NewScope(nil)
	num := r.GetNative(NativeNumber)
	s.Declare(r, "x", num, true, nil)

	v := s.Lookup("x")
	if v == nil || v.Type != num {
		t.Fatalf("expected to find x with type number")
	}
}

func Test_Scope_LookupWalksToParent(t *testing.T) {
	r := NewRegistry()
	outer := NewScope(nil)
	inner := NewScope(outer)
	str := r.GetNative(NativeString)
	outer.Declare(r, "y", str, true, nil)

	if v := inner.Lookup("y"); v == nil || v.Type != str {
		t.Fatalf("inner scope should see outer declaration")
	}
	if v := inner.LookupLocal("y"); v != nil {
		t.Fatalf("LookupLocal must not walk to parent")
	}
}

func Test_Scope_RedeclarationMergesByJoin(t *testing.T) {
	r := NewRegistry()
	s := NewScope(nil)
	num, str := r.GetNative(NativeNumber), r.GetNative(NativeString)

	s.Declare(r, "x", num, false, nil)
	v := s.Declare(r, "x", str, false, nil)

	if r.TypeString(v.Type) != "(number|string)" {
		t.Fatalf("expected joined type, got %s", r.TypeString(v.Type))
	}
	if v.Declared {
		t.Fatalf("var should remain inferred when neither declaration is annotated")
	}
}

func Test_Scope_RedeclarationAnnotatedMarksDeclared(t *testing.T) {
	r := NewRegistry()
	s := NewScope(nil)
	num := r.GetNative(NativeNumber)

	s.Declare(r, "x", num, false, nil)
	v := s.Declare(r, "x", num, true, nil)

	if !v.Declared {
		t.Fatalf("a subsequent annotated declaration should mark the var declared")
	}
}

func Test_Scope_RootAndIsGlobal(t *testing.T) {
	root := NewScope(nil)
	child := NewScope(root)
	grandchild := NewScope(child)

	if !root.IsGlobal() {
		t.Fatalf("root should report IsGlobal")
	}
	if grandchild.IsGlobal() {
		t.Fatalf("grandchild should not report IsGlobal")
	}
	if grandchild.Root() != root {
		t.Fatalf("Root() should walk to the outermost scope")
	}
}
