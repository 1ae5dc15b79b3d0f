package tscore

import "testing"

func Test_Registry_CtorHasExactlyOnePrototypeAndInstance(t *testing.T) {
	r := NewRegistry()
	fnID := r.CreateFunction("Foo", nil, false, r.GetNative(NativeUnknown), noTypeID, true, false)
	fn := r.Type(fnID)

	if fn.Prototype == noTypeID || fn.Instance == noTypeID {
		t.Fatalf("constructor must have both a Prototype and an Instance")
	}
	if r.Type(fn.Prototype).Owner != fnID {
		t.Fatalf("prototype's owner must be the constructor")
	}
	if r.Type(fn.Instance).Owner != fnID {
		t.Fatalf("instance's owner must be the constructor")
	}
	if r.Type(fn.Instance).ImplicitProto != fn.Prototype {
		t.Fatalf("instance's implicit prototype must be the constructor's prototype")
	}
}

func Test_Registry_PropertyReverseIndexClosure(t *testing.T) {
	r := NewRegistry()
	obj := r.CreateObject("Foo", noTypeID)
	r.DeclareProperty(obj, "bar", r.GetNative(NativeNumber), PropDeclared, false)

	found := false
	for _, id := range r.TypesWithProperty("bar") {
		if id == obj {
			found = true
		}
	}
	if !found {
		t.Fatalf("types_with_property(bar) must contain the declaring type")
	}
}

func Test_Registry_DeclaredShadowsInferred(t *testing.T) {
	r := NewRegistry()
	obj := r.CreateObject("Foo", noTypeID)

	r.DeclareProperty(obj, "x", r.GetNative(NativeNumber), PropInferred, false)
	r.DeclareProperty(obj, "x", r.GetNative(NativeString), PropDeclared, false)
	// a further inferred write must not overwrite the now-declared property.
	r.DeclareProperty(obj, "x", r.GetNative(NativeBoolean), PropInferred, false)

	got := r.GetPropertyType(obj, "x")
	if got != r.GetNative(NativeString) {
		t.Fatalf("declared property should shadow inferred writes, got %s", r.TypeString(got))
	}
}

func Test_Registry_InferredPropertiesJoinAcrossWrites(t *testing.T) {
	r := NewRegistry()
	obj := r.CreateObject("Foo", noTypeID)

	r.DeclareProperty(obj, "x", r.GetNative(NativeNumber), PropInferred, false)
	r.DeclareProperty(obj, "x", r.GetNative(NativeString), PropInferred, false)

	got := r.GetPropertyType(obj, "x")
	if r.TypeString(got) != "(number|string)" {
		t.Fatalf("expected joined inferred type, got %s", r.TypeString(got))
	}
}

func Test_Registry_ExternFlagPreservedAcrossMerges(t *testing.T) {
	r := NewRegistry()
	obj := r.CreateObject("Foo", noTypeID)

	r.DeclareProperty(obj, "x", r.GetNative(NativeNumber), PropInferred, true)
	r.DeclareProperty(obj, "x", r.GetNative(NativeString), PropInferred, false)

	if !r.Type(obj).Props["x"].FromExtern {
		t.Fatalf("extern flag must be preserved once set, even after a non-extern merge")
	}
}

func Test_Registry_GetPropertyTypeWalksPrototypeChain(t *testing.T) {
	r := NewRegistry()
	base := r.CreateObject("Base", noTypeID)
	r.DeclareProperty(base, "x", r.GetNative(NativeNumber), PropDeclared, false)
	derived := r.CreateObject("Derived", base)

	got := r.GetPropertyType(derived, "x")
	if got != r.GetNative(NativeNumber) {
		t.Fatalf("expected to inherit x through the prototype chain, got %s", r.TypeString(got))
	}
}

func Test_Registry_MissingPropertyIsUnknown(t *testing.T) {
	r := NewRegistry()
	obj := r.CreateObject("Foo", noTypeID)
	got := r.GetPropertyType(obj, "nope")
	if got != r.GetNative(NativeUnknown) {
		t.Fatalf("missing property should resolve to Unknown")
	}
}

func Test_Registry_NamedResolvesAfterLateDeclaration(t *testing.T) {
	r := NewRegistry()
	named := r.CreateNamed("NotYetSeen")
	if r.Type(named).Kind != KindNamed {
		t.Fatalf("forward reference should stay Named until resolved")
	}

	real := r.CreateObject("NotYetSeen", noTypeID)
	resolved, ok := r.ResolveNamed("NotYetSeen")
	if !ok || resolved != real {
		t.Fatalf("NotYetSeen should now resolve to the declared object")
	}
	if r.deref(named) != real {
		t.Fatalf("deref should now follow the Named placeholder to the real type")
	}
}
