package tscore

import "testing"

func Test_Subtype_UnionOnLeftRequiresAll(t *testing.T) {
	r := NewRegistry()
	num, str, all3 := r.GetNative(NativeNumber), r.GetNative(NativeString), r.GetNative(NativeBoolean)
	u := r.CreateUnion(num, str)

	wide := r.CreateUnion(num, str, all3)
	if !r.IsSubtype(u, wide) {
		t.Fatalf("(number|string) should be <: (number|string|boolean)")
	}
	if r.IsSubtype(u, num) {
		t.Fatalf("(number|string) must not be <: number alone")
	}
}

func Test_Subtype_UnionOnRightRequiresSome(t *testing.T) {
	r := NewRegistry()
	num, str := r.GetNative(NativeNumber), r.GetNative(NativeString)
	u := r.CreateUnion(num, str)
	if !r.IsSubtype(num, u) {
		t.Fatalf("number should be <: (number|string)")
	}
}

func Test_Subtype_EnumElementIsSubtypeOfElementType(t *testing.T) {
	r := NewRegistry()
	num := r.GetNative(NativeNumber)
	enumID := r.CreateEnum("Foo", num, []string{"BAR"})
	elem := r.Type(enumID).Props["BAR"].Type

	if !r.IsSubtype(elem, num) {
		t.Fatalf("EnumElement<number> should be <: number")
	}
	if r.IsSubtype(enumID, num) {
		t.Fatalf("the enum container itself must not be <: its element type")
	}
}

func Test_Subtype_BoxedNotSubtypeOfPrimitive(t *testing.T) {
	r := NewRegistry()
	num, numObj := r.GetNative(NativeNumber), r.GetNative(NativeNumberObject)
	if r.IsSubtype(numObj, num) {
		t.Fatalf("NumberObject must not be <: number (autoboxing is not subtyping, SPEC_FULL §12.3)")
	}
	if r.IsSubtype(num, numObj) {
		t.Fatalf("number must not be <: NumberObject")
	}
}

func Test_Subtype_FunctionContravariantParams(t *testing.T) {
	r := NewRegistry()
	all := r.GetNative(NativeAll)
	num := r.GetNative(NativeNumber)
	void := r.GetNative(NativeVoid)

	// function(*): void <: function(number): void  — a function that
	// accepts anything can be used where one that only accepts number is
	// expected, because it also accepts number.
	narrow := r.CreateFunction("", []TypeID{num}, false, void, noTypeID, false, false)
	wide := r.CreateFunction("", []TypeID{all}, false, void, noTypeID, false, false)

	if !r.IsSubtype(wide, narrow) {
		t.Fatalf("function(*): void should be <: function(number): void (contravariance)")
	}
	if r.IsSubtype(narrow, wide) {
		t.Fatalf("function(number): void must not be <: function(*): void")
	}
}

func Test_Subtype_FunctionCovariantReturn(t *testing.T) {
	r := NewRegistry()
	base := r.CreateObject("Base3", noTypeID)
	sub := r.CreateObject("Sub3", base)

	returnsSub := r.CreateFunction("", nil, false, sub, noTypeID, false, false)
	returnsBase := r.CreateFunction("", nil, false, base, noTypeID, false, false)

	if !r.IsSubtype(returnsSub, returnsBase) {
		t.Fatalf("a function returning Sub3 should be <: one returning Base3 (covariance)")
	}
}

func Test_Subtype_InterfaceImplementation(t *testing.T) {
	r := NewRegistry()
	ifaceFn := r.CreateFunction("Comparable", nil, false, r.GetNative(NativeUnknown), noTypeID, false, true)
	iface := r.Type(ifaceFn)

	implFn := r.CreateFunction("Thing", nil, false, r.GetNative(NativeUnknown), noTypeID, true, false)
	r.Type(implFn).ImplementsIface = []TypeID{ifaceFn}

	instance := r.Type(implFn).Instance
	if !r.IsSubtype(instance, iface.Instance) {
		t.Fatalf("Thing instances should be <: Comparable (declared @implements)")
	}
}

func Test_Subtype_RecordStructural(t *testing.T) {
	r := NewRegistry()
	rec := r.CreateRecord([]Property{
		{Name: "x", Type: r.GetNative(NativeNumber), Kind: PropDeclared},
	})
	obj := r.CreateObject("HasX", noTypeID)
	r.DeclareProperty(obj, "x", r.GetNative(NativeNumber), PropDeclared, false)

	if !r.IsSubtype(obj, rec) {
		t.Fatalf("an object with a matching field should be <: the structural record")
	}

	missing := r.CreateObject("Empty", noTypeID)
	if r.IsSubtype(missing, rec) {
		t.Fatalf("an object missing the field must not be <: the record")
	}
}
