package tscore

import "testing"

func Test_Format_Primitives(t *testing.T) {
	r := NewRegistry()
	cases := map[NativeKind]string{
		NativeNumber:  "number",
		NativeString:  "string",
		NativeBoolean: "boolean",
		NativeNull:    "null",
		NativeVoid:    "undefined",
		NativeUnknown: "?",
		NativeAll:     "*",
	}
	for k, want := range cases {
		if got := r.TypeString(r.GetNative(k)); got != want {
			t.Fatalf("%v: got %q want %q", k, got, want)
		}
	}
}

func Test_Format_Union(t *testing.T) {
	r := NewRegistry()
	u := r.CreateUnion(r.GetNative(NativeBoolean), r.GetNative(NativeNumber), r.GetNative(NativeString))
	if got := r.TypeString(u); got != "(boolean|number|string)" {
		t.Fatalf("got %q", got)
	}
}

func Test_Format_Function(t *testing.T) {
	r := NewRegistry()
	fn := r.CreateFunction("", []TypeID{r.GetNative(NativeNumber), r.GetNative(NativeString)}, false, r.GetNative(NativeBoolean), noTypeID, false, false)
	if got := r.TypeString(fn); got != "function (number, string): boolean" {
		t.Fatalf("got %q", got)
	}
}

func Test_Format_FunctionWithExplicitThis(t *testing.T) {
	r := NewRegistry()
	this := r.CreateObject("Ctx", noTypeID)
	fn := r.CreateFunction("", nil, false, r.GetNative(NativeVoid), this, false, false)
	if got := r.TypeString(fn); got != "function (this:Ctx): undefined" {
		t.Fatalf("got %q", got)
	}
}

func Test_Format_Instance(t *testing.T) {
	r := NewRegistry()
	fn := r.CreateFunction("Foo", nil, false, r.GetNative(NativeVoid), noTypeID, true, false)
	inst := r.Type(fn).Instance
	if got := r.TypeString(inst); got != "Foo" {
		t.Fatalf("got %q", got)
	}
}

func Test_Format_EnumAndElement(t *testing.T) {
	r := NewRegistry()
	num := r.GetNative(NativeNumber)
	enumID := r.CreateEnum("Foo", num, []string{"BAR"})
	if got := r.TypeString(enumID); got != "enum{Foo}" {
		t.Fatalf("got %q", got)
	}
	elem := r.Type(enumID).Props["BAR"].Type
	if got := r.TypeString(elem); got != "Foo.<number>" {
		t.Fatalf("got %q", got)
	}
}

func Test_Format_Record(t *testing.T) {
	r := NewRegistry()
	rec := r.CreateRecord([]Property{
		{Name: "k1", Type: r.GetNative(NativeNumber), Kind: PropDeclared},
		{Name: "k2", Type: r.GetNative(NativeString), Kind: PropDeclared},
	})
	if got := r.TypeString(rec); got != "{ k1 : number, k2 : string }" {
		t.Fatalf("got %q", got)
	}
}

func Test_Format_NullableUnion(t *testing.T) {
	r := NewRegistry()
	got := r.TypeString(r.CreateUnion(r.GetNative(NativeNumber), r.GetNative(NativeNull)))
	if got != "(null|number)" {
		t.Fatalf("got %q", got)
	}
}
