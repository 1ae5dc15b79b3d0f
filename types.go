// types.go
//
// Type lattice values.
//
// Every Type is a node owned by exactly one *Registry. Identity equality on
// *Type implies semantic equality, with the single exception of Named,
// whose identity is a forward pointer that delegates equality to whatever
// it resolves to.
//
// After construction a Type changes only in these places: property maps on
// object-like types (declared/inferred properties may be added over the
// lifetime of a compilation unit, see Registry.DeclareProperty), Named's
// referent (filled in lazily by Registry.deref), a constructor's
// Prototype/Instance handles (set by Registry.CreateFunction), and the
// ImplicitProto/ImplementsIface links the scope creator wires for
// @extends, @implements, prototype literals and GlobalThis.
package tscore

// Kind tags every Type variant. Kept exhaustive so type-switches elsewhere
// get compiler-enforced totality when a new Kind is added.
type Kind int

const (
	KindPrimitive Kind = iota
	KindBoxed
	KindObject
	KindFunction
	KindFunctionPrototype
	KindInstanceOf
	KindInterface
	KindEnum
	KindEnumElement
	KindRecord
	KindNamed
	KindUnion
	KindTemplate
	KindAll
	KindNo
	KindNoObject
	KindUnknown
)

// PrimitiveKind distinguishes the five value primitives.
type PrimitiveKind int

const (
	PrimNumber PrimitiveKind = iota
	PrimString
	PrimBoolean
	PrimNull
	PrimVoid
)

// BoxedKind distinguishes the three boxed primitive wrappers.
type BoxedKind int

const (
	BoxedNumber BoxedKind = iota
	BoxedString
	BoxedBoolean
)

// TypeID is an arena handle. Identity equality on TypeID is semantic
// equality for every Kind except Named (see Registry.ResolveNamed).
type TypeID int

const noTypeID TypeID = -1

// PropKind distinguishes a declared (explicit annotation) property from an
// inferred (assigned-from-expression) one. Declared shadows inferred
// (invariant 3).
type PropKind int

const (
	PropDeclared PropKind = iota
	PropInferred
)

// Property is one entry of an Object/Function's property map.
type Property struct {
	Name       string
	Type       TypeID
	Kind       PropKind
	FromExtern bool // invariant 4: preserved across merges
}

// Type is the tagged union backing every lattice element. Only the fields
// relevant to Kind are populated; the rest are zero. A *Type is never
// copied — always passed and compared by its owning TypeID.
type Type struct {
	id   TypeID
	Kind Kind

	// Primitive / Boxed
	Prim  PrimitiveKind
	Boxed BoxedKind

	// Object (and, by embedding, Function / FunctionPrototype / InstanceOf /
	// Interface / Enum container / Record-as-object uses)
	Name            string // qualified name, "" if anonymous
	ImplicitProto   TypeID // noTypeID if none
	Ctor            TypeID // back-reference to owning Function, noTypeID if none
	Props           map[string]*Property
	PropOrder       []string // declaration order, for Record rendering and stable iteration
	Doc             *DocInfo // optional, informational only (SPEC_FULL §3)
	ImplementsIface []TypeID // declared, transitively-expanded at subtype-check time

	// Function (Kind == KindFunction)
	Params    []TypeID
	Variadic  bool
	Ret       TypeID
	ThisType  TypeID
	IsCtor    bool
	IsIface   bool
	Prototype TypeID // the paired FunctionPrototype
	Instance  TypeID // the paired InstanceOf, if IsCtor or IsIface

	// FunctionPrototype / InstanceOf (Kind == KindFunctionPrototype/KindInstanceOf)
	Owner TypeID // the Function this prototype/instance belongs to

	// Enum (Kind == KindEnum)
	ElemType TypeID
	// Enum's Props hold EnumElement<E> members, keyed by member name.

	// EnumElement (Kind == KindEnumElement)
	EnumOwner TypeID // the Enum type this element belongs to

	// Record (Kind == KindRecord) reuses Props/PropOrder for its fixed schema.

	// Named (Kind == KindNamed)
	QualifiedName string
	Resolved      TypeID // noTypeID until Registry.deref resolves it

	// Union (Kind == KindUnion)
	Alternates []TypeID // canonical: sorted by textual form, flattened, deduped

	// Template (Kind == KindTemplate)
	TemplateName string
}

func (t *Type) isObjectLike() bool {
	switch t.Kind {
	case KindObject, KindFunction, KindFunctionPrototype, KindInstanceOf, KindInterface, KindEnum, KindRecord:
		return true
	default:
		return false
	}
}
