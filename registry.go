// registry.go
//
// TypeRegistry: the sole constructor of Type values (spec invariant 1).
// Implemented as an arena, per the cyclic-type-graph design note: every Type
// is a node behind a TypeID handle, and back-references (Function <->
// Prototype <-> InstanceOf) are handles, not pointers, so cycles are just
// data. Identity equality on TypeID is semantic equality for every Kind
// except Named.
//
// One Registry per compilation unit (§5: "each compilation unit must own its
// own registry... types must not be shared across registries").
package tscore

// NativeKind enumerates the registry's built-in singletons, created once at
// NewRegistry time; GetNative is total over this set.
type NativeKind int

const (
	NativeNumber NativeKind = iota
	NativeString
	NativeBoolean
	NativeNull
	NativeVoid
	NativeNumberObject
	NativeStringObject
	NativeBooleanObject
	NativeAll
	NativeNo
	NativeNoObject
	NativeUnknown
	NativeObject // anonymous base Object type, implicit prototype of all objects
	NativeNumberOrObject
	NativeStringOrObject
	NativeBooleanOrObject
)

// Registry is a per-compilation-unit canonicalizing store for all Type
// values. Not safe for concurrent use (§5: single-threaded core).
type Registry struct {
	types   []*Type
	natives map[NativeKind]TypeID
	named   map[string]TypeID // qualified name -> Named or resolved nominal
	propIdx map[string]map[TypeID]struct{}
	unions  map[string]TypeID // canonical sorted-alternate key -> interned union
}

// NewRegistry creates a fresh registry with all native singletons realized.
func NewRegistry() *Registry {
	r := &Registry{
		named:   make(map[string]TypeID),
		propIdx: make(map[string]map[TypeID]struct{}),
		unions:  make(map[string]TypeID),
	}
	r.natives = make(map[NativeKind]TypeID)
	r.initNatives()
	return r
}

func (r *Registry) alloc(t *Type) TypeID {
	id := TypeID(len(r.types))
	t.id = id
	r.types = append(r.types, t)
	return id
}

// Type dereferences a handle. Panics on an invalid handle — that is an
// internal invariant violation, never a consequence of user input (§7).
func (r *Registry) Type(id TypeID) *Type {
	if id < 0 || int(id) >= len(r.types) {
		panic(internalError{"registry: invalid TypeID"})
	}
	return r.types[id]
}

func (r *Registry) initNatives() {
	mk := func(k Kind) TypeID { return r.alloc(&Type{Kind: k}) }

	r.natives[NativeAll] = mk(KindAll)
	r.natives[NativeNo] = mk(KindNo)
	r.natives[NativeNoObject] = mk(KindNoObject)
	r.natives[NativeUnknown] = mk(KindUnknown)

	r.natives[NativeNumber] = r.alloc(&Type{Kind: KindPrimitive, Prim: PrimNumber})
	r.natives[NativeString] = r.alloc(&Type{Kind: KindPrimitive, Prim: PrimString})
	r.natives[NativeBoolean] = r.alloc(&Type{Kind: KindPrimitive, Prim: PrimBoolean})
	r.natives[NativeNull] = r.alloc(&Type{Kind: KindPrimitive, Prim: PrimNull})
	r.natives[NativeVoid] = r.alloc(&Type{Kind: KindPrimitive, Prim: PrimVoid})

	r.natives[NativeNumberObject] = r.alloc(&Type{Kind: KindBoxed, Boxed: BoxedNumber, ImplicitProto: noTypeID})
	r.natives[NativeStringObject] = r.alloc(&Type{Kind: KindBoxed, Boxed: BoxedString, ImplicitProto: noTypeID})
	r.natives[NativeBooleanObject] = r.alloc(&Type{Kind: KindBoxed, Boxed: BoxedBoolean, ImplicitProto: noTypeID})

	r.natives[NativeObject] = r.alloc(&Type{Kind: KindObject, ImplicitProto: noTypeID, Ctor: noTypeID, Props: map[string]*Property{}})

	r.natives[NativeNumberOrObject] = r.CreateUnion(r.natives[NativeNumber], r.natives[NativeNumberObject])
	r.natives[NativeStringOrObject] = r.CreateUnion(r.natives[NativeString], r.natives[NativeStringObject])
	r.natives[NativeBooleanOrObject] = r.CreateUnion(r.natives[NativeBoolean], r.natives[NativeBooleanObject])
}

// GetNative returns the singleton for a built-in kind. Total: every
// NativeKind was realized in NewRegistry.
func (r *Registry) GetNative(k NativeKind) TypeID {
	id, ok := r.natives[k]
	if !ok {
		panic(internalError{"registry: unrealized native kind"})
	}
	return id
}

// CreateObject creates a fresh anonymous or (if name != "") nominal object
// type. A named object is registered by qualified name (invariant 6:
// creating the same qualified name twice returns the first one).
func (r *Registry) CreateObject(name string, implicitProto TypeID) TypeID {
	if name != "" {
		if existing, ok := r.named[name]; ok {
			return existing
		}
	}
	proto := implicitProto
	if proto == noTypeID {
		proto = r.GetNative(NativeObject)
	}
	id := r.alloc(&Type{
		Kind:          KindObject,
		Name:          name,
		ImplicitProto: proto,
		Ctor:          noTypeID,
		Props:         map[string]*Property{},
	})
	if name != "" {
		r.named[name] = id
	}
	return id
}

// CreateFunction creates a function type and, when isCtor or isIface, its
// paired Instance and Prototype (invariant 2: exactly one of each).
func (r *Registry) CreateFunction(name string, params []TypeID, variadic bool, ret, thisType TypeID, isCtor, isIface bool) TypeID {
	if name != "" {
		if existing, ok := r.named[name]; ok {
			return existing
		}
	}
	fnID := r.alloc(&Type{
		Kind:          KindFunction,
		Name:          name,
		Params:        params,
		Variadic:      variadic,
		Ret:           ret,
		ThisType:      thisType,
		IsCtor:        isCtor,
		IsIface:       isIface,
		Prototype:     noTypeID,
		Instance:      noTypeID,
		Ctor:          noTypeID,
		ImplicitProto: r.GetNative(NativeObject),
		Props:         map[string]*Property{},
	})
	if name != "" {
		r.named[name] = fnID
	}
	if isCtor || isIface {
		protoName := ""
		if name != "" {
			protoName = name + ".prototype"
		}
		protoID := r.alloc(&Type{
			Kind:          KindFunctionPrototype,
			Name:          protoName,
			Owner:         fnID,
			Ctor:          noTypeID,
			ImplicitProto: r.GetNative(NativeObject),
			Props:         map[string]*Property{},
		})
		instID := r.alloc(&Type{
			Kind:          KindInstanceOf,
			Name:          name,
			Owner:         fnID,
			Ctor:          noTypeID,
			ImplicitProto: protoID,
			Props:         map[string]*Property{},
		})
		fn := r.Type(fnID)
		fn.Prototype = protoID
		fn.Instance = instID
		if name != "" {
			// the constructor's qualified name maps to the Function; the
			// Instance is reached through the Function's Instance field.
			r.named[name] = fnID
		}
	}
	return fnID
}

// CreateEnum creates an Enum type and its EnumElement<E> member properties.
func (r *Registry) CreateEnum(name string, elemType TypeID, members []string) TypeID {
	if name != "" {
		if existing, ok := r.named[name]; ok {
			return existing
		}
	}
	id := r.alloc(&Type{
		Kind:          KindEnum,
		Name:          name,
		ElemType:      elemType,
		Ctor:          noTypeID,
		ImplicitProto: noTypeID,
		Props:         map[string]*Property{},
	})
	for _, m := range members {
		elID := r.alloc(&Type{Kind: KindEnumElement, EnumOwner: id, ElemType: elemType})
		r.DeclareProperty(id, m, elID, PropDeclared, false)
	}
	if name != "" {
		r.named[name] = id
	}
	return id
}

// CreateRecord creates a structural Record type with a fixed, ordered
// property schema.
func (r *Registry) CreateRecord(fields []Property) TypeID {
	props := map[string]*Property{}
	order := make([]string, 0, len(fields))
	for i := range fields {
		f := fields[i]
		props[f.Name] = &f
		order = append(order, f.Name)
	}
	return r.alloc(&Type{Kind: KindRecord, Ctor: noTypeID, ImplicitProto: noTypeID, Props: props, PropOrder: order})
}

// CreateNamed returns a Named placeholder for a qualified name, or the
// already-resolved type if one is registered under that name.
func (r *Registry) CreateNamed(qualifiedName string) TypeID {
	if existing, ok := r.named[qualifiedName]; ok {
		return existing
	}
	id := r.alloc(&Type{Kind: KindNamed, QualifiedName: qualifiedName, Resolved: noTypeID})
	return id
}

// CreateTemplate returns the Template placeholder for a @template parameter
// name, canonicalized per declaration site so repeated references to the
// same @template T within one signature share a single TypeID. Keyed in a
// namespace distinct from r.named's nominal names (a single-letter template
// like "T" must never collide with a same-named class).
func (r *Registry) CreateTemplate(name string) TypeID {
	key := "$template$" + name
	if existing, ok := r.named[key]; ok {
		return existing
	}
	id := r.alloc(&Type{Kind: KindTemplate, TemplateName: name})
	r.named[key] = id
	return id
}

// ResolveNamed looks up a qualified name against everything registered so
// far. It does not modify any Named placeholder; deref caches the result
// in the placeholder the first time it resolves.
func (r *Registry) ResolveNamed(qualifiedName string) (TypeID, bool) {
	id, ok := r.named[qualifiedName]
	if !ok {
		return noTypeID, false
	}
	t := r.Type(id)
	if t.Kind == KindNamed {
		if t.Resolved != noTypeID {
			return t.Resolved, true
		}
		return noTypeID, false
	}
	return id, true
}

// BindAlias makes `alias` resolve to the same TypeID as `target` (identity
// sharing, per §4.D alias handling — aliases are not distinct types).
func (r *Registry) BindAlias(alias string, target TypeID) {
	r.named[alias] = target
}

// deref follows a Named type to its ultimate referent, caching each
// resolution in the placeholder. An unresolved Named is returned as is;
// callers treat it as Unknown for lattice purposes while it retains its
// name for diagnostics.
func (r *Registry) deref(id TypeID) TypeID {
	t := r.Type(id)
	for t.Kind == KindNamed {
		if t.Resolved == noTypeID {
			if resolved, ok := r.ResolveNamed(t.QualifiedName); ok {
				t.Resolved = resolved
			} else {
				return id // stays Named; caller treats as Unknown for lattice purposes
			}
		}
		id = t.Resolved
		t = r.Type(id)
	}
	return id
}

// DeclareProperty adds or updates a property on an object-like type,
// updating the reverse index (invariant 7). declared shadows inferred
// (invariant 3): a PropDeclared write replaces an inferred property, and a
// later PropDeclared write to an already-declared property is ignored
// (first wins); a PropInferred write only applies if no declared property
// of that name exists yet, in which case repeated inferred writes join
// with the existing inferred type.
func (r *Registry) DeclareProperty(owner TypeID, name string, propType TypeID, kind PropKind, fromExtern bool) {
	t := r.Type(owner)
	if t.Props == nil {
		t.Props = map[string]*Property{}
	}
	if existing, ok := t.Props[name]; ok {
		switch {
		case existing.Kind == PropDeclared && kind == PropDeclared:
			// duplicate declared: first wins (open question, §9), in externs
			// and sources alike; agreement of the two types is not checked.
		case existing.Kind == PropDeclared && kind == PropInferred:
			// declared shadows inferred: ignore.
		case existing.Kind == PropInferred && kind == PropDeclared:
			existing.Kind = PropDeclared
			existing.Type = propType
			existing.FromExtern = existing.FromExtern || fromExtern
		case existing.Kind == PropInferred && kind == PropInferred:
			existing.Type = r.Join(existing.Type, propType)
			existing.FromExtern = existing.FromExtern || fromExtern
		}
	} else {
		t.Props[name] = &Property{Name: name, Type: propType, Kind: kind, FromExtern: fromExtern}
		t.PropOrder = append(t.PropOrder, name)
	}
	r.indexProperty(owner, name)
}

func (r *Registry) indexProperty(owner TypeID, name string) {
	set, ok := r.propIdx[name]
	if !ok {
		set = map[TypeID]struct{}{}
		r.propIdx[name] = set
	}
	set[owner] = struct{}{}
}

// TypesWithProperty returns every object type that declares property name,
// directly or because it was ever assigned that property.
func (r *Registry) TypesWithProperty(name string) []TypeID {
	set := r.propIdx[name]
	out := make([]TypeID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// HasOwnProperty reports whether a type's own property map (not walking the
// prototype chain) contains name.
func (r *Registry) HasOwnProperty(owner TypeID, name string) bool {
	t := r.Type(owner)
	_, ok := t.Props[name]
	return ok
}

// GetPropertyType walks the prototype chain starting at owner looking for
// name; returns Unknown if not found anywhere on the chain (per §8 scenario
// 1: a stub reference without a declared property still yields Unknown,
// not a registration).
func (r *Registry) GetPropertyType(owner TypeID, name string) TypeID {
	seen := map[TypeID]bool{}
	cur := owner
	for cur != noTypeID && !seen[cur] {
		seen[cur] = true
		t := r.Type(r.deref(cur))
		if p, ok := t.Props[name]; ok {
			return p.Type
		}
		if t.Kind == KindNamed {
			return r.GetNative(NativeUnknown)
		}
		cur = t.ImplicitProto
	}
	return r.GetNative(NativeUnknown)
}
