// subtype.go
//
// Structural/nominal subtyping, per spec.md §4.A "Subtyping a <: b", applied
// in the documented order. Grounded on
// _examples/original_source/.../JSType.java's isSubtype dispatch and on the
// teacher's cmd/msg-lsp/lub.go IsSubtypeStatic (nullable peeling, arrays
// covariant, maps required/optional, arrows contra/co) adapted from
// MindScript's S-expr shapes to this registry's TypeID handles.
package tscore

// IsSubtype reports whether a <: b.
func (r *Registry) IsSubtype(a, b TypeID) bool {
	// Rule 1: Unknown/All absorb everyone; No and NoObject are bottoms.
	if r.isUnknownOrAll(b) {
		return true
	}
	ta := r.Type(r.deref(a))
	if ta.Kind == KindNo {
		return true
	}
	tb0 := r.Type(r.deref(b))
	if ta.Kind == KindNoObject && tb0.isObjectLike() {
		return true
	}

	// Rule 2: identity.
	da, db := r.deref(a), r.deref(b)
	if da == db {
		return true
	}

	// Rule 3: union on the left — every alternate must be <: b.
	if ta.Kind == KindUnion {
		for _, alt := range ta.Alternates {
			if !r.IsSubtype(alt, b) {
				return false
			}
		}
		return true
	}

	// Rule 4: union on the right — a must be <: some alternate.
	tb := r.Type(db)
	if tb.Kind == KindUnion {
		for _, alt := range tb.Alternates {
			if r.IsSubtype(da, alt) {
				return true
			}
		}
		return false
	}

	// Rule 5: Named recursion already handled by deref() above for both sides.
	if ta.Kind == KindUnknown || tb.Kind == KindUnknown {
		return true
	}

	// Boxed <-> primitive autoboxing participates in property lookup, not
	// subtyping (SPEC_FULL §12.3): NumberObject is not <: Number and vice
	// versa except via identity/Unknown/union already handled above.

	switch {
	case ta.Kind == KindEnumElement && tb.Kind != KindEnumElement:
		// Rule 8: EnumElement<E> <: E.
		return r.IsSubtype(ta.ElemType, db) || da == tb.ElemType
	case ta.Kind == KindEnum && tb.Kind != KindEnum:
		return false // the enum container is not a subtype of its element.
	}

	// Rule 7: function/function dispatches to the contra/covariant signature
	// check before the generic object-like branch below, even though
	// KindFunction also satisfies isObjectLike() (a function is callable and
	// has a prototype chain of its own) — two functions compare by signature,
	// never by prototype-chain identity.
	if ta.Kind == KindFunction && tb.Kind == KindFunction {
		return r.functionSubtype(da, db)
	}

	if ta.isObjectLike() && tb.isObjectLike() {
		return r.objectSubtype(da, db)
	}

	return false
}

func (r *Registry) isUnknownOrAll(id TypeID) bool {
	t := r.Type(r.deref(id))
	return t.Kind == KindUnknown || t.Kind == KindAll
}

// objectSubtype: a <: b iff a's prototype chain reaches b, or b is an
// interface transitively implemented by a's constructor, or b is a
// structural Record and a has every field with a subtype.
func (r *Registry) objectSubtype(a, b TypeID) bool {
	tb := r.Type(b)
	if tb.Kind == KindRecord {
		return r.structuralSubtype(a, b)
	}
	if tb.Kind == KindInterface || tb.Kind == KindFunction && tb.IsIface {
		if r.implementsInterface(a, b) {
			return true
		}
	}
	// b may also be an interface's Instance type; implemented interfaces
	// are recorded as the interface functions, so check against its owner.
	if tb.Kind == KindInstanceOf && tb.Owner != noTypeID && r.Type(tb.Owner).IsIface {
		if r.implementsInterface(a, tb.Owner) {
			return true
		}
	}
	// walk a's prototype chain
	seen := map[TypeID]bool{}
	cur := a
	for cur != noTypeID && !seen[cur] {
		seen[cur] = true
		if cur == b {
			return true
		}
		t := r.Type(r.deref(cur))
		cur = t.ImplicitProto
	}
	return false
}

func (r *Registry) implementsInterface(a, iface TypeID) bool {
	ta := r.Type(a)
	ctor := ta.Ctor
	if ctor == noTypeID && (ta.Kind == KindInstanceOf || ta.Kind == KindFunctionPrototype) {
		ctor = ta.Owner
	}
	if ctor == noTypeID {
		return false
	}
	return r.ctorImplementsTransitively(ctor, iface, map[TypeID]bool{})
}

func (r *Registry) ctorImplementsTransitively(ctor, iface TypeID, seen map[TypeID]bool) bool {
	if seen[ctor] {
		return false
	}
	seen[ctor] = true
	tc := r.Type(ctor)
	for _, impl := range tc.ImplementsIface {
		if impl == iface {
			return true
		}
		if r.ctorImplementsTransitively(impl, iface, seen) {
			return true
		}
	}
	// an extended base constructor's implemented interfaces also count.
	if tc.Instance != noTypeID {
		inst := r.Type(tc.Instance)
		if inst.ImplicitProto != noTypeID {
			proto := r.Type(r.deref(inst.ImplicitProto))
			if proto.ImplicitProto != noTypeID {
				if baseInst := r.Type(r.deref(proto.ImplicitProto)); baseInst.Owner != noTypeID {
					if baseInst.Owner != ctor && r.ctorImplementsTransitively(baseInst.Owner, iface, seen) {
						return true
					}
				}
			}
		}
	}
	return false
}

func (r *Registry) structuralSubtype(a, record TypeID) bool {
	trec := r.Type(record)
	for _, name := range trec.PropOrder {
		want := trec.Props[name]
		// the field must exist somewhere on a's prototype chain; a missing
		// field would otherwise look up as Unknown and pass any check.
		found := false
		seen := map[TypeID]bool{}
		for cur := a; cur != noTypeID && !seen[cur]; {
			seen[cur] = true
			t := r.Type(r.deref(cur))
			if _, ok := t.Props[name]; ok {
				found = true
				break
			}
			cur = t.ImplicitProto
		}
		if !found {
			return false
		}
		got := r.GetPropertyType(a, name)
		if !r.IsSubtype(got, want.Type) {
			return false
		}
	}
	return true
}

// functionSubtype: contravariant in parameters, covariant in return and
// this; arity mismatch allowed only when the supertype is variadic or the
// extra parameters are optional. This core does not model per-parameter
// optionality beyond variadic, matching what spec.md's data model carries.
func (r *Registry) functionSubtype(a, b TypeID) bool {
	ta, tb := r.Type(a), r.Type(b)
	if !r.IsSubtype(ta.Ret, tb.Ret) {
		return false
	}
	if ta.ThisType != noTypeID && tb.ThisType != noTypeID {
		if !r.IsSubtype(ta.ThisType, tb.ThisType) {
			return false
		}
	}
	if len(ta.Params) != len(tb.Params) {
		if !tb.Variadic && len(tb.Params) < len(ta.Params) {
			return false
		}
		if len(tb.Params) > len(ta.Params) && !ta.Variadic {
			return false
		}
	}
	n := len(ta.Params)
	if len(tb.Params) < n {
		n = len(tb.Params)
	}
	for i := 0; i < n; i++ {
		// contravariant: b's param must be <: a's param.
		if !r.IsSubtype(tb.Params[i], ta.Params[i]) {
			return false
		}
	}
	return true
}
