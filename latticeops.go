// latticeops.go
//
// Join (least supertype) and Meet (greatest subtype), per spec.md §4.A.
// Grounded on cmd/msg-lsp/lub.go's lubImpl/glbImpl (primitive widening,
// nullable peeling, structural map/array handling) generalized from
// MindScript's two-primitive (Int/Num) world to this registry's full
// primitive/object/union lattice.
package tscore

// Join returns the least type t such that a <: t and b <: t.
func (r *Registry) Join(a, b TypeID) TypeID {
	da, db := r.deref(a), r.deref(b)
	if da == db {
		return da
	}
	ta, tb := r.Type(da), r.Type(db)

	if ta.Kind == KindAll || tb.Kind == KindAll {
		return r.GetNative(NativeAll)
	}
	if ta.Kind == KindNo {
		return db
	}
	if tb.Kind == KindNo {
		return da
	}
	if ta.Kind == KindUnknown || tb.Kind == KindUnknown {
		return r.GetNative(NativeUnknown)
	}

	if ta.Kind == KindUnion || tb.Kind == KindUnion {
		alts := unionAlternates(ta, da)
		alts = append(alts, unionAlternates(tb, db)...)
		return r.CreateUnion(alts...)
	}

	// Objects sharing a common nominal ancestor collapse to that ancestor.
	if ta.isObjectLike() && tb.isObjectLike() {
		if anc, ok := r.commonAncestor(da, db); ok {
			return anc
		}
	}

	if r.IsSubtype(da, db) {
		return db
	}
	if r.IsSubtype(db, da) {
		return da
	}
	return r.CreateUnion(da, db)
}

func unionAlternates(t *Type, id TypeID) []TypeID {
	if t.Kind == KindUnion {
		return append([]TypeID{}, t.Alternates...)
	}
	return []TypeID{id}
}

// commonAncestor walks both prototype chains looking for a shared nominal
// InstanceOf/FunctionPrototype/Object ancestor.
func (r *Registry) commonAncestor(a, b TypeID) (TypeID, bool) {
	chainA := r.protoChain(a)
	chainB := map[TypeID]bool{}
	for _, id := range r.protoChain(b) {
		chainB[id] = true
	}
	for _, id := range chainA {
		if chainB[id] {
			t := r.Type(id)
			// only a named nominal ancestor (a constructor instance or
			// prototype) counts as a shared hierarchy per spec.md §4.A; the
			// anonymous native Object every chain eventually reaches is not
			// itself a nominal hierarchy, so two unrelated instances must
			// fall through to the union case below instead of collapsing to
			// bare Object.
			if t.Name != "" {
				return id, true
			}
		}
	}
	return noTypeID, false
}

func (r *Registry) protoChain(id TypeID) []TypeID {
	var out []TypeID
	seen := map[TypeID]bool{}
	cur := id
	for cur != noTypeID && !seen[cur] {
		seen[cur] = true
		out = append(out, cur)
		t := r.Type(r.deref(cur))
		cur = t.ImplicitProto
	}
	return out
}

// Meet returns the greatest type t such that t <: a and t <: b.
func (r *Registry) Meet(a, b TypeID) TypeID {
	da, db := r.deref(a), r.deref(b)
	if da == db {
		return da
	}
	ta, tb := r.Type(da), r.Type(db)

	if ta.Kind == KindUnknown {
		return db
	}
	if tb.Kind == KindUnknown {
		return da
	}
	if r.IsSubtype(da, db) {
		return da
	}
	if r.IsSubtype(db, da) {
		return db
	}
	if ta.isObjectLike() && tb.isObjectLike() {
		return r.GetNative(NativeNoObject)
	}
	return r.GetNative(NativeNo)
}
