// equality.go
//
// Trivalent equality, per spec.md §4.A "test_for_equality" and Design Note
// §9 ("Implement as a three-valued enumeration with explicit truth tables;
// never reuse the two-valued boolean type for equality tests").
package tscore

// Ternary is a three-valued logic result. Never compared against Go bool.
type Ternary int

const (
	TernaryTrue Ternary = iota
	TernaryFalse
	TernaryUnknown
)

func (t Ternary) not() Ternary {
	switch t {
	case TernaryTrue:
		return TernaryFalse
	case TernaryFalse:
		return TernaryTrue
	default:
		return TernaryUnknown
	}
}

// valueDomain classifies a non-union type for abstract-equality coercion
// purposes: the nullish domain (null/void) compares loosely equal only to
// itself, never to any other domain; values of the other domains may still
// compare equal across domains after coercion.
type valueDomain int

const (
	domainNumber valueDomain = iota
	domainString
	domainBoolean
	domainNullish // Null or Void
	domainObject
	domainOther
)

func (r *Registry) domainOf(id TypeID) valueDomain {
	t := r.Type(r.deref(id))
	switch t.Kind {
	case KindPrimitive:
		switch t.Prim {
		case PrimNumber:
			return domainNumber
		case PrimString:
			return domainString
		case PrimBoolean:
			return domainBoolean
		case PrimNull, PrimVoid:
			return domainNullish
		}
	case KindBoxed:
		return domainObject
	default:
		if t.isObjectLike() {
			return domainObject
		}
	}
	return domainOther
}

// TestForEquality implements spec.md's ternary abstract-equality test.
func (r *Registry) TestForEquality(a, b TypeID) Ternary {
	da, db := r.deref(a), r.deref(b)
	ta, tb := r.Type(da), r.Type(db)

	if ta.Kind == KindUnknown || tb.Kind == KindUnknown {
		return TernaryUnknown
	}

	if ta.Kind == KindUnion {
		return foldEquality(ta.Alternates, db, r, true)
	}
	if tb.Kind == KindUnion {
		return foldEquality(tb.Alternates, da, r, false)
	}

	if da == db {
		// Identical singleton types: still UNKNOWN unless we know the
		// runtime value set is a true singleton (null, void). Number,
		// string, boolean, and object types carry many distinct values.
		domain := r.domainOf(da)
		if domain == domainNullish {
			return TernaryTrue
		}
		return TernaryUnknown
	}

	domA, domB := r.domainOf(da), r.domainOf(db)
	if domA == domainNullish && domB == domainNullish {
		return TernaryTrue // null == void under loose equality
	}
	if (domA == domainNullish) != (domB == domainNullish) {
		// null/void compare loosely equal only to each other, never to any
		// other domain (spec.md's number vs void example).
		return TernaryFalse
	}
	// any other cross-domain pair (number/string/boolean/object) may still
	// compare equal after abstract-equality coercion (e.g. "1" == 1,
	// true == 1, [1] == 1): not decidable from the types alone.
	return TernaryUnknown
}

func foldEquality(alts []TypeID, other TypeID, r *Registry, selfIsUnion bool) Ternary {
	var acc Ternary = -1
	for _, alt := range alts {
		var v Ternary
		if selfIsUnion {
			v = r.TestForEquality(alt, other)
		} else {
			v = r.TestForEquality(other, alt)
		}
		if acc == -1 {
			acc = v
		} else if acc != v {
			return TernaryUnknown
		}
	}
	if acc == -1 {
		return TernaryUnknown
	}
	return acc
}
