// narrow.go
//
// Narrowing primitives used by the reverse abstract interpreter (4.F) and
// the inference engine (4.G), per spec.md §4.A "Narrowing".
package tscore

// BoolOutcome is one bit of possible_to_boolean_outcomes' two-bit set.
type BoolOutcome int

const (
	OutcomeFalse BoolOutcome = 1 << iota
	OutcomeTrue
)

// RestrictNotNullOrVoid removes Null and Void alternates from a union. A
// bare Null or Void narrows to No; every other type is returned as is.
func (r *Registry) RestrictNotNullOrVoid(t TypeID) TypeID {
	dt := r.deref(t)
	tt := r.Type(dt)
	if tt.Kind == KindUnion {
		kept := make([]TypeID, 0, len(tt.Alternates))
		for _, alt := range tt.Alternates {
			if !r.isNullOrVoid(alt) {
				kept = append(kept, alt)
			}
		}
		return r.CreateUnion(kept...)
	}
	if r.isNullOrVoid(dt) {
		return r.GetNative(NativeNo)
	}
	return dt
}

func (r *Registry) isNullOrVoid(id TypeID) bool {
	t := r.Type(r.deref(id))
	return t.Kind == KindPrimitive && (t.Prim == PrimNull || t.Prim == PrimVoid)
}

// PossibleToBooleanOutcomes returns the two-bit set of boolean-coercion
// outcomes a value of type t might produce.
func (r *Registry) PossibleToBooleanOutcomes(t TypeID) BoolOutcome {
	dt := r.deref(t)
	tt := r.Type(dt)
	if tt.Kind == KindUnion {
		var out BoolOutcome
		for _, alt := range tt.Alternates {
			out |= r.PossibleToBooleanOutcomes(alt)
		}
		return out
	}
	switch tt.Kind {
	case KindPrimitive:
		switch tt.Prim {
		case PrimNull, PrimVoid:
			return OutcomeFalse
		default:
			return OutcomeTrue | OutcomeFalse
		}
	case KindUnknown, KindAll:
		return OutcomeTrue | OutcomeFalse
	default:
		if tt.isObjectLike() || tt.Kind == KindBoxed {
			return OutcomeTrue
		}
	}
	return OutcomeTrue | OutcomeFalse
}

// RestrictByTruthy intersects t with the set of types whose possible
// boolean-coercion outcomes include outcome.
func (r *Registry) RestrictByTruthy(t TypeID, outcome bool) TypeID {
	dt := r.deref(t)
	tt := r.Type(dt)
	want := OutcomeFalse
	if outcome {
		want = OutcomeTrue
	}
	if tt.Kind == KindUnion {
		kept := make([]TypeID, 0, len(tt.Alternates))
		for _, alt := range tt.Alternates {
			if r.PossibleToBooleanOutcomes(alt)&want != 0 {
				kept = append(kept, alt)
			}
		}
		return r.CreateUnion(kept...)
	}
	if r.PossibleToBooleanOutcomes(dt)&want != 0 {
		return dt
	}
	return r.GetNative(NativeNo)
}

// RestrictByTypeof returns the alternate(s) of t whose typeof-tag equals
// tag ("number", "string", "boolean", "function", "object", "undefined").
func (r *Registry) RestrictByTypeof(t TypeID, tag string) TypeID {
	dt := r.deref(t)
	tt := r.Type(dt)
	if tt.Kind == KindUnion {
		kept := make([]TypeID, 0, len(tt.Alternates))
		for _, alt := range tt.Alternates {
			if r.typeofTag(alt) == tag {
				kept = append(kept, alt)
			}
		}
		return r.CreateUnion(kept...)
	}
	if r.typeofTag(dt) == tag {
		return dt
	}
	return r.GetNative(NativeNo)
}

func (r *Registry) typeofTag(id TypeID) string {
	t := r.Type(r.deref(id))
	switch t.Kind {
	case KindPrimitive:
		switch t.Prim {
		case PrimNumber:
			return "number"
		case PrimString:
			return "string"
		case PrimBoolean:
			return "boolean"
		case PrimVoid:
			return "undefined"
		case PrimNull:
			return "object" // typeof null === "object"
		}
	case KindFunction:
		return "function"
	case KindUnknown, KindAll:
		return ""
	default:
		if t.isObjectLike() || t.Kind == KindBoxed {
			return "object"
		}
	}
	return ""
}
