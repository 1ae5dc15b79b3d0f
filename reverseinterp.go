// reverseinterp.go
//
// Component F (reverse abstract interpreter), per spec.md §4.F: given an
// expression and a desired boolean outcome, returns a refined type
// environment (a set of Var->Type narrowings local to that branch).
// Grounded on cmd/msg-lsp/lub.go's condition-narrowing helpers, generalized
// to the full refinement table the spec enumerates.
package tscore

// Env is a flat set of narrowings keyed by the Var whose type is refined.
// Refinements from a Refine call are meant to be composed into the flow
// state the inference engine (G) already has for the current point, not
// used standalone.
type Env map[*Var]TypeID

// mergeEnv unions two refinement environments' types for vars present in
// both, and keeps vars present in only one as-is. Used to combine the
// branches of && / || per the table in spec.md §4.F.
func mergeEnv(r *Registry, a, b Env) Env {
	out := Env{}
	for v, t := range a {
		out[v] = t
	}
	for v, t := range b {
		if existing, ok := out[v]; ok {
			out[v] = r.Join(existing, t)
		} else {
			out[v] = t
		}
	}
	return out
}

// Refine computes the refinement environment for expr under outcome,
// using current to resolve sub-expression types (spec.md §4.F table).
// scope resolves bare-name expressions to their Var.
func (r *Registry) Refine(expr Node, outcome bool, current map[*Var]TypeID, scope *Scope) Env {
	switch expr.Kind() {
	case NodeName:
		v := scope.Lookup(expr.StringValue())
		if v == nil {
			return Env{}
		}
		t, ok := current[v]
		if !ok {
			t = v.Type
		}
		return Env{v: r.RestrictByTruthy(t, outcome)}

	case NodeNot:
		return r.Refine(expr.Children()[0], !outcome, current, scope)

	case NodeAnd:
		a, b := expr.Children()[0], expr.Children()[1]
		if outcome {
			ea := r.Refine(a, true, current, scope)
			merged := mergeCurrent(current, ea)
			eb := r.Refine(b, true, merged, scope)
			return mergeEnv(r, ea, eb)
		}
		notA := r.Refine(a, false, current, scope)
		aTrue := r.Refine(a, true, current, scope)
		notB := r.Refine(b, false, mergeCurrent(current, aTrue), scope)
		return mergeEnv(r, notA, mergeEnv(r, aTrue, notB))

	case NodeOr:
		a, b := expr.Children()[0], expr.Children()[1]
		if !outcome {
			ea := r.Refine(a, false, current, scope)
			merged := mergeCurrent(current, ea)
			eb := r.Refine(b, false, merged, scope)
			return mergeEnv(r, ea, eb)
		}
		aTrue := r.Refine(a, true, current, scope)
		aFalse := r.Refine(a, false, current, scope)
		bTrue := r.Refine(b, true, mergeCurrent(current, aFalse), scope)
		return mergeEnv(r, aTrue, mergeEnv(r, aFalse, bTrue))

	case NodeEq:
		return r.refineNullEquality(expr, outcome, current, scope, false)

	case NodeStrictEq:
		return r.refineNullEquality(expr, outcome, current, scope, true)

	case NodeTypeof:
		// typeof x == "T" arrives here as the parent Eq/StrictEq node; a bare
		// `typeof x` with no comparison carries no refinement by itself.
		return Env{}

	case NodeInstanceof:
		target, ctorNode := expr.Children()[0], expr.Children()[1]
		v := scope.Lookup(target.StringValue())
		if v == nil {
			return Env{}
		}
		ctorType := r.realizeName(ctorNode.StringValue())
		inst := ctorType
		if t := r.Type(r.deref(ctorType)); t.Kind == KindFunction && t.Instance != noTypeID {
			inst = t.Instance
		}
		base, ok := current[v]
		if !ok {
			base = v.Type
		}
		if outcome {
			return Env{v: r.Meet(base, inst)}
		}
		return Env{v: r.minus(base, inst)}

	default:
		return Env{}
	}
}

// refineNullEquality handles `x == null` / `x === null` (and the
// typeof-comparison shape `typeof x == "T"`, dispatched here because both
// arrive as an Eq/StrictEq node over two children).
func (r *Registry) refineNullEquality(expr Node, outcome bool, current map[*Var]TypeID, scope *Scope, strict bool) Env {
	lhs, rhs := expr.Children()[0], expr.Children()[1]

	if lhs.Kind() == NodeTypeof {
		target := lhs.Children()[0]
		v := scope.Lookup(target.StringValue())
		if v == nil {
			return Env{}
		}
		tag := rhs.StringValue()
		base, ok := current[v]
		if !ok {
			base = v.Type
		}
		if outcome {
			return Env{v: r.RestrictByTypeof(base, tag)}
		}
		return Env{v: r.minusTypeof(base, tag)}
	}

	if rhs.Kind() == NodeNullLit || rhs.Kind() == NodeVoidLit {
		v := scope.Lookup(lhs.StringValue())
		if v == nil {
			return Env{}
		}
		base, ok := current[v]
		if !ok {
			base = v.Type
		}
		if strict {
			if outcome {
				return Env{v: r.GetNative(NativeNull)}
			}
			return Env{v: r.minus(base, r.GetNative(NativeNull))}
		}
		if outcome {
			return Env{v: r.CreateUnion(r.GetNative(NativeNull), r.GetNative(NativeVoid))}
		}
		return Env{v: r.RestrictNotNullOrVoid(base)}
	}
	return Env{}
}

// minus removes the types <: sub from base's alternate set, used for the
// FALSE branch of `x instanceof C` and `x === null`.
func (r *Registry) minus(base, sub TypeID) TypeID {
	dt := r.Type(r.deref(base))
	if dt.Kind != KindUnion {
		if r.IsSubtype(r.deref(base), r.deref(sub)) {
			return r.GetNative(NativeNo)
		}
		return base
	}
	kept := make([]TypeID, 0, len(dt.Alternates))
	for _, alt := range dt.Alternates {
		if !r.IsSubtype(alt, r.deref(sub)) {
			kept = append(kept, alt)
		}
	}
	return r.CreateUnion(kept...)
}

func (r *Registry) minusTypeof(base TypeID, tag string) TypeID {
	dt := r.Type(r.deref(base))
	if dt.Kind != KindUnion {
		if r.typeofTag(base) == tag {
			return r.GetNative(NativeNo)
		}
		return base
	}
	kept := make([]TypeID, 0, len(dt.Alternates))
	for _, alt := range dt.Alternates {
		if r.typeofTag(alt) != tag {
			kept = append(kept, alt)
		}
	}
	return r.CreateUnion(kept...)
}

func mergeCurrent(current map[*Var]TypeID, refinement Env) map[*Var]TypeID {
	out := map[*Var]TypeID{}
	for v, t := range current {
		out[v] = t
	}
	for v, t := range refinement {
		out[v] = t
	}
	return out
}
