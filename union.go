// union.go
//
// Union canonicalization, per spec.md invariant 5: sorted by textual form,
// flattened, duplicates removed, All absorbs, Unknown dominates. Grounded on
// original_source JSType.java's ALPHA comparator ("Total ordering on types
// based on their textual representation... used to have a deterministic
// output of the toString method of the union type").
package tscore

import (
	"sort"
	"strconv"
	"strings"
)

// CreateUnion returns the canonical union of its alternates. May reduce to
// a single (non-union) type if alternates collapse to one after
// flattening/deduping, or to All/Unknown per the absorption rules.
func (r *Registry) CreateUnion(alternates ...TypeID) TypeID {
	flat := make([]TypeID, 0, len(alternates))
	for _, a := range alternates {
		da := r.deref(a)
		t := r.Type(da)
		if t.Kind == KindAll {
			return r.GetNative(NativeAll)
		}
		if t.Kind == KindUnknown {
			return r.GetNative(NativeUnknown)
		}
		if t.Kind == KindUnion {
			flat = append(flat, t.Alternates...)
		} else if t.Kind == KindNo {
			// No is the bottom; it never contributes an alternate.
			continue
		} else {
			flat = append(flat, da)
		}
	}

	seen := map[TypeID]bool{}
	deduped := make([]TypeID, 0, len(flat))
	for _, id := range flat {
		if !seen[id] {
			seen[id] = true
			deduped = append(deduped, id)
		}
	}

	if len(deduped) == 0 {
		return r.GetNative(NativeNo)
	}
	if len(deduped) == 1 {
		return deduped[0]
	}

	sort.Slice(deduped, func(i, j int) bool {
		return r.TypeString(deduped[i]) < r.TypeString(deduped[j])
	})

	// intern by canonical (sorted, deduped) alternate list so permutations of
	// the same alternate set, and repeat calls with the same set, return the
	// identical TypeID (invariant 5: create_union(S) == create_union(perm(S))
	// by identity, not just structural equality).
	key := unionKey(deduped)
	if id, ok := r.unions[key]; ok {
		return id
	}
	id := r.alloc(&Type{Kind: KindUnion, Alternates: deduped})
	r.unions[key] = id
	return id
}

func unionKey(ids []TypeID) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(id)))
	}
	return b.String()
}
