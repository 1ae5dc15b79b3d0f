// format.go
//
// Textual type form, per spec.md §6 — contractually stable, used both for
// diagnostics and for union-ordering (invariant 5). Grounded on
// original_source JSType.java's toString() family and the ALPHA comparator.
package tscore

import (
	"fmt"
	"sort"
	"strings"
)

// TypeString renders t in the contractually stable textual form.
func (r *Registry) TypeString(id TypeID) string {
	t := r.Type(id) // deliberately not deref'd at top: an unresolved Named keeps its name.
	switch t.Kind {
	case KindAll:
		return "*"
	case KindUnknown:
		return "?"
	case KindNo, KindNoObject:
		return "None"
	case KindPrimitive:
		return primitiveString(t.Prim)
	case KindBoxed:
		return boxedString(t.Boxed)
	case KindNamed:
		if t.Resolved != noTypeID {
			return r.TypeString(t.Resolved)
		}
		return t.QualifiedName
	case KindUnion:
		return r.unionString(t)
	case KindFunction:
		return r.functionString(t)
	case KindFunctionPrototype:
		if t.Name != "" {
			return t.Name
		}
		return "{prototype}"
	case KindInstanceOf:
		if t.Name != "" {
			return t.Name
		}
		return "{anonymous instance}"
	case KindInterface:
		if t.Name != "" {
			return t.Name
		}
		return "{anonymous interface}"
	case KindEnum:
		if t.Name != "" {
			return fmt.Sprintf("enum{%s}", t.Name)
		}
		return "enum{}"
	case KindEnumElement:
		owner := r.Type(t.EnumOwner)
		return fmt.Sprintf("%s.<%s>", owner.Name, r.TypeString(t.ElemType))
	case KindRecord:
		return r.recordString(t)
	case KindObject:
		if t.Name != "" {
			return t.Name
		}
		return "{anonymous object}"
	case KindTemplate:
		return t.TemplateName
	default:
		return "?"
	}
}

func primitiveString(p PrimitiveKind) string {
	switch p {
	case PrimNumber:
		return "number"
	case PrimString:
		return "string"
	case PrimBoolean:
		return "boolean"
	case PrimNull:
		return "null"
	case PrimVoid:
		return "undefined"
	}
	return "?"
}

func boxedString(b BoxedKind) string {
	switch b {
	case BoxedNumber:
		return "Number"
	case BoxedString:
		return "String"
	case BoxedBoolean:
		return "Boolean"
	}
	return "?"
}

func (r *Registry) unionString(t *Type) string {
	parts := make([]string, len(t.Alternates))
	for i, alt := range t.Alternates {
		parts[i] = r.TypeString(alt)
	}
	sort.Strings(parts)
	return "(" + strings.Join(parts, "|") + ")"
}

func (r *Registry) functionString(t *Type) string {
	var b strings.Builder
	b.WriteString("function (")
	first := true
	if t.ThisType != noTypeID && !r.isDefaultGlobalThis(t.ThisType) {
		b.WriteString("this:")
		b.WriteString(r.TypeString(t.ThisType))
		first = false
	}
	for _, p := range t.Params {
		if !first {
			b.WriteString(", ")
		}
		b.WriteString(r.TypeString(p))
		first = false
	}
	if t.Variadic {
		if !first {
			b.WriteString(", ")
		}
		b.WriteString("...")
	}
	b.WriteString("): ")
	b.WriteString(r.TypeString(t.Ret))
	return b.String()
}

func (r *Registry) isDefaultGlobalThis(id TypeID) bool {
	t := r.Type(r.deref(id))
	return t.Kind == KindObject && t.Name == "GlobalThis"
}

func (r *Registry) recordString(t *Type) string {
	var b strings.Builder
	b.WriteString("{ ")
	for i, name := range t.PropOrder {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(" : ")
		b.WriteString(r.TypeString(t.Props[name].Type))
	}
	b.WriteString(" }")
	return b.String()
}
