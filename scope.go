// scope.go
//
// Component B (scope tree), per spec.md §4.B: a named variable store
// parameterized by a parent. Grounded on cmd/msg-lsp/analysis.go's Env
// chain (lexical lookup walking to an ambient parent) generalized from
// MindScript's Value bindings to this core's declared/inferred Var
// bindings.
package tscore

// Var is one scope entry: an identifier bound to a type, with enough
// provenance to support finalization (spec.md §4.G) and diagnostics.
type Var struct {
	Name     string
	Type     TypeID
	Declared bool // true once any declaration of this name carried an annotation
	DeclNode Node
}

// Scope is one lexical region. Scopes form a tree; lookup walks to parent
// on miss. The scope with a nil parent is the global scope (root()).
type Scope struct {
	parent   *Scope
	children []*Scope
	vars     map[string]*Var
	order    []string // declaration order, for Vars()
}

// NewScope creates a scope chained to parent (nil for the global scope)
// and registers it as one of parent's children.
func NewScope(parent *Scope) *Scope {
	s := &Scope{parent: parent, vars: map[string]*Var{}}
	if parent != nil {
		parent.children = append(parent.children, s)
	}
	return s
}

// Declare adds or merges a binding in this scope (not the parent). A
// declaration may not shadow a previously declared name in the same
// scope (spec.md §4.B): a second declaration merges its type (join with
// the existing type) and marks the var declared only if the new
// declaration itself carries an annotation.
func (s *Scope) Declare(r *Registry, name string, ty TypeID, declared bool, node Node) *Var {
	if existing, ok := s.vars[name]; ok {
		existing.Type = r.Join(existing.Type, ty)
		if declared {
			existing.Declared = true
		}
		return existing
	}
	v := &Var{Name: name, Type: ty, Declared: declared, DeclNode: node}
	s.vars[name] = v
	s.order = append(s.order, name)
	return v
}

// Lookup finds name in this scope, walking to parent on miss. Returns nil
// if not found anywhere in the chain.
func (s *Scope) Lookup(name string) *Var {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v
		}
	}
	return nil
}

// LookupLocal finds name only in this scope, without walking to parent.
func (s *Scope) LookupLocal(name string) *Var {
	return s.vars[name]
}

// Root walks to the outermost (global) scope.
func (s *Scope) Root() *Scope {
	cur := s
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// IsGlobal reports whether s is the root scope.
func (s *Scope) IsGlobal() bool {
	return s.parent == nil
}

// Parent returns the enclosing scope, nil for the global scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Vars returns every Var declared directly in this scope, in declaration
// order.
func (s *Scope) Vars() []*Var {
	out := make([]*Var, len(s.order))
	for i, name := range s.order {
		out[i] = s.vars[name]
	}
	return out
}

// AllScopes returns s and every descendant in a pre-order walk, so a
// caller can visit every Var exactly once.
func (s *Scope) AllScopes() []*Scope {
	out := []*Scope{s}
	for _, child := range s.children {
		out = append(out, child.AllScopes()...)
	}
	return out
}
