// diagnostics.go
//
// Component H (diagnostics sink) plus the internal-invariant-violation
// panic type, per spec.md §7 "Error Handling Design": user-facing problems
// (bad doc annotations, type mismatches) are collected as Diagnostics and
// never panic; internal invariant violations (corrupt TypeID, missing
// native) panic with a typed internalError, since they indicate a bug in
// this package, not in the program being analyzed. Grounded on
// cmd/msg-lsp/analysis.go's Diag/Analyzer.Analyze split between collected
// diagnostics and Go errors.
package tscore

import "fmt"

// internalError marks a panic as an invariant violation inside this
// package, distinguishable from an ordinary runtime panic by recover()
// callers that want to re-panic anything else.
type internalError struct {
	msg string
}

func (e internalError) Error() string { return e.msg }

// DiagCode enumerates the diagnostics this core can emit while building
// scopes and running inference. Never a substitute for a Go error: these
// describe problems in the program under analysis, not in the core itself.
type DiagCode int

const (
	// CONSTRUCTOR_EXPECTED: goog.reflect.object's first argument must name a
	// type with an @constructor annotation.
	CodeConstructorExpected DiagCode = iota
	// OBJECTLIT_EXPECTED: goog.reflect.object's second argument must be an
	// object-literal expression.
	CodeObjectlitExpected
	// TYPE_MISMATCH: an inferred type could not be reconciled with a
	// declared one (assignment narrower than declaration is fine; wider is
	// not, see spec.md §4.G).
	CodeTypeMismatch
	// PARSE_ERROR: passed through from upstream parsing, surfaced here only
	// because the scope creator may be handed a Node subtree that failed to
	// parse and must not crash on it.
	CodeParseError
)

func (c DiagCode) String() string {
	switch c {
	case CodeConstructorExpected:
		return "CONSTRUCTOR_EXPECTED"
	case CodeObjectlitExpected:
		return "OBJECTLIT_EXPECTED"
	case CodeTypeMismatch:
		return "TYPE_MISMATCH"
	case CodeParseError:
		return "PARSE_ERROR"
	default:
		return "UNKNOWN_DIAGNOSTIC"
	}
}

// Diagnostic is one reported problem, with enough context to render a
// message without the caller re-deriving it.
type Diagnostic struct {
	Code    DiagCode
	Message string
	Node    Node // the offending AST node, for its SourceLoc; may be nil
}

func (d Diagnostic) String() string {
	if d.Node != nil {
		return fmt.Sprintf("%s: %s (%s)", d.Code, d.Message, d.Node.SourceLoc())
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// Diagnostics accumulates problems found while constructing scopes and
// running inference. Never panics; the zero value is ready to use.
type Diagnostics struct {
	entries []Diagnostic
}

// Add appends a diagnostic to the sink.
func (d *Diagnostics) Add(code DiagCode, node Node, format string, args ...any) {
	d.entries = append(d.entries, Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Node:    node,
	})
}

// All returns every diagnostic reported so far, in report order.
func (d *Diagnostics) All() []Diagnostic {
	return d.entries
}

// Empty reports whether no diagnostics have been reported.
func (d *Diagnostics) Empty() bool {
	return len(d.entries) == 0
}
