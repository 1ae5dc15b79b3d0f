// ast.go
//
// Component E's input contract (spec.md §6 "Inputs") plus the shape
// vocabulary the typed scope creator (D) pattern-matches on. The AST and
// doc-comment parser live outside this core; Node and ControlFlowGraph are
// the seams. Grounded on cmd/msg-lsp/analysis.go's FileIndex/TokenIndex
// split between parsed structure and analysis-only sidecar data — here the
// sidecar is the JSType slot and the qualified-name slot.
package tscore

// NodeKind enumerates the AST shapes the scope creator and inference engine
// recognize. A real parser's node kind set is larger; everything this core
// does not special-case is treated generically via Children/walk.
type NodeKind int

const (
	NodeProgram NodeKind = iota
	NodeVarDecl
	NodeFunctionDecl
	NodeFunctionExpr
	NodeName
	NodeThis
	NodeGetProp    // e.g. a.b
	NodeAssign     // a = b
	NodeCall       // f(args...)
	NodeNew        // new C(args...)
	NodeObjectLit  // { k: v, ... }
	NodeArrayLit   // [ ... ]
	NodeNumberLit
	NodeStringLit
	NodeBooleanLit
	NodeNullLit
	NodeVoidLit // undefined
	NodeAnd     // a && b
	NodeOr      // a || b
	NodeNot     // !e
	NodeEq      // a == b
	NodeStrictEq // a === b
	NodeInstanceof
	NodeTypeof
	NodeBinaryArith // +, -, *, /, %
	NodeIf
	NodeFor
	NodeWhile
	NodeBlock
	NodeReturn
	NodeExprStmt
)

// SourceLoc is an opaque, printable location used only for diagnostics.
type SourceLoc interface {
	String() string
}

// Node is the external AST contract (spec.md §6): kind, children, optional
// source location, optional parsed DocInfo, a mutable slot for the
// attached JSType once inference decorates it, and a mutable slot for the
// node's computed qualified name (e.g. "NS.Sub" for a nested declaration).
//
// This core never constructs a Node; it only reads and, via the Set*
// methods, decorates one supplied by the parser.
type Node interface {
	Kind() NodeKind
	Children() []Node
	SourceLoc() SourceLoc

	Doc() *DocInfo

	// String-shaped leaves (name references, property names, literal text).
	StringValue() string
	NumberValue() float64
	BooleanValue() bool

	// Decoration slots, populated by this core.
	JSType() TypeID
	SetJSType(TypeID)
	QualifiedName() string
	SetQualifiedName(string)
}

// ControlFlowGraph is the pre-computed dataflow skeleton (spec.md §4.E):
// provided externally, consumed by the inference engine (G).
type ControlFlowGraph interface {
	Successors(n Node) []Node
	Predecessors(n Node) []Node
	Entry() Node
	Exit() Node
	// BranchLabel reports the edge condition from a branching node to succ:
	// "true", "false", or "" for an unconditional edge.
	BranchLabel(from, succ Node) string
}
