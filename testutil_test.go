// testutil_test.go
//
// A minimal in-package Node/ControlFlowGraph implementation for exercising
// the scope creator (D) and inference engine (G) without a real parser,
// per spec.md §1 ("the AST parser ... is out of scope, referenced only by
// interface"). Grounded on cmd/msg-lsp/analysis.go's test fixtures, which
// build small Env/AST shapes by hand rather than parsing source text.
package tscore

type fakeLoc string

func (f fakeLoc) String() string { return string(f) }

type fakeNode struct {
	kind     NodeKind
	children []Node
	doc      *DocInfo
	str      string
	num      float64
	boolean  bool

	jsType TypeID
	qname  string
}

func n(kind NodeKind, str string, children ...Node) *fakeNode {
	return &fakeNode{kind: kind, str: str, children: children, jsType: noTypeID}
}

func (f *fakeNode) Kind() NodeKind        { return f.kind }
func (f *fakeNode) Children() []Node      { return f.children }
func (f *fakeNode) SourceLoc() SourceLoc  { return fakeLoc("test") }
func (f *fakeNode) Doc() *DocInfo         { return f.doc }
func (f *fakeNode) StringValue() string   { return f.str }
func (f *fakeNode) NumberValue() float64  { return f.num }
func (f *fakeNode) BooleanValue() bool    { return f.boolean }
func (f *fakeNode) JSType() TypeID        { return f.jsType }
func (f *fakeNode) SetJSType(t TypeID)    { f.jsType = t }
func (f *fakeNode) QualifiedName() string { return f.qname }
func (f *fakeNode) SetQualifiedName(q string) { f.qname = q }

func withDoc(node *fakeNode, doc *DocInfo) *fakeNode {
	node.doc = doc
	return node
}

// linearCFG is a straight-line CFG over an explicit statement sequence,
// with optional branch edges for if/while/for-shaped nodes — enough to
// drive the worklist in a test without a full graph builder.
type linearCFG struct {
	stmts []Node
	succ  map[Node][]Node
	label map[[2]Node]string
}

func newLinearCFG(stmts ...Node) *linearCFG {
	c := &linearCFG{stmts: stmts, succ: map[Node][]Node{}, label: map[[2]Node]string{}}
	for i := 0; i+1 < len(stmts); i++ {
		c.succ[stmts[i]] = append(c.succ[stmts[i]], stmts[i+1])
	}
	return c
}

func (c *linearCFG) Successors(node Node) []Node   { return c.succ[node] }
func (c *linearCFG) Predecessors(node Node) []Node { return nil }
func (c *linearCFG) Entry() Node                   { return c.stmts[0] }
func (c *linearCFG) Exit() Node                    { return c.stmts[len(c.stmts)-1] }
func (c *linearCFG) BranchLabel(from, succ Node) string {
	return c.label[[2]Node{from, succ}]
}
