// pipeline.go
//
// Top-level driver wiring D (typed scope creator) and G (inference
// engine), per spec.md §2's data flow: "doc-info + AST -> (D) typed scope
// creator -> scope tree populated ... -> (G) inference over CFG using (F)
// ... -> decorated AST + finalized scope." Grounded on
// cmd/msg-lsp/analysis.go's Analyzer.Analyze, the single entry point the
// teacher's LSP calls per file.
package tscore

// Result is everything one call to Analyze produces, per spec.md §6
// "Outputs".
type Result struct {
	Global *Scope
	Reg    *Registry
	Diags  *Diagnostics
}

// CFGProvider supplies the pre-computed control-flow graph for the
// top-level program body and for each function body the scope creator
// discovers, per spec.md §4.E (the CFG is an external input). bodyNode is
// the Block node passed to createScope for that region: sourceRoot for
// the top level, or a function's body block for each nested function.
type CFGProvider interface {
	CFGFor(bodyNode Node) (ControlFlowGraph, bool)
}

// Analyze runs the full core pipeline over one compilation unit: scope
// construction (D) followed by inference (G) over every scope's CFG, in
// the order spec.md §5 requires (each scope's typed creation finishes
// before inference runs on it; outer before inner is not required by G
// since G only reads declared types already settled by D).
func Analyze(externsRoot, sourceRoot Node, cfgs CFGProvider, opts Options) *Result {
	reg := NewRegistry()
	diags := &Diagnostics{}
	sc := NewScopeCreator(reg, diags, opts)

	global := sc.CreateScopes(externsRoot, sourceRoot)

	engine := NewEngine(reg, diags, opts, sc.GlobalThis)

	if sourceRoot != nil {
		if cfg, ok := cfgs.CFGFor(sourceRoot); ok {
			engine.Run(cfg, global, noTypeID)
		}
	}

	for fnNode, scope := range sc.FunctionScopes {
		body := fnBody(fnNode)
		if body == nil {
			continue
		}
		cfg, ok := cfgs.CFGFor(body)
		if !ok {
			continue
		}
		fnThis := sc.FunctionThis[fnNode]
		engine.Run(cfg, scope, fnThis)
	}

	return &Result{Global: global, Reg: reg, Diags: diags}
}

// fnBody returns a function node's body block, mirroring the
// params/body split recurseIntoFunction already performs.
func fnBody(fn Node) Node {
	children := fn.Children()
	if len(children) == 0 {
		return nil
	}
	last := children[len(children)-1]
	if last.Kind() == NodeBlock {
		return last
	}
	return nil
}
