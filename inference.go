// inference.go
//
// Component G (type inference engine), per spec.md §4.G: a monotone
// dataflow analysis over the CFG (E) using the scope tree (B), the
// registry (A), and the reverse abstract interpreter (F). Grounded on
// cmd/msg-lsp/lub.go's join-based widening and cmd/msg-lsp/analysis.go's
// fold-based post-order expression evaluation, generalized here to a
// worklist fixpoint over an externally supplied CFG instead of a single
// recursive fold (MindScript has no loops to fix-point over; this
// core's host language does).
package tscore

// FlowState maps a Var to its type at one program point. A nil entry for
// a Var means "use its scope-declared type," so empty states are cheap.
type FlowState map[*Var]TypeID

func (f FlowState) clone() FlowState {
	out := make(FlowState, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func (f FlowState) joinWith(r *Registry, other FlowState) (FlowState, bool) {
	changed := false
	out := f.clone()
	for v, t := range other {
		if existing, ok := out[v]; ok {
			joined := r.Join(existing, t)
			if joined != existing {
				changed = true
			}
			out[v] = joined
		} else {
			out[v] = t
			changed = true
		}
	}
	return out, changed
}

// Engine runs the dataflow pass for one scope's CFG.
type Engine struct {
	Reg   *Registry
	Diags *Diagnostics
	Opts  Options
	// globalThis is the registry handle for the synthetic GlobalThis type
	// (spec.md §4.D "Global this"), threaded in from the scope creator.
	GlobalThis TypeID
}

// NewEngine creates an inference engine sharing reg and diags with the
// typed scope creator that populated them.
func NewEngine(reg *Registry, diags *Diagnostics, opts Options, globalThis TypeID) *Engine {
	return &Engine{Reg: reg, Diags: diags, Opts: opts, GlobalThis: globalThis}
}

// Run executes the dataflow fixpoint over cfg, decorating every
// expression node reachable from entry with its inferred JSType,
// finalizes inferred vars per spec.md §4.G, and returns the flow state on
// entry to cfg.Exit().
func (e *Engine) Run(cfg ControlFlowGraph, scope *Scope, fnThis TypeID) FlowState {
	entry := cfg.Entry()
	states := map[Node]FlowState{entry: FlowState{}}
	outStates := map[Node]FlowState{}
	worklist := []Node{entry}
	visited := map[Node]bool{}

	for len(worklist) > 0 {
		n := worklist[0]
		worklist = worklist[1:]
		in := states[n]
		if in == nil {
			in = FlowState{}
		}
		out := e.transfer(n, in, scope, fnThis)
		outStates[n] = out
		visited[n] = true

		for _, succ := range cfg.Successors(n) {
			label := cfg.BranchLabel(n, succ)
			succIn := out
			if label == "true" || label == "false" {
				succIn = e.applyBranch(n, label == "true", out, scope)
			}
			existing, ok := states[succ]
			if !ok {
				states[succ] = succIn.clone()
				worklist = append(worklist, succ)
				continue
			}
			merged, changed := existing.joinWith(e.Reg, succIn)
			if changed || !visited[succ] {
				states[succ] = merged
				worklist = append(worklist, succ)
			}
		}
	}

	e.finalizeVars(states, outStates)

	if exitState, ok := states[cfg.Exit()]; ok {
		return exitState
	}
	return FlowState{}
}

// finalizeVars implements spec.md §4.G's variable finalization rule: for
// each Var with Declared == false, set its final type to the join over
// every flow state in which it appears (every program point it was read
// or written at, approximated here by every state the fixpoint visited,
// both before and after each node's effects). Declared vars are left
// untouched by FinalizeVar.
func (e *Engine) finalizeVars(stateSets ...map[Node]FlowState) {
	accum := map[*Var]TypeID{}
	for _, states := range stateSets {
		for _, st := range states {
			for v, t := range st {
				if existing, ok := accum[v]; ok {
					accum[v] = e.Reg.Join(existing, t)
				} else {
					accum[v] = t
				}
			}
		}
	}
	for v, t := range accum {
		e.FinalizeVar(v, t)
	}
}

// applyBranch narrows out using F's refinement table for the condition
// guarding a true/false edge out of a branching node.
func (e *Engine) applyBranch(branchNode Node, outcome bool, base FlowState, scope *Scope) FlowState {
	cond := conditionOf(branchNode)
	if cond == nil {
		return base
	}
	current := map[*Var]TypeID{}
	for v, t := range base {
		current[v] = t
	}
	refined := e.Reg.Refine(cond, outcome, current, scope)
	out := base.clone()
	for v, t := range refined {
		out[v] = t
	}
	return out
}

// conditionOf returns the boolean-valued child that a branching node's
// edges are labeled against (an if/while/for's condition expression).
func conditionOf(n Node) Node {
	switch n.Kind() {
	case NodeIf, NodeWhile:
		children := n.Children()
		if len(children) > 0 {
			return children[0]
		}
	case NodeFor:
		children := n.Children()
		if len(children) > 1 {
			return children[1] // init, cond, post, body
		}
	}
	return nil
}

// transfer evaluates every expression reachable from n in post-order,
// decorating each with its type, and returns the flow state after n's
// effects (assignments) are applied.
func (e *Engine) transfer(n Node, in FlowState, scope *Scope, fnThis TypeID) FlowState {
	out := in.clone()
	e.evalStmt(n, out, scope, fnThis)
	return out
}

func (e *Engine) evalStmt(n Node, state FlowState, scope *Scope, fnThis TypeID) {
	switch n.Kind() {
	case NodeExprStmt, NodeReturn:
		for _, c := range n.Children() {
			e.eval(c, state, scope, fnThis)
		}
	case NodeVarDecl:
		// each child is a binding node (name + optional doc), not itself an
		// expression: its rhs initializer, if any, lives at Children()[0]
		// (the same shape collectVarDecl assumes in the scope-creation
		// pass). Evaluating the binding node directly would hit eval's
		// NodeName case and silently skip the initializer's flow effect.
		for _, binding := range n.Children() {
			children := binding.Children()
			if len(children) == 0 {
				continue
			}
			rhsType := e.eval(children[0], state, scope, fnThis)
			e.evalAssign(binding, rhsType, state, scope, fnThis)
		}
	default:
		// Block/If/For/While headers carry no direct effect beyond their
		// condition/init sub-expressions, which are evaluated by eval() when
		// reached as CFG nodes in their own right, or here defensively.
		for _, c := range n.Children() {
			if isExprKind(c.Kind()) {
				e.eval(c, state, scope, fnThis)
			}
		}
	}
}

func isExprKind(k NodeKind) bool {
	switch k {
	case NodeBlock, NodeIf, NodeFor, NodeWhile, NodeProgram:
		return false
	default:
		return true
	}
}

// eval is the post-order transfer function per spec.md §4.G's expression
// table. It decorates n with its type and returns that type.
func (e *Engine) eval(n Node, state FlowState, scope *Scope, fnThis TypeID) TypeID {
	r := e.Reg
	var t TypeID

	switch n.Kind() {
	case NodeNumberLit:
		t = r.GetNative(NativeNumber)
	case NodeStringLit:
		t = r.GetNative(NativeString)
	case NodeBooleanLit:
		t = r.GetNative(NativeBoolean)
	case NodeNullLit:
		t = r.GetNative(NativeNull)
	case NodeVoidLit:
		t = r.GetNative(NativeVoid)

	case NodeThis:
		if fnThis != noTypeID {
			t = fnThis
		} else {
			t = e.GlobalThis
		}

	case NodeName:
		v := scope.Lookup(n.StringValue())
		if v == nil {
			t = r.GetNative(NativeUnknown)
			break
		}
		if cur, ok := state[v]; ok {
			t = cur
		} else {
			t = v.Type
		}

	case NodeGetProp:
		children := n.Children()
		ownerType := e.eval(children[0], state, scope, fnThis)
		prop := n.StringValue()
		t = e.derefAndLookup(ownerType, prop)

	case NodeAssign:
		children := n.Children()
		rhsType := e.eval(children[1], state, scope, fnThis)
		t = e.evalAssign(children[0], rhsType, state, scope, fnThis)

	case NodeCall:
		children := n.Children()
		fnType := e.eval(children[0], state, scope, fnThis)
		argTypes := make([]TypeID, len(children)-1)
		for i, a := range children[1:] {
			argTypes[i] = e.eval(a, state, scope, fnThis)
		}
		t = e.evalCall(fnType, argTypes)

	case NodeNew:
		children := n.Children()
		ctorType := e.eval(children[0], state, scope, fnThis)
		for _, a := range children[1:] {
			e.eval(a, state, scope, fnThis)
		}
		ct := r.Type(r.deref(ctorType))
		if ct.Kind == KindFunction && ct.Instance != noTypeID {
			t = ct.Instance
		} else {
			t = r.GetNative(NativeUnknown)
		}

	case NodeAnd:
		children := n.Children()
		e.eval(children[0], state, scope, fnThis)
		t = e.eval(children[1], state, scope, fnThis)

	case NodeOr:
		children := n.Children()
		lt := e.eval(children[0], state, scope, fnThis)
		rt := e.eval(children[1], state, scope, fnThis)
		t = r.Join(lt, rt)

	case NodeNot:
		e.eval(n.Children()[0], state, scope, fnThis)
		t = r.GetNative(NativeBoolean)

	case NodeEq, NodeStrictEq, NodeInstanceof:
		for _, c := range n.Children() {
			e.eval(c, state, scope, fnThis)
		}
		t = r.GetNative(NativeBoolean)

	case NodeTypeof:
		e.eval(n.Children()[0], state, scope, fnThis)
		t = r.GetNative(NativeString)

	case NodeBinaryArith:
		children := n.Children()
		lt := e.eval(children[0], state, scope, fnThis)
		rt := e.eval(children[1], state, scope, fnThis)
		t = e.evalArith(n.StringValue(), lt, rt)

	case NodeObjectLit:
		// Anonymous object literal: property types are inferred from each
		// key's value expression. Ownership of these properties (and
		// whether they land on this literal or a distinguished prototype
		// object) is the scope creator's concern (§4.D); here we only type
		// the literal itself as a fresh anonymous object.
		obj := r.CreateObject("", noTypeID)
		for _, kv := range n.Children() {
			valChildren := kv.Children()
			if len(valChildren) == 0 {
				continue
			}
			vt := e.eval(valChildren[0], state, scope, fnThis)
			r.DeclareProperty(obj, kv.StringValue(), vt, PropInferred, false)
		}
		t = obj

	case NodeArrayLit:
		for _, c := range n.Children() {
			e.eval(c, state, scope, fnThis)
		}
		t = r.GetNative(NativeObject)

	case NodeFunctionExpr, NodeFunctionDecl:
		// A function literal's type is realized by the scope creator (D)
		// from its doc info before inference runs; inference only looks it
		// up by the scope binding the creator installed.
		v := scope.Lookup(n.QualifiedName())
		if v != nil {
			t = v.Type
		} else {
			t = r.GetNative(NativeUnknown)
		}

	default:
		t = r.GetNative(NativeUnknown)
	}

	n.SetJSType(t)
	return t
}

// derefAndLookup implements spec.md §4.G's property-access rule:
// dereference (autobox if primitive, strip null/void, require object)
// then look up the property.
func (e *Engine) derefAndLookup(owner TypeID, name string) TypeID {
	r := e.Reg
	d := r.deref(owner)
	t := r.Type(d)

	if t.Kind == KindUnion {
		var results []TypeID
		for _, alt := range t.Alternates {
			results = append(results, e.derefAndLookup(alt, name))
		}
		return r.CreateUnion(results...)
	}

	if t.Kind == KindPrimitive {
		switch t.Prim {
		case PrimNumber:
			d = r.GetNative(NativeNumberObject)
		case PrimString:
			d = r.GetNative(NativeStringObject)
		case PrimBoolean:
			d = r.GetNative(NativeBooleanObject)
		default:
			// null/void dereferenced: defensive Unknown, not a cascading
			// diagnostic (spec.md §7 propagation policy).
			return r.GetNative(NativeUnknown)
		}
	}
	if t.Kind == KindUnknown || t.Kind == KindAll {
		return r.GetNative(NativeUnknown)
	}
	return r.GetPropertyType(d, name)
}

// evalAssign implements spec.md §4.G's assignment rule for both simple
// names and `obj.p` targets, returning the type of the assignment
// expression (the rhs type).
func (e *Engine) evalAssign(lhs Node, rhsType TypeID, state FlowState, scope *Scope, fnThis TypeID) TypeID {
	r := e.Reg
	switch lhs.Kind() {
	case NodeName:
		v := scope.Lookup(lhs.StringValue())
		if v == nil {
			return rhsType
		}
		if v.Declared {
			// declared vars are never widened by assignment; compatibility
			// checking is a downstream pass's concern (spec.md §4.G).
			return rhsType
		}
		cur, ok := state[v]
		if !ok {
			cur = v.Type
		}
		state[v] = r.Join(cur, rhsType)
		return rhsType

	case NodeGetProp:
		children := lhs.Children()
		ownerType := e.eval(children[0], state, scope, fnThis)
		d := r.deref(ownerType)
		t := r.Type(d)
		if !t.isObjectLike() {
			return rhsType
		}
		name := lhs.StringValue()
		if existing, ok := t.Props[name]; ok && existing.Kind == PropDeclared {
			return rhsType // declared property type is not changed.
		}
		r.DeclareProperty(d, name, rhsType, PropInferred, false)
		return rhsType

	default:
		return rhsType
	}
}

// evalCall implements spec.md §4.G's call rule: evaluate the function
// type, substitute template parameters from argument types, return the
// (possibly substituted) return type.
func (e *Engine) evalCall(fnType TypeID, argTypes []TypeID) TypeID {
	r := e.Reg
	d := r.deref(fnType)
	t := r.Type(d)
	if t.Kind != KindFunction {
		return r.GetNative(NativeUnknown)
	}
	subst := map[string]TypeID{}
	for i, p := range t.Params {
		if i >= len(argTypes) {
			break
		}
		collectTemplateBindings(r, p, argTypes[i], subst)
	}
	if e.Opts.StrictTemplateArity {
		for _, p := range t.Params {
			pt := r.Type(r.deref(p))
			if pt.Kind == KindTemplate {
				if _, ok := subst[pt.TemplateName]; !ok {
					return r.GetNative(NativeNo)
				}
			}
		}
	}
	return substituteTemplate(r, t.Ret, subst)
}

// collectTemplateBindings records a binding when paramType is itself a
// Template placeholder. Placeholders nested inside a union, record or
// function parameter type are not matched.
func collectTemplateBindings(r *Registry, paramType, argType TypeID, subst map[string]TypeID) {
	pt := r.Type(r.deref(paramType))
	if pt.Kind == KindTemplate {
		if existing, ok := subst[pt.TemplateName]; ok {
			subst[pt.TemplateName] = r.Join(existing, argType)
		} else {
			subst[pt.TemplateName] = argType
		}
	}
}

// substituteTemplate rewrites ty, replacing a Template placeholder that is
// ty itself or one of its union alternates with its bound argument type
// (or Unknown if never bound at the call site). Placeholders inside record
// or function types are left as they are.
func substituteTemplate(r *Registry, ty TypeID, subst map[string]TypeID) TypeID {
	t := r.Type(r.deref(ty))
	if t.Kind == KindTemplate {
		if bound, ok := subst[t.TemplateName]; ok {
			return bound
		}
		return r.GetNative(NativeUnknown)
	}
	if t.Kind == KindUnion {
		alts := make([]TypeID, len(t.Alternates))
		for i, a := range t.Alternates {
			alts[i] = substituteTemplate(r, a, subst)
		}
		return r.CreateUnion(alts...)
	}
	return ty
}

// evalArith implements spec.md §4.G's arithmetic/logical operator rule.
func (e *Engine) evalArith(op string, lt, rt TypeID) TypeID {
	r := e.Reg
	ltD, rtD := r.Type(r.deref(lt)), r.Type(r.deref(rt))
	if ltD.Kind == KindUnknown || rtD.Kind == KindUnknown {
		return r.GetNative(NativeUnknown)
	}
	if op == "+" {
		if isStringLike(ltD) || isStringLike(rtD) {
			return r.GetNative(NativeString)
		}
	}
	return r.GetNative(NativeNumber)
}

func isStringLike(t *Type) bool {
	return (t.Kind == KindPrimitive && t.Prim == PrimString) || (t.Kind == KindBoxed && t.Boxed == BoxedString)
}

// FinalizeVar implements spec.md §4.G's finalization rule: for a Var
// with Declared == false, its final type is the join over every flow
// state it appeared in during the pass. Declared vars are left
// unchanged. Callers accumulate per-point states themselves (e.g. by
// joining every FlowState the engine produced for that Var) and pass the
// accumulated type here for clarity and a single choke point that
// enforces the "declared vars never widen" rule.
func (e *Engine) FinalizeVar(v *Var, joined TypeID) {
	if v.Declared {
		return
	}
	v.Type = joined
}
