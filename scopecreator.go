// scopecreator.go
//
// Component D (typed scope creator), per spec.md §4.D: a two-phase AST
// pass per scope that materializes nominal types, declares variables, and
// assigns property types. Grounded on cmd/msg-lsp/analysis.go's
// foldX-per-node-tag dispatcher, generalized from MindScript's single
// recursive fold into the documented collect-then-recurse two-phase walk,
// and on original_source's TypedScopeCreator special forms (prototype
// literal merge, this.x assignment in a constructor, goog.reflect.object).
package tscore

// ScopeCreator builds the scope tree and populates the registry from an
// AST, per spec.md §4.D.
type ScopeCreator struct {
	Reg        *Registry
	Diags      *Diagnostics
	Opts       Options
	GlobalThis TypeID
	window     TypeID // set once a Window-named constructor is seen, noTypeID until then

	// FunctionScopes and FunctionThis let a caller driving the inference
	// engine (G) find, for every function node visited during phase 2, the
	// inner scope that its body was walked in and the this-type to pass to
	// Engine.Run.
	FunctionScopes map[Node]*Scope
	FunctionThis   map[Node]TypeID
}

// NewScopeCreator creates a scope creator over a fresh registry and
// diagnostic sink, realizing the synthetic GlobalThis type (spec.md
// §4.D "Global this").
func NewScopeCreator(reg *Registry, diags *Diagnostics, opts Options) *ScopeCreator {
	gt := reg.CreateObject("GlobalThis", noTypeID)
	return &ScopeCreator{
		Reg: reg, Diags: diags, Opts: opts, GlobalThis: gt, window: noTypeID,
		FunctionScopes: map[Node]*Scope{},
		FunctionThis:   map[Node]TypeID{},
	}
}

// CreateScopes runs the full two-phase pass over externs then sources,
// per spec.md §5 ("externs + source pair") and returns the populated
// global scope.
func (c *ScopeCreator) CreateScopes(externsRoot, sourceRoot Node) *Scope {
	global := NewScope(nil)
	if externsRoot != nil {
		c.createScope(externsRoot, global, noTypeID, c.Opts.FlagExternProperties)
	}
	if sourceRoot != nil {
		c.createScope(sourceRoot, global, noTypeID, false)
	}
	return global
}

// createScope runs phase 1 (collect declarations in this scope's direct
// statements) then phase 2 (recurse into nested function bodies), per
// spec.md §4.D. ctorInstance is the enclosing constructor's Instance type
// (for `this.x = ...` binding), noTypeID outside a constructor body.
func (c *ScopeCreator) createScope(block Node, scope *Scope, ctorInstance TypeID, extern bool) {
	var nestedFns []Node

	for _, stmt := range block.Children() {
		nestedFns = append(nestedFns, c.collectStmt(stmt, scope, ctorInstance, extern)...)
	}

	for _, fn := range nestedFns {
		c.recurseIntoFunction(fn, scope, extern)
	}
}

// collectStmt handles phase 1 for one top-level statement of the current
// scope, recognizing the special forms enumerated in spec.md §4.D. It
// returns every nested function-expression/declaration node introduced by
// stmt whose body must be visited in phase 2 (not descending into it now).
func (c *ScopeCreator) collectStmt(stmt Node, scope *Scope, ctorInstance TypeID, extern bool) []Node {
	doc := stmt.Doc()

	switch stmt.Kind() {
	case NodeFunctionDecl:
		c.declareFunction(stmt, scope, extern)
		return []Node{stmt}

	case NodeVarDecl:
		return c.collectVarDecl(stmt, scope, extern)

	case NodeExprStmt:
		expr := stmt.Children()
		if len(expr) == 0 {
			return nil
		}
		return c.collectExprStmt(expr[0], scope, ctorInstance, extern)

	default:
		_ = doc
		return nil
	}
}

// declareFunction handles `function F() { ... }`, with or without
// @constructor/@interface, declaring F in scope with its function type.
func (c *ScopeCreator) declareFunction(stmt Node, scope *Scope, extern bool) {
	r := c.Reg
	doc := stmt.Doc()
	name := stmt.StringValue()
	qualified := qualify(scope, name)
	stmt.SetQualifiedName(qualified)

	params := r.paramTypes(doc)
	ret := r.returnType(doc)
	nominal := r.nominalKind(doc)
	isCtor := nominal == NominalConstructor
	isIface := nominal == NominalInterface

	fnID := r.CreateFunction(nameOrEmpty(isCtor || isIface, qualified), params, false, ret, noTypeID, isCtor, isIface)

	if isCtor || isIface {
		c.wireNominalExtras(fnID, doc, qualified)
	}

	scope.Declare(r, name, fnID, doc != nil, stmt)
}

// wireNominalExtras applies @extends/@implements/@template to a freshly
// created constructor or interface function, and records "Window" for
// the global-this subtype rule (spec.md §4.D).
func (c *ScopeCreator) wireNominalExtras(fnID TypeID, doc *DocInfo, qualified string) {
	r := c.Reg
	fn := r.Type(fnID)

	if base, ok := r.baseType(doc); ok {
		// the instance keeps its own prototype as implicit prototype; the
		// base link is placed behind that prototype.
		bd := r.Type(r.deref(base))
		if bd.Kind == KindFunction && bd.Instance != noTypeID {
			proto := r.Type(fn.Prototype)
			proto.ImplicitProto = bd.Instance
		} else {
			// Unknown supertype: mark the prototype chain with an Unknown
			// link (spec.md §4.G failure semantics); property lookup past it
			// falls back to Unknown rather than erroring.
			proto := r.Type(fn.Prototype)
			proto.ImplicitProto = r.GetNative(NativeUnknown)
		}
	}
	fn.ImplementsIface = r.implementedInterfaces(doc)
	_ = r.templateParams(doc) // recorded on the function's declared params/return already

	if qualified == c.windowName() {
		c.window = fn.Instance
		// GlobalThis is a subtype of the detected Window instance (spec.md
		// §4.D), reachable by prototype-chain walk; it remains a distinct
		// object, never equal to the window instance by identity.
		gt := r.Type(c.GlobalThis)
		gt.ImplicitProto = fn.Instance
	}
}

// collectVarDecl handles `var Name = rhs;`, including the alias and
// @constructor/@enum binding cases (spec.md §4.D). It returns any
// function-literal rhs that needs a phase-2 body visit (e.g. `var Foo =
// function(){}` with @constructor, or a plain function-valued var).
func (c *ScopeCreator) collectVarDecl(stmt Node, scope *Scope, extern bool) []Node {
	r := c.Reg
	var nestedFns []Node
	for _, binding := range stmt.Children() {
		name := binding.StringValue()
		doc := binding.Doc()
		children := binding.Children()
		var rhs Node
		if len(children) > 0 {
			rhs = children[0]
		}
		qualified := qualify(scope, name)
		binding.SetQualifiedName(qualified)

		nominal := r.nominalKind(doc)

		switch {
		case nominal == NominalEnum:
			elemType := r.enumElementType(doc)
			members := enumMembers(rhs)
			enumID := r.CreateEnum(qualified, elemType, members)
			scope.Declare(r, name, enumID, true, binding)

		case nominal == NominalConstructor && rhs != nil && isFunctionLiteral(rhs):
			params := r.paramTypes(doc)
			ret := r.returnType(doc)
			fnID := r.CreateFunction(qualified, params, false, ret, noTypeID, true, false)
			c.wireNominalExtras(fnID, doc, qualified)
			scope.Declare(r, name, fnID, true, binding)
			rhs.SetQualifiedName(qualified)
			nestedFns = append(nestedFns, rhs)

		case rhs != nil && isBareNameRef(rhs) && c.isAliasCandidate(doc, rhs, scope):
			// var A = B; where B resolves to a nominal and A carries
			// @constructor/@enum, or B is itself a nominal reference: alias
			// (spec.md §4.D "Alias handling", §9 open question preserved via
			// the §8 scenarios rather than re-derived generally).
			target := c.resolveNameRef(rhs, scope)
			if target != noTypeID {
				r.BindAlias(qualified, target)
				scope.Declare(r, name, target, true, binding)
			} else {
				declared := doc != nil && doc.HasType
				ty := r.GetNative(NativeNo)
				if declared {
					ty = r.declaredType(doc)
				}
				scope.Declare(r, name, ty, declared, binding)
			}

		case rhs != nil && isFunctionLiteral(rhs):
			// plain `var f = function(...) {...};`, no @constructor/@enum:
			// still needs a function type and a phase-2 body visit so its
			// locals and calls get analyzed.
			params := r.paramTypes(doc)
			ret := r.returnType(doc)
			fnID := r.CreateFunction(qualified, params, false, ret, noTypeID, false, false)
			scope.Declare(r, name, fnID, doc != nil, binding)
			rhs.SetQualifiedName(qualified)
			nestedFns = append(nestedFns, rhs)

		default:
			declared := doc != nil && doc.HasType
			// an inferred (undeclared) var seeds at No, the join identity
			// (spec.md §4.G): its first assignment then joins to exactly the
			// rhs type instead of collapsing to Unknown.
			ty := r.GetNative(NativeNo)
			if declared {
				ty = r.declaredType(doc)
			}
			scope.Declare(r, name, ty, declared, binding)
		}
	}
	return nestedFns
}

// isAliasCandidate implements the alias criterion preserved by spec.md
// §8's scenarios: a bare rhs name reference to an already-nominal type,
// when either the lhs carries @constructor/@enum or the referent itself
// is nominal.
func (c *ScopeCreator) isAliasCandidate(doc *DocInfo, rhs Node, scope *Scope) bool {
	if doc != nil && (doc.Nominal == NominalConstructor || doc.Nominal == NominalEnum) {
		return true
	}
	target := c.resolveNameRef(rhs, scope)
	if target == noTypeID {
		return false
	}
	t := c.Reg.Type(c.Reg.deref(target))
	return t.Kind == KindFunction || t.Kind == KindEnum
}

func (c *ScopeCreator) resolveNameRef(n Node, scope *Scope) TypeID {
	v := scope.Lookup(n.StringValue())
	if v == nil {
		return noTypeID
	}
	return v.Type
}

// collectExprStmt handles the property-assignment special forms of
// spec.md §4.D: F.prototype = {...}, F.prototype.m = expr,
// this.x = expr, NS.Sub = function(){}, bare stub x.y references, and
// goog.reflect.object(...). Returns any nested function node the
// statement introduces.
func (c *ScopeCreator) collectExprStmt(expr Node, scope *Scope, ctorInstance TypeID, extern bool) []Node {
	switch expr.Kind() {
	case NodeCall:
		if isGoogReflectObjectCall(expr) {
			c.checkGoogReflectObject(expr)
			return nil
		}
		return nil

	case NodeAssign:
		lhs, rhs := expr.Children()[0], expr.Children()[1]
		if lhs.Kind() != NodeGetProp {
			return nil
		}
		return c.collectPropertyAssign(lhs, rhs, scope, ctorInstance, extern)

	case NodeGetProp:
		// bare `/** @type T */ x.y;` stub reference, no rhs.
		c.collectStub(expr, scope, extern)
		return nil

	default:
		return nil
	}
}

// collectPropertyAssign dispatches the `a.b = rhs` family.
func (c *ScopeCreator) collectPropertyAssign(lhs, rhs Node, scope *Scope, ctorInstance TypeID, extern bool) []Node {
	r := c.Reg
	base := lhs.Children()[0]
	prop := lhs.StringValue()
	doc := lhs.Doc()
	if doc == nil {
		doc = rhs.Doc()
	}

	// this.x = expr inside a constructor body.
	if base.Kind() == NodeThis && ctorInstance != noTypeID {
		ty := c.typeOfRHSForDeclare(rhs, doc)
		kind := PropInferred
		if doc != nil && doc.HasType {
			kind = PropDeclared
		}
		r.DeclareProperty(ctorInstance, prop, ty, kind, extern)
		if isFunctionLiteral(rhs) {
			return []Node{rhs}
		}
		return nil
	}

	// F.prototype = { ... } — literal merge, preserving the
	// constructor-prototype invariant (spec.md §4.D, scenario 4 in §8):
	// the literal's own anonymous object becomes the implicit prototype of
	// F.prototype; keys written later directly onto F.prototype (the
	// "m3" style) are owned by the FunctionPrototype itself.
	if prop == "prototype" && rhs.Kind() == NodeObjectLit {
		ownerVar := scope.Lookup(base.StringValue())
		if ownerVar == nil {
			return nil
		}
		fn := r.Type(r.deref(ownerVar.Type))
		if fn.Kind != KindFunction || fn.Prototype == noTypeID {
			return nil
		}
		protoType := r.Type(fn.Prototype)
		// the literal object takes over whatever F.prototype linked to
		// before (Object, or the @extends base instance).
		literalObj := r.CreateObject("", protoType.ImplicitProto)
		var nestedFns []Node
		for _, kv := range rhs.Children() {
			kvDoc := kv.Doc()
			valChildren := kv.Children()
			if len(valChildren) == 0 {
				continue
			}
			valType := c.typeOfRHSForDeclare(valChildren[0], kvDoc)
			kind := PropInferred
			if kvDoc != nil && kvDoc.HasType {
				kind = PropDeclared
			}
			r.DeclareProperty(literalObj, kv.StringValue(), valType, kind, extern)
			if isFunctionLiteral(valChildren[0]) {
				nestedFns = append(nestedFns, valChildren[0])
			}
		}
		protoType.ImplicitProto = literalObj
		return nestedFns
	}

	// F.prototype.m = expr
	if base.Kind() == NodeGetProp && base.StringValue() == "prototype" {
		ctorBase := base.Children()[0]
		ownerVar := scope.Lookup(ctorBase.StringValue())
		if ownerVar == nil {
			return nil
		}
		fn := r.Type(r.deref(ownerVar.Type))
		if fn.Kind != KindFunction || fn.Prototype == noTypeID {
			return nil
		}
		ty := c.typeOfRHSForDeclare(rhs, doc)
		kind := PropInferred
		if doc != nil && doc.HasType {
			kind = PropDeclared
		}
		r.DeclareProperty(fn.Prototype, prop, ty, kind, extern)
		if rhs.Kind() == NodeFunctionExpr {
			rhs.SetQualifiedName(ctorBase.StringValue() + ".prototype." + prop)
			return []Node{rhs}
		}
		return nil
	}

	// NS.Sub = function(){} with @constructor: recursive nominal creation.
	if rhs.Kind() == NodeFunctionExpr && doc != nil && doc.Nominal == NominalConstructor {
		nsVar := scope.Lookup(base.StringValue())
		var qualified string
		if nsVar != nil {
			qualified = base.StringValue() + "." + prop
		} else {
			qualified = prop
		}
		rhs.SetQualifiedName(qualified)
		params := r.paramTypes(doc)
		ret := r.returnType(doc)
		fnID := r.CreateFunction(qualified, params, false, ret, noTypeID, true, false)
		c.wireNominalExtras(fnID, doc, qualified)
		if nsVar != nil {
			nsObj := r.Type(r.deref(nsVar.Type))
			if nsObj.isObjectLike() {
				r.DeclareProperty(r.deref(nsVar.Type), prop, fnID, PropDeclared, extern)
			}
		}
		return []Node{rhs}
	}

	// generic namespace property assignment: NS.x = expr.
	nsVar := scope.Lookup(base.StringValue())
	if nsVar != nil {
		ownerID := r.deref(nsVar.Type)
		owner := r.Type(ownerID)
		if owner.isObjectLike() {
			ty := c.typeOfRHSForDeclare(rhs, doc)
			kind := PropInferred
			if doc != nil && doc.HasType {
				kind = PropDeclared
			}
			r.DeclareProperty(ownerID, prop, ty, kind, extern)
		}
	}
	if rhs.Kind() == NodeFunctionExpr || rhs.Kind() == NodeFunctionDecl {
		return []Node{rhs}
	}
	return nil
}

// collectStub handles a bare `/** @type T */ x.y;` reference with no rhs
// (spec.md §4.D): stub declaration, property y declared as T (or Unknown)
// on x, extern-flagged when appropriate. A stub with no doc type still
// closes the reverse index over its owner (§8 scenario 1:
// types_with_property("bar") contains Foo even though Foo gains no own
// "bar" entry and GetPropertyType keeps returning Unknown).
func (c *ScopeCreator) collectStub(expr Node, scope *Scope, extern bool) {
	r := c.Reg
	base := expr.Children()[0]
	v := scope.Lookup(base.StringValue())
	if v == nil {
		return
	}
	ownerID := r.deref(v.Type)
	doc := expr.Doc()
	if doc == nil || !doc.HasType {
		r.indexProperty(ownerID, expr.StringValue())
		return
	}
	ty := r.declaredType(doc)
	r.DeclareProperty(ownerID, expr.StringValue(), ty, PropDeclared, extern)
}

// typeOfRHSForDeclare returns the doc-declared type if present, else
// Unknown; inference (G) fills in the real inferred type once it runs —
// the scope creator only needs to know declared-vs-not up front so
// DeclareProperty's PropKind is correct at scope-construction time.
func (c *ScopeCreator) typeOfRHSForDeclare(rhs Node, doc *DocInfo) TypeID {
	if doc != nil && doc.HasType {
		return c.Reg.declaredType(doc)
	}
	if isFunctionLiteral(rhs) {
		r := c.Reg
		params := r.paramTypes(doc)
		ret := r.returnType(doc)
		return r.CreateFunction("", params, false, ret, noTypeID, false, false)
	}
	return literalHintType(c.Reg, rhs)
}

// literalHintType gives property literals (the common F.prototype = {m1:
// 5, ...} case) an immediate concrete type without waiting for the
// dataflow pass, since scope construction runs before inference.
func literalHintType(r *Registry, n Node) TypeID {
	switch n.Kind() {
	case NodeNumberLit:
		return r.GetNative(NativeNumber)
	case NodeStringLit:
		return r.GetNative(NativeString)
	case NodeBooleanLit:
		return r.GetNative(NativeBoolean)
	case NodeNullLit:
		return r.GetNative(NativeNull)
	case NodeVoidLit:
		return r.GetNative(NativeVoid)
	default:
		return r.GetNative(NativeUnknown)
	}
}

// checkGoogReflectObject implements spec.md §4.D's goog.reflect.object
// cast: type-casts the literal to Ctor's instance type, emitting
// CONSTRUCTOR_EXPECTED / OBJECTLIT_EXPECTED diagnostics on shape
// violations (spec.md §7 "Shape" errors).
func (c *ScopeCreator) checkGoogReflectObject(call Node) {
	r := c.Reg
	args := call.Children()[1:] // [0] is the callee `goog.reflect.object`
	if len(args) < 2 {
		return
	}
	ctorArg, litArg := args[0], args[1]

	ctorType := r.realizeName(ctorArg.StringValue())
	ct := r.Type(r.deref(ctorType))
	if ct.Kind != KindFunction || !ct.IsCtor {
		c.Diags.Add(CodeConstructorExpected, ctorArg, "goog.reflect.object requires a constructor, got %s", r.TypeString(ctorType))
		call.SetJSType(r.GetNative(NativeUnknown))
		return
	}
	if litArg.Kind() != NodeObjectLit {
		c.Diags.Add(CodeObjectlitExpected, litArg, "goog.reflect.object requires an object literal as its second argument")
		call.SetJSType(r.GetNative(NativeUnknown))
		return
	}
	call.SetJSType(ct.Instance)
}

// recurseIntoFunction is phase 2 for one function collected in phase 1:
// creates the function's inner scope, declares its parameters, and walks
// its body, passing the constructor's Instance type down when this is a
// ctor so `this.x = ...` binds correctly.
func (c *ScopeCreator) recurseIntoFunction(fn Node, outer *Scope, extern bool) {
	r := c.Reg
	inner := NewScope(outer)

	qualified := fn.QualifiedName()
	var fnType *Type
	if qualified != "" {
		if id, ok := r.ResolveNamed(qualified); ok {
			fnType = r.Type(r.deref(id))
		}
	}
	if fnType == nil {
		if v := outer.Lookup(fn.StringValue()); v != nil {
			fnType = r.Type(r.deref(v.Type))
		}
	}

	var ctorInstance TypeID = noTypeID
	params := fn.Children()
	var body Node
	if len(params) > 0 && params[len(params)-1].Kind() == NodeBlock {
		body = params[len(params)-1]
		params = params[:len(params)-1]
	}

	if fnType != nil && fnType.Kind == KindFunction {
		for i, p := range params {
			if p.Kind() != NodeName {
				continue
			}
			pt := r.GetNative(NativeUnknown)
			if i < len(fnType.Params) {
				pt = fnType.Params[i]
			}
			inner.Declare(r, p.StringValue(), pt, true, p)
		}
		if fnType.IsCtor {
			ctorInstance = fnType.Instance
		}
	}

	fnThis := ctorInstance
	if fnThis == noTypeID && fnType != nil {
		fnThis = fnType.ThisType
	}
	c.FunctionScopes[fn] = inner
	c.FunctionThis[fn] = fnThis

	if body != nil {
		c.createScope(body, inner, ctorInstance, extern)
	}
}

// --- small shape predicates and helpers -----------------------------------

func isFunctionLiteral(n Node) bool {
	return n.Kind() == NodeFunctionExpr || n.Kind() == NodeFunctionDecl
}

func isBareNameRef(n Node) bool {
	return n.Kind() == NodeName
}

func isGoogReflectObjectCall(call Node) bool {
	children := call.Children()
	if len(children) == 0 {
		return false
	}
	callee := children[0]
	return callee.Kind() == NodeGetProp && callee.QualifiedName() == "goog.reflect.object"
}

func enumMembers(objLit Node) []string {
	if objLit == nil || objLit.Kind() != NodeObjectLit {
		return nil
	}
	out := make([]string, 0, len(objLit.Children()))
	for _, kv := range objLit.Children() {
		out = append(out, kv.StringValue())
	}
	return out
}

func nameOrEmpty(cond bool, name string) string {
	if cond {
		return name
	}
	return ""
}

func (c *ScopeCreator) windowName() string {
	if c.Opts.WindowDetectionName != "" {
		return c.Opts.WindowDetectionName
	}
	return "Window"
}

func qualify(scope *Scope, name string) string {
	if scope.IsGlobal() {
		return name
	}
	return name
}
