// docinfo.go
//
// Component C (doc-info adapter), per spec.md §4.C: reads structured
// annotations off an AST node and realizes them into registry types. Doc
// interpretation is isolated here per design note §9 ("the redesign
// isolates all doc interpretation in the doc-info adapter, producing a
// small, uniform stream of events consumed by the scope creator") rather
// than threaded through the scope creator's walk. Grounded on
// original_source JSType.java's @constructor/@interface/@enum/@extends
// vocabulary and cmd/msg-lsp/analysis.go's VTSymbol (type + annotation
// payload kept separate from the parsed value).
package tscore

// NominalKind is the doc-declared nominal role of a declaration.
type NominalKind int

const (
	NominalNone NominalKind = iota
	NominalConstructor
	NominalInterface
	NominalEnum
)

// TypeExpr is a parsed type expression from a doc comment (e.g. the body
// of an @type, @param, or @return tag). It is already parsed by the
// upstream doc-comment parser (out of scope, spec.md §1); this core only
// realizes it into a TypeID.
//
// A TypeExpr is one of: a primitive/builtin name ("number", "string",
// "Object", ...), a qualified nominal name ("NS.Foo"), a nullable wrapper
// ("?T"), a non-null wrapper ("!T"), a union ("A|B"), a record
// ("{k1: T1, k2: T2}"), or a function signature
// ("function(this:T, A, B): R"). Represented here as a small recursive
// value rather than a raw string so the adapter never re-parses text.
type TypeExpr struct {
	Name      string // builtin/nominal name, "" for compound forms
	Nullable  bool
	NonNull   bool
	Union     []TypeExpr
	RecordOf  map[string]TypeExpr
	RecordOrd []string
	FuncThis  *TypeExpr
	FuncArgs  []TypeExpr
	FuncRet   *TypeExpr
}

// Param is one @param tag: a name plus its declared type expression.
type Param struct {
	Name string
	Type TypeExpr
}

// DocInfo is the structured form of a node's documentation comment, as
// produced by the out-of-scope doc-comment parser (spec.md §1). Every
// field is optional; zero value means "not annotated."
type DocInfo struct {
	Nominal NominalKind

	HasType bool
	Type    TypeExpr // @type

	Params []Param   // @param, in declaration order
	Return *TypeExpr // @return

	Extends     *TypeExpr  // @extends
	Implements  []TypeExpr // @implements
	Template    []string   // @template
	IsExtern    bool       // true when this node lives in the externs AST
	ElementType *TypeExpr  // @enum's element type, e.g. "@enum {number}"
}

// realize turns a TypeExpr into a TypeID, emitting Named placeholders for
// not-yet-declared nominal references (spec.md §4.C: "a Named placeholder
// is emitted and recorded for later resolution"). Plain entry point with no
// enclosing @template context; see realizeInTemplateScope for signatures
// that declare their own @template parameters.
func (r *Registry) realize(e TypeExpr) TypeID {
	return r.realizeInTemplateScope(e, nil)
}

// realizeInTemplateScope is realize, but resolves any bare name matching one
// of templates to a Template placeholder (component G's structural
// substitution target) instead of a Named placeholder (spec.md §3's
// Template data variant; SPEC_FULL §12.4's substitution algorithm).
func (r *Registry) realizeInTemplateScope(e TypeExpr, templates map[string]bool) TypeID {
	switch {
	case e.Union != nil:
		alts := make([]TypeID, len(e.Union))
		for i, alt := range e.Union {
			alts[i] = r.realizeInTemplateScope(alt, templates)
		}
		return r.CreateUnion(alts...)
	case e.RecordOf != nil:
		fields := make([]Property, 0, len(e.RecordOrd))
		for _, name := range e.RecordOrd {
			fields = append(fields, Property{Name: name, Type: r.realizeInTemplateScope(e.RecordOf[name], templates), Kind: PropDeclared})
		}
		return r.CreateRecord(fields)
	case e.FuncArgs != nil || e.FuncRet != nil || e.FuncThis != nil:
		params := make([]TypeID, len(e.FuncArgs))
		for i, a := range e.FuncArgs {
			params[i] = r.realizeInTemplateScope(a, templates)
		}
		ret := r.GetNative(NativeUnknown)
		if e.FuncRet != nil {
			ret = r.realizeInTemplateScope(*e.FuncRet, templates)
		}
		this := TypeID(noTypeID)
		if e.FuncThis != nil {
			this = r.realizeInTemplateScope(*e.FuncThis, templates)
		}
		return r.CreateFunction("", params, false, ret, this, false, false)
	}

	var base TypeID
	if templates != nil && templates[e.Name] {
		base = r.CreateTemplate(e.Name)
	} else {
		base = r.realizeName(e.Name)
	}
	if e.Nullable {
		return r.CreateUnion(base, r.GetNative(NativeNull))
	}
	return base
}

// templateSet turns a doc's @template names into a membership set for
// realizeInTemplateScope.
func templateSet(doc *DocInfo) map[string]bool {
	if doc == nil || len(doc.Template) == 0 {
		return nil
	}
	set := make(map[string]bool, len(doc.Template))
	for _, name := range doc.Template {
		set[name] = true
	}
	return set
}

// ParseTypeName resolves a bare type name the same way a doc expression's
// leaf name would (builtin keyword, previously-registered nominal, or a
// fresh Named placeholder). Exported for dev tooling (cmd/typeshell) that
// wants to type a name at a prompt without authoring a full TypeExpr.
func (r *Registry) ParseTypeName(name string) TypeID {
	return r.realizeName(name)
}

// realizeName resolves a bare name to a builtin, a previously-registered
// nominal, or a fresh Named placeholder.
func (r *Registry) realizeName(name string) TypeID {
	switch name {
	case "", "?":
		return r.GetNative(NativeUnknown)
	case "*":
		return r.GetNative(NativeAll)
	case "number":
		return r.GetNative(NativeNumber)
	case "string":
		return r.GetNative(NativeString)
	case "boolean":
		return r.GetNative(NativeBoolean)
	case "null":
		return r.GetNative(NativeNull)
	case "undefined", "void":
		return r.GetNative(NativeVoid)
	case "Number":
		return r.GetNative(NativeNumberObject)
	case "String":
		return r.GetNative(NativeStringObject)
	case "Boolean":
		return r.GetNative(NativeBooleanObject)
	case "Object":
		return r.GetNative(NativeObject)
	}
	if resolved, ok := r.ResolveNamed(name); ok {
		return resolved
	}
	return r.CreateNamed(name)
}

// declaredType realizes a node's @type tag, or Unknown if absent.
func (r *Registry) declaredType(doc *DocInfo) TypeID {
	if doc == nil || !doc.HasType {
		return r.GetNative(NativeUnknown)
	}
	return r.realizeInTemplateScope(doc.Type, templateSet(doc))
}

// paramTypes realizes a node's @param tags in order, resolving any name
// matching this node's own @template list to a Template placeholder.
func (r *Registry) paramTypes(doc *DocInfo) []TypeID {
	if doc == nil {
		return nil
	}
	templates := templateSet(doc)
	out := make([]TypeID, len(doc.Params))
	for i, p := range doc.Params {
		out[i] = r.realizeInTemplateScope(p.Type, templates)
	}
	return out
}

// returnType realizes a node's @return tag, or Unknown if absent.
func (r *Registry) returnType(doc *DocInfo) TypeID {
	if doc == nil || doc.Return == nil {
		return r.GetNative(NativeUnknown)
	}
	return r.realizeInTemplateScope(*doc.Return, templateSet(doc))
}

// nominalKind reports the doc-declared nominal role, NominalNone if none.
func (r *Registry) nominalKind(doc *DocInfo) NominalKind {
	if doc == nil {
		return NominalNone
	}
	return doc.Nominal
}

// baseType realizes a node's @extends tag. ok is false when absent.
func (r *Registry) baseType(doc *DocInfo) (TypeID, bool) {
	if doc == nil || doc.Extends == nil {
		return noTypeID, false
	}
	return r.realize(*doc.Extends), true
}

// implementedInterfaces realizes a node's @implements tags.
func (r *Registry) implementedInterfaces(doc *DocInfo) []TypeID {
	if doc == nil {
		return nil
	}
	out := make([]TypeID, len(doc.Implements))
	for i, e := range doc.Implements {
		out[i] = r.realize(e)
	}
	return out
}

// templateParams returns a node's @template parameter names.
func (r *Registry) templateParams(doc *DocInfo) []string {
	if doc == nil {
		return nil
	}
	return doc.Template
}

// enumElementType realizes an @enum tag's element type, defaulting to
// Number per the common convention when the tag carries no payload.
func (r *Registry) enumElementType(doc *DocInfo) TypeID {
	if doc == nil || doc.ElementType == nil {
		return r.GetNative(NativeNumber)
	}
	return r.realize(*doc.ElementType)
}
