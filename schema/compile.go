package schema

import (
	"fmt"

	"github.com/docshape/docshape/debug"
	"github.com/docshape/docshape/jsonval"
	"github.com/docshape/docshape/roles"
)

type compileOpts struct {
	role    roles.Role
	ordered bool
	reg     *Registry
}

// CompileOption configures one compilation.
type CompileOption func(*compileOpts)

// WithRole selects the compilation role. Default is roles.Default.
func WithRole(r roles.Role) CompileOption {
	return func(co *compileOpts) {
		co.role = r
	}
}

// Ordered selects between declaration-ordered output (true, the default)
// and lexicographically sorted object keys (false).
func Ordered(v bool) CompileOption {
	return func(co *compileOpts) {
		co.ordered = v
	}
}

// WithRegistry selects the registry resolving by-name document targets.
// Default is DefaultRegistry.
func WithRegistry(r *Registry) CompileOption {
	return func(co *compileOpts) {
		co.reg = r
	}
}

// Compile renders d into a complete draft-04 root schema for the given
// role. The root body is emitted in place unless something in the walk
// references the root by $ref, in which case the top level becomes a
// $ref and the body lives once under definitions. Compilation never
// mutates d; the same document may compile concurrently under different
// roles.
func Compile(d *Document, opts ...CompileOption) (*jsonval.Node, error) {
	co := compileOpts{role: roles.Default, ordered: true, reg: DefaultRegistry}
	for _, opt := range opts {
		opt(&co)
	}
	if debug.Compile() {
		debug.Logf("compile: %s role=%s ordered=%v\n", d.name, co.role, co.ordered)
	}
	ctx := &genContext{
		role:    co.role,
		ordered: co.ordered,
		reg:     co.reg,
		defs:    newDefinitions(),
	}
	// provisional entry so self and by-name references to the root
	// resolve to one shared definition
	root, _, err := ctx.defs.claim(d, ctx.role)
	if err != nil {
		return nil, err
	}
	ctx.stack = []stackFrame{{doc: d, role: co.role}}
	body, err := emitDocument(d, ctx)
	if err != nil {
		return nil, prependStep(err, docStep(d.name, ctx.role))
	}
	root.node = body
	root.state = defComplete

	out := jsonval.NewObject()
	if !d.omitURI {
		out.Set("$schema", jsonval.FromString(d.schemaURI))
	}
	var skip *defEntry
	if root.referenced {
		out.Set("$ref", jsonval.FromString("#/definitions/"+root.id))
	} else {
		skip = root
		for i, f := range body.Fields {
			out.Set(f, body.Values[i])
		}
	}
	if defs := ctx.defs.node(skip); defs != nil {
		out.Set("definitions", defs)
	}
	if !co.ordered {
		out.SortObjects()
	}
	return out, nil
}

// Schema compiles d; see Compile.
func (d *Document) Schema(opts ...CompileOption) (*jsonval.Node, error) {
	return Compile(d, opts...)
}

// emitDocument renders d's schema fragment, without $schema or
// definitions. Callers wrap errors with the document step.
func emitDocument(d *Document, ctx *genContext) (*jsonval.Node, error) {
	if d.allowed != nil && !d.allowed.Match(ctx.role) {
		return nil, &Error{
			Kind: KindRole,
			Msg:  fmt.Sprintf("document %q does not compile for role %q", d.name, ctx.role),
		}
	}
	if debug.Compile() {
		debug.Logf("emit: %s mode=%s role=%s\n", d.name, d.mode, ctx.role)
	}
	if d.mode == AllOf && len(d.parents) > 0 {
		return emitAllOf(d, ctx)
	}
	return objectFragment(d, d.effectiveFields(ctx.role), ctx)
}

// emitAllOf renders the inheritance chain as allOf parts: one $ref per
// AllOf-mode parent in declaration order, then the document's own
// fragment. Inline-mode parents fold their flattened chains into the
// fragment instead, earlier-listed parent winning.
func emitAllOf(d *Document, ctx *genContext) (*jsonval.Node, error) {
	parts := &jsonval.Node{Type: jsonval.ArrayType}
	for _, p := range d.parents {
		if p.mode != AllOf {
			continue
		}
		id, err := ctx.registerRef(p)
		if err != nil {
			return nil, prependStep(err, attrStep("allOf", ctx.role))
		}
		parts.Append(refNode(id))
	}
	frag := NewFields()
	for i := len(d.parents) - 1; i >= 0; i-- {
		p := d.parents[i]
		if p.mode == AllOf {
			continue
		}
		for _, doc := range p.chain() {
			doc.layerInto(frag, ctx.role)
		}
	}
	d.layerInto(frag, ctx.role)
	fragNode, err := objectFragment(d, frag, ctx)
	if err != nil {
		return nil, err
	}
	parts.Append(fragNode)
	return jsonval.NewObject().Set("allOf", parts), nil
}

// objectFragment renders one object schema from a flattened field table
// and d's object-level options. Properties are always present, required
// only when non-empty, everything else only when set.
func objectFragment(d *Document, fields *Fields, ctx *genContext) (*jsonval.Node, error) {
	out := jsonval.NewObject()
	if err := setResolvedString(out, "title", d.title, ctx); err != nil {
		return nil, err
	}
	if err := setResolvedString(out, "description", d.description, ctx); err != nil {
		return nil, err
	}
	out.Set("type", jsonval.FromString("object"))
	props, required, err := emitProperties(fields, ctx)
	if err != nil {
		return nil, prependStep(err, attrStep("properties", ctx.role))
	}
	out.Set("properties", props)
	if len(required) > 0 {
		out.Set("required", requiredNode(required))
	}
	if d.patternProperties != nil {
		pp, _, err := emitProperties(d.patternProperties, ctx)
		if err != nil {
			return nil, prependStep(err, attrStep("patternProperties", ctx.role))
		}
		out.Set("patternProperties", pp)
	}
	if d.additionalProperties != nil {
		node, err := emitFieldOrBool(d.additionalProperties, ctx)
		if err != nil {
			return nil, prependStep(err, attrStep("additionalProperties", ctx.role))
		}
		if node != nil {
			out.Set("additionalProperties", node)
		}
	}
	if d.minProperties != nil {
		out.Set("minProperties", jsonval.FromInt(int64(*d.minProperties)))
	}
	if d.maxProperties != nil {
		out.Set("maxProperties", jsonval.FromInt(int64(*d.maxProperties)))
	}
	return out, nil
}

// setResolvedString resolves v (literal or *roles.Var) and sets it as a
// string attribute; absent omits the attribute.
func setResolvedString(out *jsonval.Node, name string, v any, ctx *genContext) error {
	v, ok := roles.Resolve(v, ctx.role)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		err := configErrorf("attribute %q: want string, got %T", name, v)
		return prependStep(err, attrStep(name, ctx.role))
	}
	out.Set(name, jsonval.FromString(s))
	return nil
}
