package schema

import (
	"github.com/docshape/docshape/jsonval"
)

// Self names the enclosing document in a DocumentField target. It lets a
// document reference itself before its own variable exists.
const Self = "self"

// DocumentField embeds another document, either inline (the document body
// is flattened into place) or by reference (a $ref into definitions). The
// target is a *Document or a registered document name.
type DocumentField struct {
	target   any // *Document or string
	asRef    bool
	keywords []Keyword
	required any
}

func newDocumentField(target any, asRef bool, kws []Keyword) (*DocumentField, error) {
	switch target.(type) {
	case *Document, string:
	default:
		return nil, configErrorf("document field target: want *Document or name, got %T", target)
	}
	if err := checkKeywords("document", kws); err != nil {
		return nil, err
	}
	kws, required := splitRequired(kws)
	return &DocumentField{target: target, asRef: asRef, keywords: kws, required: required}, nil
}

// NewDocField builds an inline document field.
func NewDocField(target any, kws ...Keyword) (*DocumentField, error) {
	return newDocumentField(target, false, kws)
}

// NewDocRef builds a by-reference document field.
func NewDocRef(target any, kws ...Keyword) (*DocumentField, error) {
	return newDocumentField(target, true, kws)
}

// DocField is NewDocField that panics on an invalid declaration.
func DocField(target any, kws ...Keyword) *DocumentField {
	f, err := NewDocField(target, kws...)
	if err != nil {
		panic(err)
	}
	return f
}

// DocRef is NewDocRef that panics on an invalid declaration.
func DocRef(target any, kws ...Keyword) *DocumentField {
	f, err := NewDocRef(target, kws...)
	if err != nil {
		panic(err)
	}
	return f
}

// SelfRef references the enclosing document by $ref.
func SelfRef(kws ...Keyword) *DocumentField {
	return DocRef(Self, kws...)
}

func (f *DocumentField) Kind() string       { return "document" }
func (f *DocumentField) requiredValue() any { return f.required }

func (f *DocumentField) resolve(ctx *genContext) (*Document, error) {
	switch t := f.target.(type) {
	case *Document:
		return t, nil
	case string:
		if t == Self {
			d := ctx.current()
			if d == nil {
				return nil, configErrorf("self reference outside of a document")
			}
			return d, nil
		}
		d, ok := ctx.reg.Lookup(t)
		if !ok {
			return nil, configErrorf("unknown document %q", t)
		}
		return d, nil
	}
	return nil, configErrorf("document field target: want *Document or name, got %T", f.target)
}

func (f *DocumentField) emit(ctx *genContext) (*jsonval.Node, error) {
	doc, err := f.resolve(ctx)
	if err != nil {
		return nil, prependStep(err, fieldStep("document", ctx.role))
	}
	var node *jsonval.Node
	// a self reference can only be expressed as a $ref; inlining it
	// would never terminate
	if f.asRef || f.target == Self {
		id, err := ctx.registerRef(doc)
		if err != nil {
			return nil, prependStep(err, fieldStep("document", ctx.role))
		}
		node = refNode(id)
	} else {
		node, err = ctx.inlineDocument(doc)
		if err != nil {
			return nil, prependStep(err, fieldStep("document", ctx.role))
		}
	}
	if err := emitKeywords(node, f.keywords, ctx); err != nil {
		return nil, prependStep(err, fieldStep("document", ctx.role))
	}
	return node, nil
}

// RefField emits a raw $ref to an arbitrary schema URI or pointer. It
// bypasses the definitions registry entirely.
type RefField struct {
	ref      string
	keywords []Keyword
	required any
}

// NewRef builds a raw reference field.
func NewRef(ref string, kws ...Keyword) (*RefField, error) {
	if ref == "" {
		return nil, configErrorf("reference field requires a target")
	}
	if err := checkKeywords("$ref", kws); err != nil {
		return nil, err
	}
	kws, required := splitRequired(kws)
	return &RefField{ref: ref, keywords: kws, required: required}, nil
}

// Ref is NewRef that panics on an invalid declaration.
func Ref(ref string, kws ...Keyword) *RefField {
	f, err := NewRef(ref, kws...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *RefField) Kind() string       { return "$ref" }
func (f *RefField) requiredValue() any { return f.required }

func (f *RefField) emit(ctx *genContext) (*jsonval.Node, error) {
	node := jsonval.NewObject().Set("$ref", jsonval.FromString(f.ref))
	if err := emitKeywords(node, f.keywords, ctx); err != nil {
		return nil, prependStep(err, fieldStep("$ref", ctx.role))
	}
	return node, nil
}
