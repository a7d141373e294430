package schema

import (
	"github.com/docshape/docshape/jsonval"
)

// Primitive is a leaf field mapping directly to a JSON Schema type with a
// table of passthrough keywords.
type Primitive struct {
	kind     string
	keywords []Keyword
	required any
}

// NewPrimitive builds a primitive field of the given kind, validating
// every keyword against the kind's catalogue.
func NewPrimitive(kind string, kws ...Keyword) (*Primitive, error) {
	switch kind {
	case "boolean", "string", "number", "integer", "null":
	default:
		return nil, configErrorf("unknown primitive kind %q", kind)
	}
	if err := checkKeywords(kind, kws); err != nil {
		return nil, err
	}
	kws, required := splitRequired(kws)
	return &Primitive{kind: kind, keywords: kws, required: required}, nil
}

func (f *Primitive) Kind() string { return f.kind }

func (f *Primitive) requiredValue() any { return f.required }

func (f *Primitive) emit(ctx *genContext) (*jsonval.Node, error) {
	schema := jsonval.NewObject().Set("type", jsonval.FromString(f.kind))
	if err := emitKeywords(schema, f.keywords, ctx); err != nil {
		return nil, prependStep(err, fieldStep(f.kind, ctx.role))
	}
	return schema, nil
}

func mustPrimitive(kind string, kws []Keyword) *Primitive {
	f, err := NewPrimitive(kind, kws...)
	if err != nil {
		panic(err)
	}
	return f
}

// Boolean declares a boolean field. Like all declaration sugar it panics
// on an invalid keyword: declarations are static and a bad one is a
// programming error.
func Boolean(kws ...Keyword) *Primitive {
	return mustPrimitive("boolean", kws)
}

// String declares a string field.
func String(kws ...Keyword) *Primitive {
	return mustPrimitive("string", kws)
}

// Number declares a number field.
func Number(kws ...Keyword) *Primitive {
	return mustPrimitive("number", kws)
}

// Integer declares an integer field.
func Integer(kws ...Keyword) *Primitive {
	return mustPrimitive("integer", kws)
}

// Null declares a null field.
func Null(kws ...Keyword) *Primitive {
	return mustPrimitive("null", kws)
}

func formatString(format string, kws []Keyword) *Primitive {
	for _, kw := range kws {
		if kw.Name == "format" {
			return mustPrimitive("string", kws)
		}
	}
	return mustPrimitive("string", append([]Keyword{K("format", format)}, kws...))
}

// Email declares a string field with format "email".
func Email(kws ...Keyword) *Primitive {
	return formatString("email", kws)
}

// DateTime declares a string field with format "date-time".
func DateTime(kws ...Keyword) *Primitive {
	return formatString("date-time", kws)
}

// URI declares a string field with format "uri".
func URI(kws ...Keyword) *Primitive {
	return formatString("uri", kws)
}

// IPv4 declares a string field with format "ipv4".
func IPv4(kws ...Keyword) *Primitive {
	return formatString("ipv4", kws)
}
