package schema

import (
	"github.com/docshape/docshape/jsonval"
	"github.com/docshape/docshape/roles"
)

// Field is one declaration node describing a JSON Schema fragment. The
// hierarchy is closed: primitives, Array, Dict, the combinators,
// DocumentField and RefField. Fields are immutable after construction and
// may be shared across documents; each (field, role) pair emits
// deterministically.
type Field interface {
	// Kind names the field variant ("string", "array", "oneOf", ...).
	Kind() string

	emit(ctx *genContext) (*jsonval.Node, error)

	// requiredValue returns the declared required attribute: nil, a bool,
	// or a *roles.Var.
	requiredValue() any
}

// Keyword is one declared keyword→value pair. Values may be literals or
// *roles.Var.
type Keyword struct {
	Name  string
	Value any
}

// K declares a keyword value.
func K(name string, value any) Keyword {
	return Keyword{Name: name, Value: value}
}

// Required declares the required attribute; the value may also be a
// *roles.Var for role-conditional requiredness.
func Required(v any) Keyword {
	return Keyword{Name: "required", Value: v}
}

// emitKeywords appends resolved keyword values to schema in declaration
// order. Keywords resolving to absent are omitted entirely.
func emitKeywords(schema *jsonval.Node, kws []Keyword, ctx *genContext) error {
	for _, kw := range kws {
		v, ok := roles.Resolve(kw.Value, ctx.role)
		if !ok {
			continue
		}
		node, err := jsonval.FromAny(v)
		if err != nil {
			e := configErrorf("keyword %q: %v", kw.Name, err)
			e.Err = err
			return prependStep(e, attrStep(kw.Name, ctx.role))
		}
		schema.Set(kw.Name, node)
	}
	return nil
}

// isTruthy mirrors the truthiness rule for the required attribute: false,
// nil and absent are not required, anything else is.
func isTruthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	default:
		return true
	}
}

func refNode(id string) *jsonval.Node {
	return jsonval.NewObject().Set("$ref", jsonval.FromString("#/definitions/"+id))
}
