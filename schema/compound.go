package schema

import (
	"regexp"

	"github.com/docshape/docshape/jsonval"
	"github.com/docshape/docshape/roles"
)

// ArrayField describes a JSON array: one item field (or a tuple of
// fields), item count and uniqueness constraints.
type ArrayField struct {
	items           Field
	tupleItems      []Field
	additionalItems any // nil, bool or Field
	keywords        []Keyword
	required        any
}

// NewArray builds an array field with a single item schema.
func NewArray(items Field, kws ...Keyword) (*ArrayField, error) {
	return newArray(items, nil, kws)
}

// NewArrayTuple builds an array field with positional item schemas.
func NewArrayTuple(items []Field, kws ...Keyword) (*ArrayField, error) {
	return newArray(nil, items, kws)
}

func newArray(items Field, tuple []Field, kws []Keyword) (*ArrayField, error) {
	f := &ArrayField{items: items, tupleItems: tuple}
	rest := make([]Keyword, 0, len(kws))
	for _, kw := range kws {
		if kw.Name != "additionalItems" {
			rest = append(rest, kw)
			continue
		}
		switch kw.Value.(type) {
		case bool, Field:
			f.additionalItems = kw.Value
		default:
			return nil, configErrorf("keyword %q of array field: want bool or Field, got %T", kw.Name, kw.Value)
		}
	}
	if err := checkKeywords("array", rest); err != nil {
		return nil, err
	}
	f.keywords, f.required = splitRequired(rest)
	return f, nil
}

// Array is NewArray that panics on an invalid declaration.
func Array(items Field, kws ...Keyword) *ArrayField {
	f, err := NewArray(items, kws...)
	if err != nil {
		panic(err)
	}
	return f
}

// ArrayTuple is NewArrayTuple that panics on an invalid declaration.
func ArrayTuple(items []Field, kws ...Keyword) *ArrayField {
	f, err := NewArrayTuple(items, kws...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *ArrayField) Kind() string       { return "array" }
func (f *ArrayField) requiredValue() any { return f.required }

func (f *ArrayField) emit(ctx *genContext) (*jsonval.Node, error) {
	schema := jsonval.NewObject().Set("type", jsonval.FromString("array"))
	switch {
	case f.items != nil:
		node, err := f.items.emit(ctx)
		if err != nil {
			return nil, f.wrap(err, attrStep("items", ctx.role))
		}
		schema.Set("items", node)
	case f.tupleItems != nil:
		arr := &jsonval.Node{Type: jsonval.ArrayType}
		for i, item := range f.tupleItems {
			node, err := item.emit(ctx)
			if err != nil {
				err = prependStep(err, indexStep(i, ctx.role))
				return nil, f.wrap(err, attrStep("items", ctx.role))
			}
			arr.Append(node)
		}
		schema.Set("items", arr)
	}
	if f.additionalItems != nil {
		node, err := emitFieldOrBool(f.additionalItems, ctx)
		if err != nil {
			return nil, f.wrap(err, attrStep("additionalItems", ctx.role))
		}
		if node != nil {
			schema.Set("additionalItems", node)
		}
	}
	if err := emitKeywords(schema, f.keywords, ctx); err != nil {
		return nil, prependStep(err, fieldStep("array", ctx.role))
	}
	return schema, nil
}

func (f *ArrayField) wrap(err error, s Step) error {
	return prependStep(prependStep(err, s), fieldStep("array", s.Role))
}

// DictField describes a free-form JSON object with named, patterned and
// additional properties.
type DictField struct {
	properties           *Fields
	patternProperties    *Fields
	additionalProperties any // nil, bool or Field
	keywords             []Keyword
	required             any
}

// NewDict builds an object field from an ordered property table.
func NewDict(props *Fields, kws ...Keyword) (*DictField, error) {
	f := &DictField{properties: props}
	rest := make([]Keyword, 0, len(kws))
	for _, kw := range kws {
		switch kw.Name {
		case "patternProperties":
			pp, ok := kw.Value.(*Fields)
			if !ok {
				return nil, configErrorf("keyword %q of object field: want *Fields, got %T", kw.Name, kw.Value)
			}
			for _, pattern := range pp.Names() {
				if _, err := regexp.Compile(pattern); err != nil {
					return nil, configErrorf("pattern property %q: invalid regular expression: %v", pattern, err)
				}
			}
			f.patternProperties = pp
		case "additionalProperties":
			switch kw.Value.(type) {
			case bool, Field:
				f.additionalProperties = kw.Value
			default:
				return nil, configErrorf("keyword %q of object field: want bool or Field, got %T", kw.Name, kw.Value)
			}
		default:
			rest = append(rest, kw)
		}
	}
	if err := checkKeywords("object", rest); err != nil {
		return nil, err
	}
	f.keywords, f.required = splitRequired(rest)
	return f, nil
}

// Dict is NewDict that panics on an invalid declaration.
func Dict(props *Fields, kws ...Keyword) *DictField {
	f, err := NewDict(props, kws...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *DictField) Kind() string       { return "object" }
func (f *DictField) requiredValue() any { return f.required }

func (f *DictField) emit(ctx *genContext) (*jsonval.Node, error) {
	schema := jsonval.NewObject().Set("type", jsonval.FromString("object"))
	if f.properties != nil {
		props, required, err := emitProperties(f.properties, ctx)
		if err != nil {
			return nil, f.wrap(err, attrStep("properties", ctx.role))
		}
		schema.Set("properties", props)
		if len(required) > 0 {
			schema.Set("required", requiredNode(required))
		}
	}
	if f.patternProperties != nil {
		props, _, err := emitProperties(f.patternProperties, ctx)
		if err != nil {
			return nil, f.wrap(err, attrStep("patternProperties", ctx.role))
		}
		schema.Set("patternProperties", props)
	}
	if f.additionalProperties != nil {
		node, err := emitFieldOrBool(f.additionalProperties, ctx)
		if err != nil {
			return nil, f.wrap(err, attrStep("additionalProperties", ctx.role))
		}
		if node != nil {
			schema.Set("additionalProperties", node)
		}
	}
	if err := emitKeywords(schema, f.keywords, ctx); err != nil {
		return nil, prependStep(err, fieldStep("object", ctx.role))
	}
	return schema, nil
}

func (f *DictField) wrap(err error, s Step) error {
	return prependStep(prependStep(err, s), fieldStep("object", s.Role))
}

// emitProperties emits an ordered property table, collecting the names
// whose required attribute resolves truthy under the active role.
func emitProperties(flds *Fields, ctx *genContext) (*jsonval.Node, []string, error) {
	props := jsonval.NewObject()
	var required []string
	for _, name := range flds.Names() {
		field, _ := flds.Get(name)
		node, err := field.emit(ctx)
		if err != nil {
			return nil, nil, prependStep(err, itemStep(name, ctx.role))
		}
		if node == nil {
			// a role-conditional property resolved to absent
			continue
		}
		props.Set(name, node)
		if v, ok := roles.Resolve(field.requiredValue(), ctx.role); ok && isTruthy(v) {
			required = append(required, name)
		}
	}
	return props, required, nil
}

func requiredNode(names []string) *jsonval.Node {
	arr := &jsonval.Node{Type: jsonval.ArrayType}
	for _, n := range names {
		arr.Append(jsonval.FromString(n))
	}
	return arr
}

// emitFieldOrBool handles additionalItems/additionalProperties values:
// a bool passes through, a Field emits its fragment, a Var resolves
// first (absent omits the keyword).
func emitFieldOrBool(v any, ctx *genContext) (*jsonval.Node, error) {
	v, ok := roles.Resolve(v, ctx.role)
	if !ok {
		return nil, nil
	}
	switch x := v.(type) {
	case bool:
		return jsonval.FromBool(x), nil
	case Field:
		return x.emit(ctx)
	default:
		return nil, configErrorf("want bool or Field, got %T", v)
	}
}

// OfField combines nested fields with one of the oneOf/anyOf/allOf
// combinators, preserving declared order.
type OfField struct {
	keyword  string
	fields   []Field
	keywords []Keyword
	required any
}

func newOf(keyword string, fields []Field, kws []Keyword) (*OfField, error) {
	if len(fields) == 0 {
		return nil, configErrorf("%s field requires at least one alternative", keyword)
	}
	if err := checkKeywords(keyword, kws); err != nil {
		return nil, err
	}
	kws, required := splitRequired(kws)
	return &OfField{keyword: keyword, fields: fields, keywords: kws, required: required}, nil
}

// NewOneOf builds a oneOf combinator over the given alternatives.
func NewOneOf(fields []Field, kws ...Keyword) (*OfField, error) {
	return newOf("oneOf", fields, kws)
}

// NewAnyOf builds an anyOf combinator over the given alternatives.
func NewAnyOf(fields []Field, kws ...Keyword) (*OfField, error) {
	return newOf("anyOf", fields, kws)
}

// NewAllOf builds an allOf combinator over the given alternatives.
func NewAllOf(fields []Field, kws ...Keyword) (*OfField, error) {
	return newOf("allOf", fields, kws)
}

// OneOf is NewOneOf that panics on an invalid declaration.
func OneOf(fields []Field, kws ...Keyword) *OfField {
	f, err := NewOneOf(fields, kws...)
	if err != nil {
		panic(err)
	}
	return f
}

// AnyOf is NewAnyOf that panics on an invalid declaration.
func AnyOf(fields []Field, kws ...Keyword) *OfField {
	f, err := NewAnyOf(fields, kws...)
	if err != nil {
		panic(err)
	}
	return f
}

// AllOfFields is NewAllOf that panics on an invalid declaration.
func AllOfFields(fields []Field, kws ...Keyword) *OfField {
	f, err := NewAllOf(fields, kws...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *OfField) Kind() string       { return f.keyword }
func (f *OfField) requiredValue() any { return f.required }

func (f *OfField) emit(ctx *genContext) (*jsonval.Node, error) {
	schema := jsonval.NewObject()
	if err := emitKeywords(schema, f.keywords, ctx); err != nil {
		return nil, prependStep(err, fieldStep(f.keyword, ctx.role))
	}
	arr := &jsonval.Node{Type: jsonval.ArrayType}
	for i, field := range f.fields {
		node, err := field.emit(ctx)
		if err != nil {
			err = prependStep(err, indexStep(i, ctx.role))
			err = prependStep(err, attrStep(f.keyword, ctx.role))
			return nil, prependStep(err, fieldStep(f.keyword, ctx.role))
		}
		arr.Append(node)
	}
	schema.Set(f.keyword, arr)
	return schema, nil
}

// NotField negates a nested field.
type NotField struct {
	field    Field
	keywords []Keyword
	required any
}

// NewNot builds a not combinator.
func NewNot(field Field, kws ...Keyword) (*NotField, error) {
	if field == nil {
		return nil, configErrorf("not field requires a nested field")
	}
	if err := checkKeywords("not", kws); err != nil {
		return nil, err
	}
	kws, required := splitRequired(kws)
	return &NotField{field: field, keywords: kws, required: required}, nil
}

// Not is NewNot that panics on an invalid declaration.
func Not(field Field, kws ...Keyword) *NotField {
	f, err := NewNot(field, kws...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *NotField) Kind() string       { return "not" }
func (f *NotField) requiredValue() any { return f.required }

func (f *NotField) emit(ctx *genContext) (*jsonval.Node, error) {
	schema := jsonval.NewObject()
	if err := emitKeywords(schema, f.keywords, ctx); err != nil {
		return nil, prependStep(err, fieldStep("not", ctx.role))
	}
	node, err := f.field.emit(ctx)
	if err != nil {
		err = prependStep(err, attrStep("not", ctx.role))
		return nil, prependStep(err, fieldStep("not", ctx.role))
	}
	schema.Set("not", node)
	return schema, nil
}
