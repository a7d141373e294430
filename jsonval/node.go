// Package jsonval provides an ordered JSON value tree.
//
// The schema compiler emits into *Node rather than map[string]any so that
// object key order survives all the way to serialization. Objects keep
// their fields in insertion order; Set on an existing key replaces the
// value but keeps the key's original position, which is what field
// layering (scopes, inheritance) relies on.
package jsonval

import (
	"fmt"
	"reflect"
	"sort"
)

type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	switch t {
	case NullType:
		return "null"
	case BoolType:
		return "bool"
	case NumberType:
		return "number"
	case StringType:
		return "string"
	case ArrayType:
		return "array"
	case ObjectType:
		return "object"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func Types() []Type {
	return []Type{NullType, BoolType, NumberType, StringType, ArrayType, ObjectType}
}

// Node is one JSON value. Exactly one of the value fields is meaningful,
// selected by Type. Object nodes keep Fields and Values in parallel, in
// insertion order.
type Node struct {
	Type Type

	String  string
	Bool    bool
	Int64   *int64
	Float64 *float64

	Fields []string
	Values []*Node
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: NumberType, Float64: &v}
}

func FromSlice(vs []*Node) *Node {
	return &Node{Type: ArrayType, Values: vs}
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

// Append adds a value to an array node.
func (y *Node) Append(v *Node) *Node {
	y.Values = append(y.Values, v)
	return y
}

// Set sets field to v. An existing field keeps its position; a new field
// goes last.
func (y *Node) Set(field string, v *Node) *Node {
	for i, f := range y.Fields {
		if f == field {
			y.Values[i] = v
			return y
		}
	}
	y.Fields = append(y.Fields, field)
	y.Values = append(y.Values, v)
	return y
}

// Get returns the value of field, or nil.
func (y *Node) Get(field string) *Node {
	for i, f := range y.Fields {
		if f == field {
			return y.Values[i]
		}
	}
	return nil
}

func (y *Node) Has(field string) bool {
	return y.Get(field) != nil
}

// Len returns the number of object fields or array elements.
func (y *Node) Len() int {
	return len(y.Values)
}

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{
		Type:   y.Type,
		String: y.String,
		Bool:   y.Bool,
	}
	if y.Int64 != nil {
		i := *y.Int64
		res.Int64 = &i
	}
	if y.Float64 != nil {
		f := *y.Float64
		res.Float64 = &f
	}
	if y.Fields != nil {
		res.Fields = append([]string(nil), y.Fields...)
	}
	if y.Values != nil {
		res.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			res.Values[i] = v.Clone()
		}
	}
	return res
}

// Equal reports deep equality. Object field order is significant.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.String == b.String
	case NumberType:
		return numEqual(a, b)
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i] != b.Fields[i] {
				return false
			}
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func numEqual(a, b *Node) bool {
	af, bf := numFloat(a), numFloat(b)
	return af == bf
}

func numFloat(y *Node) float64 {
	if y.Int64 != nil {
		return float64(*y.Int64)
	}
	if y.Float64 != nil {
		return *y.Float64
	}
	return 0
}

// SortObjects recursively orders every object's fields lexicographically.
func (y *Node) SortObjects() {
	if y == nil {
		return
	}
	for _, v := range y.Values {
		v.SortObjects()
	}
	if y.Type != ObjectType {
		return
	}
	idx := make([]int, len(y.Fields))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return y.Fields[idx[i]] < y.Fields[idx[j]]
	})
	fields := make([]string, len(y.Fields))
	values := make([]*Node, len(y.Values))
	for i, j := range idx {
		fields[i] = y.Fields[j]
		values[i] = y.Values[j]
	}
	y.Fields = fields
	y.Values = values
}

// FromAny converts a plain Go value into a Node. Maps come out key-sorted.
// Used for literal keyword values such as enum members and defaults.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x, nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return FromInt(int64(x)), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case []any:
		res := &Node{Type: ArrayType, Values: make([]*Node, 0, len(x))}
		for i, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			res.Values = append(res.Values, n)
		}
		return res, nil
	case []string:
		res := &Node{Type: ArrayType, Values: make([]*Node, 0, len(x))}
		for _, s := range x {
			res.Values = append(res.Values, FromString(s))
		}
		return res, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		res := NewObject()
		for _, k := range keys {
			n, err := FromAny(x[k])
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			res.Set(k, n)
		}
		return res, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		res := &Node{Type: ArrayType, Values: make([]*Node, 0, rv.Len())}
		for i := 0; i < rv.Len(); i++ {
			n, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			res.Values = append(res.Values, n)
		}
		return res, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}
