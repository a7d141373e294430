// Package encode renders compiled schema nodes as JSON or YAML.
//
// JSON is the native output: object key order in the node is preserved
// byte for byte. YAML rendering goes through goccy/go-yaml with an
// order-preserving conversion. Colorized JSON is available for human
// inspection on terminals.
package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/docshape/docshape/jsonval"
)

type EncState struct {
	format Format
	indent int
	colors *Colors
}

// Encode writes node to w according to the options. The default is
// compact JSON.
func Encode(node *jsonval.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case YAMLFormat:
		return encodeYAML(node, w)
	default:
		return encodeJSON(node, w, es)
	}
}

// String renders node with the given options, for convenience.
func String(node *jsonval.Node, opts ...EncodeOption) (string, error) {
	var buf bytes.Buffer
	if err := Encode(node, &buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func encodeJSON(node *jsonval.Node, w io.Writer, es *EncState) error {
	if es.colors != nil {
		return encodeColored(node, w, es)
	}
	d, err := node.MarshalJSON()
	if err != nil {
		return err
	}
	if es.indent > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, d, "", indentString(es.indent)); err != nil {
			return err
		}
		d = buf.Bytes()
	}
	_, err = w.Write(d)
	return err
}

func indentString(n int) string {
	s := make([]byte, n)
	for i := range s {
		s[i] = ' '
	}
	return string(s)
}

func encodeYAML(node *jsonval.Node, w io.Writer) error {
	v := yamlValue(node)
	d, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	_, err = w.Write(d)
	return err
}

// yamlValue converts a node into goccy types, keeping object order via
// yaml.MapSlice.
func yamlValue(node *jsonval.Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case jsonval.NullType:
		return nil
	case jsonval.BoolType:
		return node.Bool
	case jsonval.NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return int64(0)
	case jsonval.StringType:
		return node.String
	case jsonval.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = yamlValue(v)
		}
		return res
	case jsonval.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, f := range node.Fields {
			res[i] = yaml.MapItem{Key: f, Value: yamlValue(node.Values[i])}
		}
		return res
	}
	return nil
}
