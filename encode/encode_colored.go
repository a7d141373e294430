package encode

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/docshape/docshape/jsonval"
)

// encodeColored writes indented JSON with ANSI colors. Colors wrap tokens
// only; the structure is the same as the plain encoder's.
func encodeColored(node *jsonval.Node, w io.Writer, es *EncState) error {
	indent := es.indent
	if indent == 0 {
		indent = 2
	}
	cw := &colorWriter{w: w, colors: es.colors, indent: indent}
	return cw.write(node, 0)
}

type colorWriter struct {
	w      io.Writer
	colors *Colors
	indent int
}

func (cw *colorWriter) write(node *jsonval.Node, depth int) error {
	if node == nil {
		return cw.value(jsonval.NullType, "null")
	}
	switch node.Type {
	case jsonval.NullType:
		return cw.value(jsonval.NullType, "null")
	case jsonval.BoolType:
		return cw.value(jsonval.BoolType, strconv.FormatBool(node.Bool))
	case jsonval.NumberType:
		d, err := json.Marshal(node.Interface())
		if err != nil {
			return err
		}
		return cw.value(jsonval.NumberType, string(d))
	case jsonval.StringType:
		d, err := json.Marshal(node.String)
		if err != nil {
			return err
		}
		return cw.value(jsonval.StringType, string(d))
	case jsonval.ArrayType:
		if len(node.Values) == 0 {
			return cw.raw(cw.colors.Color(jsonval.ArrayType, SepColor, "[]"))
		}
		if err := cw.sep(jsonval.ArrayType, "["); err != nil {
			return err
		}
		for i, v := range node.Values {
			if i > 0 {
				if err := cw.sep(jsonval.ArrayType, ","); err != nil {
					return err
				}
			}
			if err := cw.newlineIndent(depth + 1); err != nil {
				return err
			}
			if err := cw.write(v, depth+1); err != nil {
				return err
			}
		}
		if err := cw.newlineIndent(depth); err != nil {
			return err
		}
		return cw.sep(jsonval.ArrayType, "]")
	case jsonval.ObjectType:
		if len(node.Fields) == 0 {
			return cw.raw(cw.colors.Color(jsonval.ObjectType, SepColor, "{}"))
		}
		if err := cw.sep(jsonval.ObjectType, "{"); err != nil {
			return err
		}
		for i, f := range node.Fields {
			if i > 0 {
				if err := cw.sep(jsonval.ObjectType, ","); err != nil {
					return err
				}
			}
			if err := cw.newlineIndent(depth + 1); err != nil {
				return err
			}
			d, err := json.Marshal(f)
			if err != nil {
				return err
			}
			if err := cw.raw(cw.colors.Color(jsonval.ObjectType, FieldColor, string(d))); err != nil {
				return err
			}
			if err := cw.sep(jsonval.ObjectType, ": "); err != nil {
				return err
			}
			if err := cw.write(node.Values[i], depth+1); err != nil {
				return err
			}
		}
		if err := cw.newlineIndent(depth); err != nil {
			return err
		}
		return cw.sep(jsonval.ObjectType, "}")
	}
	return nil
}

func (cw *colorWriter) value(t jsonval.Type, s string) error {
	return cw.raw(cw.colors.Color(t, ValueColor, s))
}

func (cw *colorWriter) sep(t jsonval.Type, s string) error {
	return cw.raw(cw.colors.Color(t, SepColor, s))
}

func (cw *colorWriter) newlineIndent(depth int) error {
	pad := make([]byte, 1+depth*cw.indent)
	pad[0] = '\n'
	for i := 1; i < len(pad); i++ {
		pad[i] = ' '
	}
	_, err := cw.w.Write(pad)
	return err
}

func (cw *colorWriter) raw(s string) error {
	_, err := io.WriteString(cw.w, s)
	return err
}
