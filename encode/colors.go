package encode

import (
	"strings"

	"github.com/fatih/color"

	"github.com/docshape/docshape/jsonval"
)

type Colorable struct {
	Type jsonval.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range jsonval.Types() {
		able := Colorable{Type: t, Attr: SepColor}
		colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()
	}
	colors.Map[Colorable{Type: jsonval.ObjectType, Attr: FieldColor}] = color.RGB(128, 168, 196).SprintfFunc()

	able := Colorable{Attr: ValueColor}
	able.Type = jsonval.StringType
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	able.Type = jsonval.NumberType
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Type = jsonval.BoolType
	colors.Map[able] = color.CyanString
	able.Type = jsonval.NullType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t jsonval.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t jsonval.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
