package schema

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/docshape/docshape/roles"
)

// The primitive keyword catalogue: per kind, the passthrough keywords a
// field accepts and the shape each value must have. Checked at
// declaration time; a Var is checked rule by rule.

type kwCheck func(v any) error

var commonKeywords = map[string]kwCheck{
	"title":       kwString,
	"description": kwString,
	"enum":        kwSlice,
	"default":     kwAny,
	"required":    kwBool,
}

var numericKeywords = map[string]kwCheck{
	"multipleOf":       kwNumber,
	"minimum":          kwNumber,
	"maximum":          kwNumber,
	"exclusiveMinimum": kwBool,
	"exclusiveMaximum": kwBool,
}

var kindKeywords = map[string]map[string]kwCheck{
	"boolean": {},
	"null":    {},
	"string": {
		"pattern":   kwPattern,
		"format":    kwString,
		"minLength": kwInt,
		"maxLength": kwInt,
	},
	"number":  numericKeywords,
	"integer": numericKeywords,
	"array": {
		"minItems":    kwInt,
		"maxItems":    kwInt,
		"uniqueItems": kwBool,
	},
	"object": {
		"minProperties": kwInt,
		"maxProperties": kwInt,
	},
	// combinators and references take only the common keywords
	"not":      {},
	"oneOf":    {},
	"anyOf":    {},
	"allOf":    {},
	"document": {},
	"$ref":     {},
}

// checkKeyword validates one declared keyword for a field kind. Var
// values have every rule value and the default checked.
func checkKeyword(kind string, kw Keyword) error {
	table, ok := kindKeywords[kind]
	if !ok {
		return configErrorf("unknown field kind %q", kind)
	}
	check := table[kw.Name]
	if check == nil {
		check = commonKeywords[kw.Name]
	}
	if check == nil {
		return configErrorf("field kind %q does not accept keyword %q", kind, kw.Name)
	}
	values := []any{kw.Value}
	if v, ok := kw.Value.(*roles.Var); ok {
		values = values[:0]
		for _, r := range v.Rules() {
			values = append(values, r.Value)
		}
		if d, ok := v.DefaultValue(); ok {
			values = append(values, d)
		}
	}
	for _, v := range values {
		if v == nil {
			continue
		}
		if err := check(v); err != nil {
			return configErrorf("keyword %q of %s field: %v", kw.Name, kind, err)
		}
	}
	return nil
}

func checkKeywords(kind string, kws []Keyword) error {
	for _, kw := range kws {
		if err := checkKeyword(kind, kw); err != nil {
			return err
		}
	}
	return nil
}

// splitRequired pulls the required attribute out of a keyword list; it is
// an attribute of the enclosing object, never a schema keyword.
func splitRequired(kws []Keyword) (rest []Keyword, required any) {
	rest = make([]Keyword, 0, len(kws))
	for _, kw := range kws {
		if kw.Name == "required" {
			required = kw.Value
			continue
		}
		rest = append(rest, kw)
	}
	return rest, required
}

func kwAny(any) error { return nil }

func kwString(v any) error {
	if _, ok := v.(string); !ok {
		return fmt.Errorf("want string, got %T", v)
	}
	return nil
}

func kwBool(v any) error {
	if _, ok := v.(bool); !ok {
		return fmt.Errorf("want bool, got %T", v)
	}
	return nil
}

func kwInt(v any) error {
	switch v.(type) {
	case int, int32, int64, uint:
		return nil
	}
	return fmt.Errorf("want integer, got %T", v)
}

func kwNumber(v any) error {
	switch v.(type) {
	case int, int32, int64, uint, float32, float64:
		return nil
	}
	return fmt.Errorf("want number, got %T", v)
}

func kwSlice(v any) error {
	if reflect.ValueOf(v).Kind() != reflect.Slice {
		return fmt.Errorf("want slice, got %T", v)
	}
	return nil
}

func kwPattern(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("want string, got %T", v)
	}
	if _, err := regexp.Compile(s); err != nil {
		return fmt.Errorf("invalid regular expression: %v", err)
	}
	return nil
}
