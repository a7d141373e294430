package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/docshape/docshape/jsonval"
)

func sample() *jsonval.Node {
	return jsonval.NewObject().
		Set("type", jsonval.FromString("object")).
		Set("properties", jsonval.NewObject().
			Set("name", jsonval.NewObject().Set("type", jsonval.FromString("string")))).
		Set("required", jsonval.FromSlice([]*jsonval.Node{jsonval.FromString("name")}))
}

func TestEncodeCompactJSON(t *testing.T) {
	got, err := String(sample())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestEncodeIndentedJSON(t *testing.T) {
	got, err := String(sample(), Indent(2))
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "type": "object",
  "properties": {
    "name": {
      "type": "string"
    }
  },
  "required": [
    "name"
  ]
}`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeYAML(t *testing.T) {
	got, err := String(sample(), EncodeFormat(YAMLFormat))
	if err != nil {
		t.Fatal(err)
	}
	// key order must survive the YAML conversion
	idxType := strings.Index(got, "type:")
	idxProps := strings.Index(got, "properties:")
	idxReq := strings.Index(got, "required:")
	if idxType < 0 || idxProps < 0 || idxReq < 0 {
		t.Fatalf("missing keys in yaml output:\n%s", got)
	}
	if !(idxType < idxProps && idxProps < idxReq) {
		t.Errorf("yaml keys out of order:\n%s", got)
	}
}

func TestAutoColorNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(sample(), &buf, AutoColor(&buf)); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("ANSI escapes written to a non-terminal:\n%q", buf.String())
	}
}

func TestEncodeColored(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(sample(), &buf, EncodeColors(NewColors())); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Errorf("no colored output written")
	}
}

func TestFormatSuffix(t *testing.T) {
	if got := FormatSuffix(JSONFormat); got != ".json" {
		t.Errorf("got %q", got)
	}
	if got := FormatSuffix(YAMLFormat); got != ".yaml" {
		t.Errorf("got %q", got)
	}
}
