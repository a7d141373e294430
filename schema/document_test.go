package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func names(docs []*Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Name()
	}
	return out
}

func TestAncestorChain(t *testing.T) {
	a := MustDocument("A", nil)
	b := MustDocument("B", nil, Extends(a))
	c := MustDocument("C", nil, Extends(a))
	d := MustDocument("D", nil, Extends(b, c))

	if diff := cmp.Diff([]string{"A", "C", "B"}, names(d.Ancestors())); diff != "" {
		t.Errorf("ancestors (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A"}, names(b.Ancestors())); diff != "" {
		t.Errorf("ancestors of B (-want +got):\n%s", diff)
	}
	if len(a.Ancestors()) != 0 {
		t.Errorf("root document has ancestors: %v", names(a.Ancestors()))
	}
}

func TestInlineInheritanceMerge(t *testing.T) {
	base := MustDocument("BaseDoc", NewFields(
		F("id", String(Required(true))),
		F("note", String()),
	))
	child := MustDocument("ChildDoc", NewFields(
		F("note", Integer()),
		F("name", String()),
	), Extends(base))

	got := compileString(t, child)
	want := `{"$schema":"http://json-schema.org/draft-04/schema#",` +
		`"type":"object",` +
		`"properties":{"id":{"type":"string"},"note":{"type":"integer"},"name":{"type":"string"}},` +
		`"required":["id"]}`
	wantString(t, got, want)
}

// With two parents declaring the same field, the earlier-listed parent
// wins, and the child still overrides both.
func TestSiblingPrecedence(t *testing.T) {
	first := MustDocument("First", NewFields(F("x", String()), F("y", String())))
	second := MustDocument("Second", NewFields(F("x", Integer()), F("z", Integer())))
	child := MustDocument("Mix", NewFields(F("z", Boolean())), Extends(first, second))

	got := compileString(t, child)
	want := `{"$schema":"http://json-schema.org/draft-04/schema#",` +
		`"type":"object",` +
		`"properties":{"x":{"type":"string"},"z":{"type":"boolean"},"y":{"type":"string"}}}`
	wantString(t, got, want)
}

func TestAllOfInheritance(t *testing.T) {
	base := MustDocument("Record", NewFields(
		F("id", String(Required(true))),
	), Inheritance(AllOf))
	child := MustDocument("Person", NewFields(
		F("name", String(Required(true))),
	), Extends(base), Inheritance(AllOf))

	got := compileString(t, child)
	want := `{"$schema":"http://json-schema.org/draft-04/schema#",` +
		`"allOf":[` +
		`{"$ref":"#/definitions/record"},` +
		`{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}],` +
		`"definitions":{"record":{"type":"object","properties":{"id":{"type":"string"}},"required":["id"]}}}`
	wantString(t, got, want)
}

// An Inline-mode parent of an AllOf-mode child folds into the trailing
// fragment instead of becoming a $ref.
func TestAllOfWithInlineParent(t *testing.T) {
	base := MustDocument("Mixin", NewFields(
		F("tag", String()),
	))
	child := MustDocument("Tagged", NewFields(
		F("value", Number()),
	), Extends(base), Inheritance(AllOf))

	got := compileString(t, child)
	want := `{"$schema":"http://json-schema.org/draft-04/schema#",` +
		`"allOf":[` +
		`{"type":"object","properties":{"tag":{"type":"string"},"value":{"type":"number"}}}]}`
	wantString(t, got, want)
}

func TestDefinitionIDDerivation(t *testing.T) {
	d := MustDocument("CamelCase", nil)
	if got := d.DefinitionID(); got != "camelcase" {
		t.Errorf("got %q, want camelcase", got)
	}
	e := MustDocument("Explicit", nil, DefinitionID("my-id"))
	if got := e.DefinitionID(); got != "my-id" {
		t.Errorf("got %q, want my-id", got)
	}
}

func TestNewDocumentValidation(t *testing.T) {
	if _, err := NewDocument("", nil); err == nil {
		t.Errorf("empty name accepted")
	}
	if _, err := NewDocument("X", nil, DefinitionID("")); err == nil {
		t.Errorf("empty definition id accepted")
	}
	if _, err := NewDocument("X", nil, Extends(nil)); err == nil {
		t.Errorf("nil parent accepted")
	}
	if _, err := NewDocument("X", nil, AdditionalProperties("nope")); err == nil {
		t.Errorf("bad additionalProperties accepted")
	}
	if _, err := NewDocument("X", nil, PatternProperties(NewFields(F("(", String())))); err == nil {
		t.Errorf("bad pattern accepted")
	}
	if _, err := NewDocument("X", nil, SchemaURI("")); err == nil {
		t.Errorf("empty schema uri accepted")
	}
}
