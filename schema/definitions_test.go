package schema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/docshape/docshape/roles"
)

func definitionIDs(t *testing.T, d *Document, opts ...CompileOption) []string {
	t.Helper()
	node, err := Compile(d, opts...)
	if err != nil {
		t.Fatalf("Compile(%s): %v", d.Name(), err)
	}
	defs := node.Get("definitions")
	if defs == nil {
		return nil
	}
	return defs.Fields
}

func TestDiamondSharesOneDefinition(t *testing.T) {
	base := MustDocument("Entity", NewFields(
		F("id", String(Required(true))),
	), Inheritance(AllOf))
	left := MustDocument("Timestamped", NewFields(
		F("createdAt", DateTime()),
	), Extends(base), Inheritance(AllOf))
	right := MustDocument("Named", NewFields(
		F("name", String()),
	), Extends(base), Inheritance(AllOf))
	leaf := MustDocument("Resource", NewFields(
		F("kind", String()),
	), Extends(left, right), Inheritance(AllOf))

	ids := definitionIDs(t, leaf)
	want := []string{"entity", "timestamped", "named"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("definitions (-want +got):\n%s", diff)
	}
}

func TestDefinitionIDOverride(t *testing.T) {
	inner := MustDocument("Payload", nil, DefinitionID("payload.v1"))
	outer := MustDocument("Envelope", NewFields(
		F("payload", DocRef(inner)),
	))
	ids := definitionIDs(t, outer)
	if diff := cmp.Diff([]string{"payload.v1"}, ids); diff != "" {
		t.Errorf("definitions (-want +got):\n%s", diff)
	}
}

func TestDefinitionIDCollision(t *testing.T) {
	a := MustDocument("Alpha", nil, DefinitionID("shared"))
	b := MustDocument("Beta", nil, DefinitionID("shared"))
	root := MustDocument("CollisionRoot", NewFields(
		F("a", DocRef(a)),
		F("b", DocRef(b)),
	))
	_, err := Compile(root)
	if !errors.Is(err, ErrDefinitionCollision) {
		t.Fatalf("got %v, want definition collision", err)
	}
}

// The same document reached under two roles within one compilation gets
// two definitions entries, the second one role-qualified.
func TestRoleQualifiedDefinitionIDs(t *testing.T) {
	item := MustDocument("Item", NewFields(
		F("label", String()),
	))
	// "reset" drops the subtree back to the default role
	reset := roles.NewVar(
		roles.Rule{When: roles.Any(), Value: DocRef(item)},
	).Terminate(roles.Any())
	root := MustDocument("Catalog", NewFields(
		F("current", DocRef(item)),
		F("plain", FieldVar(reset)),
	))
	ids := definitionIDs(t, root, WithRole("admin"))
	want := []string{"item", "item.default"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("definitions (-want +got):\n%s", diff)
	}
}

func TestRegistryDuplicateName(t *testing.T) {
	reg := NewRegistry()
	a := MustDocument("Dup", nil)
	b := MustDocument("Dup", nil)
	if err := reg.Register(a); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(a); err != nil {
		t.Errorf("re-registering the same document: %v", err)
	}
	if err := reg.Register(b); err == nil {
		t.Errorf("expected error for duplicate name")
	}
	if got, ok := reg.Lookup("Dup"); !ok || got != a {
		t.Errorf("Lookup returned %v, %v", got, ok)
	}
	if diff := cmp.Diff([]string{"Dup"}, reg.Names()); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}
}

func TestUnknownDocumentName(t *testing.T) {
	reg := NewRegistry()
	root := MustDocument("Dangling", NewFields(
		F("missing", DocRef("Nowhere")),
	))
	_, err := Compile(root, WithRegistry(reg))
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("got %v, want configuration error", err)
	}
}
