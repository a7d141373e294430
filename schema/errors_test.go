package schema

import (
	"errors"
	"strings"
	"testing"
)

func TestBreadcrumbSteps(t *testing.T) {
	// declaration passes (default takes any value), emission fails on
	// an unconvertible default
	bad := String(K("default", struct{ X int }{}))
	dir := MustDocument("Directory", NewFields(
		F("name", String()),
		F("meta", Array(bad)),
	))
	_, err := Compile(dir)
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("got %v, want configuration error", err)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error is not *Error: %v", err)
	}
	want := `Directory.properties["meta"] -> array.items -> string.default`
	if got := e.FormatSteps(); got != want {
		t.Errorf("steps:\ngot  %s\nwant %s", got, want)
	}
	if !strings.Contains(e.Error(), "Steps: ") {
		t.Errorf("Error() does not render steps: %q", e.Error())
	}
	if e.Unwrap() == nil {
		t.Errorf("cause not preserved")
	}
}

func TestBreadcrumbOneOfIndex(t *testing.T) {
	bad := Integer(K("default", make(chan int)))
	doc := MustDocument("Choice", NewFields(
		F("pick", OneOf([]Field{String(), bad})),
	))
	_, err := Compile(doc)
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("got %v", err)
	}
	want := `Choice.properties["pick"] -> oneOf.oneOf[1] -> integer.default`
	if got := e.FormatSteps(); got != want {
		t.Errorf("steps:\ngot  %s\nwant %s", got, want)
	}
}

func TestErrorWithoutSteps(t *testing.T) {
	e := configErrorf("plain %q failure", "x")
	if got := e.Error(); got != `plain "x" failure` {
		t.Errorf("got %q", got)
	}
	if got := e.FormatSteps(); got != "-" {
		t.Errorf("got %q", got)
	}
}

func TestSentinelMapping(t *testing.T) {
	type testCase struct {
		kind Kind
		want error
	}
	for _, tc := range []testCase{
		{kind: KindConfiguration, want: ErrConfiguration},
		{kind: KindRole, want: ErrRole},
		{kind: KindUnresolvableRecursion, want: ErrUnresolvableRecursion},
		{kind: KindDefinitionCollision, want: ErrDefinitionCollision},
	} {
		e := &Error{Kind: tc.kind, Msg: "m"}
		if !errors.Is(e, tc.want) {
			t.Errorf("kind %v: errors.Is failed", tc.kind)
		}
	}
}
