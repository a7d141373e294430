package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/docshape/docshape/roles"
)

// Kind classifies a schema generation failure.
type Kind int

const (
	// KindConfiguration marks an invalid declaration: unknown or
	// type-incompatible keyword, invalid matcher or regexp, unresolvable
	// document name.
	KindConfiguration Kind = iota
	// KindRole marks a compilation role outside a document's allow-list.
	KindRole
	// KindUnresolvableRecursion marks an inline reference cycle that
	// cannot be flattened into a finite schema.
	KindUnresolvableRecursion
	// KindDefinitionCollision marks two distinct (document, role) keys
	// mapping to the same textual definition id.
	KindDefinitionCollision
)

// Sentinels for errors.Is.
var (
	ErrConfiguration         = errors.New("configuration error")
	ErrRole                  = errors.New("role error")
	ErrUnresolvableRecursion = errors.New("unresolvable recursion")
	ErrDefinitionCollision   = errors.New("definition collision")
)

func (k Kind) sentinel() error {
	switch k {
	case KindRole:
		return ErrRole
	case KindUnresolvableRecursion:
		return ErrUnresolvableRecursion
	case KindDefinitionCollision:
		return ErrDefinitionCollision
	default:
		return ErrConfiguration
	}
}

type StepKind int

const (
	DocumentStep StepKind = iota
	FieldStep
	AttributeStep
	ItemStep
)

// Step is one breadcrumb on the path from the compilation root to the
// point of failure.
type Step struct {
	Kind StepKind
	Text string
	Role roles.Role
}

func (s Step) String() string {
	return s.Text
}

// Error is the single error kind surfaced by compilation. It carries a
// breadcrumb trail of steps: every layer that recurses prepends its own
// step while the error bubbles up, so Steps reads root to leaf.
type Error struct {
	Kind  Kind
	Msg   string
	Steps []Step
	Err   error
}

func (e *Error) Error() string {
	if len(e.Steps) == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s\nSteps: %s", e.Msg, e.FormatSteps())
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// FormatSteps renders the breadcrumb trail, e.g.
// Directory -> array.items[0] -> File.properties["name"].
func (e *Error) FormatSteps() string {
	if len(e.Steps) == 0 {
		return "-"
	}
	var b strings.Builder
	for i, s := range e.Steps {
		switch {
		case i == 0:
			b.WriteString(s.Text)
		case s.Kind == DocumentStep || s.Kind == FieldStep:
			b.WriteString(" -> ")
			b.WriteString(s.Text)
		case s.Kind == AttributeStep:
			b.WriteString(".")
			b.WriteString(s.Text)
		case s.Kind == ItemStep:
			b.WriteString("[")
			b.WriteString(s.Text)
			b.WriteString("]")
		}
	}
	return b.String()
}

func configErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Msg: fmt.Sprintf(format, args...)}
}

// prependStep adds a breadcrumb to a generation error on its way up. The
// original cause is never swallowed.
func prependStep(err error, s Step) error {
	var e *Error
	if errors.As(err, &e) {
		e.Steps = append([]Step{s}, e.Steps...)
		return err
	}
	return err
}

func docStep(name string, role roles.Role) Step {
	return Step{Kind: DocumentStep, Text: name, Role: role}
}

func fieldStep(kind string, role roles.Role) Step {
	return Step{Kind: FieldStep, Text: kind, Role: role}
}

func attrStep(name string, role roles.Role) Step {
	return Step{Kind: AttributeStep, Text: name, Role: role}
}

func itemStep(name string, role roles.Role) Step {
	return Step{Kind: ItemStep, Text: strconv.Quote(name), Role: role}
}

func indexStep(i int, role roles.Role) Step {
	return Step{Kind: ItemStep, Text: strconv.Itoa(i), Role: role}
}
