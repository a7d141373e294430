package roles

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Matcher decides whether a role activates a rule or a scope. The set of
// variants is closed: Eq, In, Not, All, Any and Predicate.
type Matcher interface {
	Match(role Role) bool
	matcher()
}

type eqMatcher struct {
	role Role
}

func (m eqMatcher) Match(role Role) bool { return m.role == role }
func (m eqMatcher) matcher()             {}

// Eq matches exactly one role.
func Eq(role Role) Matcher {
	return eqMatcher{role: role}
}

type inMatcher struct {
	roles map[Role]bool
}

func (m inMatcher) Match(role Role) bool { return m.roles[role] }
func (m inMatcher) matcher()             {}

// In matches any of the given roles.
func In(roles ...Role) Matcher {
	set := make(map[Role]bool, len(roles))
	for _, r := range roles {
		set[r] = true
	}
	return inMatcher{roles: set}
}

type notMatcher struct {
	m Matcher
}

func (m notMatcher) Match(role Role) bool { return !m.m.Match(role) }
func (m notMatcher) matcher()             {}

// Not negates a matcher.
func Not(m Matcher) Matcher {
	return notMatcher{m: m}
}

type allMatcher struct {
	ms []Matcher
}

func (m allMatcher) Match(role Role) bool {
	for _, mm := range m.ms {
		if !mm.Match(role) {
			return false
		}
	}
	return true
}
func (m allMatcher) matcher() {}

// All matches when every given matcher matches. All() matches everything.
func All(ms ...Matcher) Matcher {
	return allMatcher{ms: ms}
}

// Any matches every role.
func Any() Matcher {
	return allMatcher{}
}

// AllBut matches every role except the given ones.
func AllBut(roles ...Role) Matcher {
	return Not(In(roles...))
}

type predMatcher struct {
	src string
	prg *vm.Program
}

func (m *predMatcher) Match(role Role) bool {
	out, err := expr.Run(m.prg, map[string]any{"role": string(role)})
	if err != nil {
		return false
	}
	b, ok := out.(bool)
	return ok && b
}
func (m *predMatcher) matcher() {}

// Predicate compiles src as a boolean expression over {role string}, e.g.
// `role startsWith "admin"` or `role in ["editor", "owner"]`.
func Predicate(src string) (Matcher, error) {
	prg, err := expr.Compile(src,
		expr.Env(map[string]any{"role": ""}),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid role predicate %q: %w", src, err)
	}
	return &predMatcher{src: src, prg: prg}, nil
}

// MustPredicate is Predicate that panics on a bad expression. Intended for
// declarations, where an invalid matcher is a programming error.
func MustPredicate(src string) Matcher {
	m, err := Predicate(src)
	if err != nil {
		panic(err)
	}
	return m
}
