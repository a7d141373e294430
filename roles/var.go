package roles

// Rule pairs a matcher with the value it yields.
type Rule struct {
	When  Matcher
	Value any
}

// Var is a role-dependent value: an ordered rule list plus an optional
// default. Resolution is pure and evaluates rules strictly in declaration
// order, first match wins.
type Var struct {
	rules      []Rule
	def        any
	hasDefault bool

	// at most one of prop/term is set
	prop Matcher
	term Matcher
}

// NewVar builds a Var from rules in declaration order.
func NewVar(rules ...Rule) *Var {
	return &Var{rules: rules}
}

// Default returns a copy of the Var with a default value, used when no
// rule matches.
func (v *Var) Default(value any) *Var {
	res := v.clone()
	res.def = value
	res.hasDefault = true
	return res
}

// Propagate returns a copy that carries the current role into the
// resolved value's subtree only for roles m accepts; other roles reset
// the subtree to Default. Clears any Terminate matcher.
func (v *Var) Propagate(m Matcher) *Var {
	res := v.clone()
	res.prop = m
	res.term = nil
	return res
}

// Terminate returns a copy that resets the resolved value's subtree to
// Default for roles m accepts. Clears any Propagate matcher.
func (v *Var) Terminate(m Matcher) *Var {
	res := v.clone()
	res.term = m
	res.prop = nil
	return res
}

func (v *Var) clone() *Var {
	res := *v
	return &res
}

// Resolve returns the value for role. ok is false when no rule matches and
// there is no default: the attribute is absent and must be omitted.
func (v *Var) Resolve(role Role) (value any, ok bool) {
	for _, r := range v.rules {
		if r.When.Match(role) {
			return r.Value, true
		}
	}
	if v.hasDefault {
		return v.def, true
	}
	return nil, false
}

// Resolve2 is Resolve plus the role the resolved value's own subtree
// compiles under, per the Propagate/Terminate matchers.
func (v *Var) Resolve2(role Role) (value any, next Role, ok bool) {
	value, ok = v.Resolve(role)
	next = role
	switch {
	case v.prop != nil:
		if !v.prop.Match(role) {
			next = Default
		}
	case v.term != nil:
		if v.term.Match(role) {
			next = Default
		}
	}
	return value, next, ok
}

// DefaultValue returns the default and whether one was set.
func (v *Var) DefaultValue() (any, bool) {
	return v.def, v.hasDefault
}

// Rules returns the rule list, in declaration order.
func (v *Var) Rules() []Rule {
	return v.rules
}

// Resolve resolves v under role: a *Var resolves through its rules, nil is
// absent, anything else passes through.
func Resolve(v any, role Role) (value any, ok bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case *Var:
		return x.Resolve(role)
	default:
		return v, true
	}
}
