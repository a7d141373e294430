package schema

import (
	"github.com/docshape/docshape/roles"
)

// Scope is a role-conditional field group. When a document compiles for a
// role the scope's matcher accepts, the scope's fields layer on top of the
// document's base fields in the scope's declaration order.
type Scope struct {
	when   roles.Matcher
	fields *Fields
}

// NewScope builds a scope active for roles accepted by when.
func NewScope(when roles.Matcher, fields *Fields) (*Scope, error) {
	if when == nil {
		return nil, configErrorf("scope requires a role matcher")
	}
	if fields == nil {
		fields = NewFields()
	}
	return &Scope{when: when, fields: fields}, nil
}

// Scoped is NewScope that panics on an invalid declaration.
func Scoped(when roles.Matcher, fields *Fields) *Scope {
	s, err := NewScope(when, fields)
	if err != nil {
		panic(err)
	}
	return s
}

// Active reports whether the scope applies under role.
func (s *Scope) Active(role roles.Role) bool {
	return s.when.Match(role)
}
