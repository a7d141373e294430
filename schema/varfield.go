package schema

import (
	"github.com/docshape/docshape/jsonval"
	"github.com/docshape/docshape/roles"
)

// VarField makes a whole property role-conditional: a Var whose rule
// values are Fields. Resolving to absent drops the property from the
// emitted schema entirely. The Var's Propagate/Terminate matchers decide
// the role the chosen field's subtree compiles under, which is how one
// compilation can reach the same document under two roles.
type VarField struct {
	v        *roles.Var
	required any
}

// NewFieldVar wraps v, validating that every rule value and the default
// is a Field.
func NewFieldVar(v *roles.Var, kws ...Keyword) (*VarField, error) {
	if v == nil {
		return nil, configErrorf("field var requires a *roles.Var")
	}
	for i, r := range v.Rules() {
		if _, ok := r.Value.(Field); !ok {
			return nil, configErrorf("field var rule %d: want Field, got %T", i, r.Value)
		}
	}
	if d, ok := v.DefaultValue(); ok {
		if _, ok := d.(Field); !ok {
			return nil, configErrorf("field var default: want Field, got %T", d)
		}
	}
	f := &VarField{v: v}
	for _, kw := range kws {
		if kw.Name != "required" {
			return nil, configErrorf("field var does not accept keyword %q", kw.Name)
		}
		f.required = kw.Value
	}
	return f, nil
}

// FieldVar is NewFieldVar that panics on an invalid declaration.
func FieldVar(v *roles.Var, kws ...Keyword) *VarField {
	f, err := NewFieldVar(v, kws...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *VarField) Kind() string       { return "var" }
func (f *VarField) requiredValue() any { return f.required }

// resolveField picks the field for role and the role its subtree
// compiles under. ok is false when the property is absent.
func (f *VarField) resolveField(role roles.Role) (Field, roles.Role, bool) {
	v, next, ok := f.v.Resolve2(role)
	if !ok {
		return nil, next, false
	}
	return v.(Field), next, true
}

func (f *VarField) emit(ctx *genContext) (*jsonval.Node, error) {
	inner, next, ok := f.resolveField(ctx.role)
	if !ok {
		return nil, nil
	}
	return inner.emit(ctx.withRole(next))
}
