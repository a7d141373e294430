package schema

import (
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/docshape/docshape/roles"
)

// DraftURI is the $schema value stamped on compiled root schemas.
const DraftURI = "http://json-schema.org/draft-04/schema#"

// Mode selects how a document renders its inheritance chain.
type Mode int

const (
	// Inline flattens the whole ancestor chain into one object schema.
	Inline Mode = iota
	// AllOf renders ancestors as $ref parts of an allOf, with the
	// document's own fields in a trailing fragment. Ancestors that are
	// themselves Inline fold into the fragment instead.
	AllOf
)

func (m Mode) String() string {
	if m == AllOf {
		return "allOf"
	}
	return "inline"
}

// seqCounter orders documents by declaration for deterministic
// definitions output.
var seqCounter atomic.Uint64

// Document is a named, immutable document class: an ordered field table,
// role-conditional scopes, an inheritance chain and rendering options.
type Document struct {
	name   string
	seq    uint64
	defID  string
	fields *Fields
	scopes []*Scope

	parents []*Document
	lin     []*Document
	mode    Mode

	schemaURI   string
	omitURI     bool
	title       any
	description any

	additionalProperties any // nil, bool, Field or *roles.Var
	patternProperties    *Fields
	minProperties        *int
	maxProperties        *int

	allowed roles.Matcher // nil accepts every role
}

// Option configures a document at construction.
type Option func(*Document) error

// DefinitionID overrides the derived definitions id.
func DefinitionID(id string) Option {
	return func(d *Document) error {
		if id == "" {
			return configErrorf("document %q: empty definition id", d.name)
		}
		d.defID = id
		return nil
	}
}

// Extends declares the document's parents, in precedence order: when two
// parents declare the same field, the earlier-listed parent wins.
func Extends(parents ...*Document) Option {
	return func(d *Document) error {
		for _, p := range parents {
			if p == nil {
				return configErrorf("document %q: nil parent", d.name)
			}
		}
		d.parents = append(d.parents, parents...)
		return nil
	}
}

// Inheritance selects the rendering mode for the inheritance chain.
func Inheritance(m Mode) Option {
	return func(d *Document) error {
		d.mode = m
		return nil
	}
}

// WithScope attaches a role-conditional field group. Scopes layer in
// declaration order on top of the base fields.
func WithScope(s *Scope) Option {
	return func(d *Document) error {
		if s == nil {
			return configErrorf("document %q: nil scope", d.name)
		}
		d.scopes = append(d.scopes, s)
		return nil
	}
}

// Title sets the document's title. The value may be a *roles.Var.
func Title(v any) Option {
	return func(d *Document) error {
		d.title = v
		return nil
	}
}

// Description sets the document's description. The value may be a
// *roles.Var.
func Description(v any) Option {
	return func(d *Document) error {
		d.description = v
		return nil
	}
}

// SchemaURI overrides the $schema value stamped on the compiled root.
func SchemaURI(uri string) Option {
	return func(d *Document) error {
		if uri == "" {
			return configErrorf("document %q: empty schema uri", d.name)
		}
		d.schemaURI = uri
		return nil
	}
}

// OmitSchemaURI drops the $schema keyword from compiled output.
func OmitSchemaURI() Option {
	return func(d *Document) error {
		d.omitURI = true
		return nil
	}
}

// AdditionalProperties sets the additionalProperties keyword: a bool, a
// Field, or a *roles.Var over either. Unset, the keyword is omitted.
func AdditionalProperties(v any) Option {
	return func(d *Document) error {
		switch v.(type) {
		case bool, Field, *roles.Var:
			d.additionalProperties = v
			return nil
		}
		return configErrorf("document %q: additionalProperties: want bool, Field or *roles.Var, got %T", d.name, v)
	}
}

// PatternProperties maps property name patterns to fields.
func PatternProperties(pp *Fields) Option {
	return func(d *Document) error {
		for _, pattern := range pp.Names() {
			if _, err := regexp.Compile(pattern); err != nil {
				return configErrorf("document %q: pattern property %q: invalid regular expression: %v", d.name, pattern, err)
			}
		}
		d.patternProperties = pp
		return nil
	}
}

// MinProperties bounds the property count from below.
func MinProperties(n int) Option {
	return func(d *Document) error {
		d.minProperties = &n
		return nil
	}
}

// MaxProperties bounds the property count from above.
func MaxProperties(n int) Option {
	return func(d *Document) error {
		d.maxProperties = &n
		return nil
	}
}

// Roles restricts the roles the document may compile under.
func Roles(allowed roles.Matcher) Option {
	return func(d *Document) error {
		if allowed == nil {
			return configErrorf("document %q: nil role matcher", d.name)
		}
		d.allowed = allowed
		return nil
	}
}

// NewDocument builds a document class. Fields may be nil for an empty
// table. The document is immutable once built and safe for concurrent
// compilation.
func NewDocument(name string, fields *Fields, opts ...Option) (*Document, error) {
	if name == "" {
		return nil, configErrorf("document requires a name")
	}
	if fields == nil {
		fields = NewFields()
	}
	d := &Document{
		name:      name,
		seq:       seqCounter.Add(1),
		fields:    fields,
		schemaURI: DraftURI,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	d.lin = linearize(d)
	return d, nil
}

// MustDocument is NewDocument that panics on an invalid declaration.
func MustDocument(name string, fields *Fields, opts ...Option) *Document {
	d, err := NewDocument(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the document's declared name.
func (d *Document) Name() string {
	return d.name
}

// DefinitionID returns the id the document claims under definitions: the
// explicit override or the lowercased name.
func (d *Document) DefinitionID() string {
	if d.defID != "" {
		return d.defID
	}
	return strings.ToLower(d.name)
}

// Parents returns the direct parents in declaration order.
func (d *Document) Parents() []*Document {
	return d.parents
}

// linearize flattens the inheritance graph: most-base document first, d
// itself last, each document once. Field layering applies the chain in
// order with later entries overriding, so earlier-listed parents land
// later in the chain and win over their siblings. Computed once at
// construction; parents are complete documents by then.
func linearize(d *Document) []*Document {
	var out []*Document
	seen := map[*Document]bool{}
	var visit func(doc *Document)
	visit = func(doc *Document) {
		if seen[doc] {
			return
		}
		seen[doc] = true
		for i := len(doc.parents) - 1; i >= 0; i-- {
			visit(doc.parents[i])
		}
		out = append(out, doc)
	}
	visit(d)
	return out
}

func (d *Document) chain() []*Document {
	return d.lin
}

// Ancestors returns the linearized chain without d itself, most-base
// first.
func (d *Document) Ancestors() []*Document {
	c := d.chain()
	return c[:len(c)-1]
}

// layerInto layers d's base fields and its active scopes onto dst.
func (d *Document) layerInto(dst *Fields, role roles.Role) {
	dst.layer(d.fields)
	for _, s := range d.scopes {
		if s.Active(role) {
			dst.layer(s.fields)
		}
	}
}

// effectiveFields flattens the whole chain for role: base fields and
// active scopes per document, chain order, later overrides.
func (d *Document) effectiveFields(role roles.Role) *Fields {
	out := NewFields()
	for _, doc := range d.chain() {
		doc.layerInto(out, role)
	}
	return out
}
