// Package docshape compiles declarative document classes into JSON
// Schema draft-04 documents.
//
// Documents are declared with the schema package, role conditionality
// with the roles package. This package ties compilation and output
// together for the common case: build a Generator, point it at a
// document, get a schema.
package docshape

import (
	"io"

	"github.com/docshape/docshape/encode"
	"github.com/docshape/docshape/jsonval"
	"github.com/docshape/docshape/roles"
	"github.com/docshape/docshape/schema"
)

// Generator compiles documents with a fixed role, ordering and output
// format. The zero value compiles for roles.Default with declaration
// ordering and compact JSON.
type Generator struct {
	Role     roles.Role
	Sorted   bool
	Registry *schema.Registry
	Format   encode.Format
	Indent   int
}

func DefaultGenerator() *Generator {
	return &Generator{
		Role:   roles.Default,
		Indent: 2,
	}
}

func (g *Generator) compileOpts() []schema.CompileOption {
	role := g.Role
	if role == "" {
		role = roles.Default
	}
	opts := []schema.CompileOption{
		schema.WithRole(role),
		schema.Ordered(!g.Sorted),
	}
	if g.Registry != nil {
		opts = append(opts, schema.WithRegistry(g.Registry))
	}
	return opts
}

// Schema compiles d into a schema value.
func (g *Generator) Schema(d *schema.Document) (*jsonval.Node, error) {
	return schema.Compile(d, g.compileOpts()...)
}

// Write compiles d and writes the rendered schema to w.
func (g *Generator) Write(d *schema.Document, w io.Writer) error {
	node, err := g.Schema(d)
	if err != nil {
		return err
	}
	return encode.Encode(node, w,
		encode.EncodeFormat(g.Format),
		encode.Indent(g.Indent))
}

// String compiles d and renders the schema as a string.
func (g *Generator) String(d *schema.Document) (string, error) {
	node, err := g.Schema(d)
	if err != nil {
		return "", err
	}
	return encode.String(node,
		encode.EncodeFormat(g.Format),
		encode.Indent(g.Indent))
}

// Compile compiles d with default settings; see schema.Compile.
func Compile(d *schema.Document, opts ...schema.CompileOption) (*jsonval.Node, error) {
	return schema.Compile(d, opts...)
}
