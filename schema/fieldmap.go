package schema

// Fields is an ordered field table. Set on an existing name replaces the
// field but keeps the name's original position, which gives scope and
// inheritance layering its override semantics.
type Fields struct {
	names []string
	m     map[string]Field
}

// FieldDef pairs a name with its field declaration.
type FieldDef struct {
	Name  string
	Field Field
}

// F declares one named field.
func F(name string, f Field) FieldDef {
	return FieldDef{Name: name, Field: f}
}

// NewFields builds an ordered field table from declarations.
func NewFields(defs ...FieldDef) *Fields {
	fs := &Fields{m: map[string]Field{}}
	for _, d := range defs {
		fs.Set(d.Name, d.Field)
	}
	return fs
}

func (fs *Fields) Set(name string, f Field) *Fields {
	if _, ok := fs.m[name]; !ok {
		fs.names = append(fs.names, name)
	}
	fs.m[name] = f
	return fs
}

func (fs *Fields) Get(name string) (Field, bool) {
	f, ok := fs.m[name]
	return f, ok
}

// Names returns the field names in declaration order.
func (fs *Fields) Names() []string {
	return fs.names
}

func (fs *Fields) Len() int {
	return len(fs.names)
}

// layer applies other on top of fs in other's declaration order.
func (fs *Fields) layer(other *Fields) {
	if other == nil {
		return
	}
	for _, name := range other.names {
		fs.Set(name, other.m[name])
	}
}
