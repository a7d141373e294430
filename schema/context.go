package schema

import (
	"fmt"
	"sort"

	"github.com/docshape/docshape/debug"
	"github.com/docshape/docshape/jsonval"
	"github.com/docshape/docshape/roles"
)

type defState int

const (
	defInProgress defState = iota
	defComplete
)

type defKey struct {
	doc  *Document
	role roles.Role
}

// defEntry is one definitions slot: a (document, role) pair, its claimed
// id and its emitted body.
type defEntry struct {
	doc        *Document
	role       roles.Role
	id         string
	node       *jsonval.Node
	state      defState
	referenced bool
}

// definitions registers each (document, role) pair once, assigns each a
// unique textual id and detects collisions.
type definitions struct {
	entries []*defEntry
	byKey   map[defKey]*defEntry
	byID    map[string]*defEntry
}

func newDefinitions() *definitions {
	return &definitions{
		byKey: map[defKey]*defEntry{},
		byID:  map[string]*defEntry{},
	}
}

// claim returns the entry for (doc, role), creating it with a unique id
// when unseen. The same document under a second role gets a
// role-qualified id; two distinct documents claiming the same id is a
// collision.
func (ds *definitions) claim(doc *Document, role roles.Role) (*defEntry, bool, error) {
	key := defKey{doc: doc, role: role}
	if e, ok := ds.byKey[key]; ok {
		return e, false, nil
	}
	id := doc.DefinitionID()
	if prev, taken := ds.byID[id]; taken {
		if prev.doc != doc {
			return nil, false, collisionError(prev.doc, doc, id)
		}
		// same document, second role
		id = id + "." + string(role)
		if prev, taken := ds.byID[id]; taken && prev.doc != doc {
			return nil, false, collisionError(prev.doc, doc, id)
		}
	}
	e := &defEntry{doc: doc, role: role, id: id, state: defInProgress}
	ds.entries = append(ds.entries, e)
	ds.byKey[key] = e
	ds.byID[id] = e
	return e, true, nil
}

func collisionError(a, b *Document, id string) *Error {
	return &Error{
		Kind: KindDefinitionCollision,
		Msg:  fmt.Sprintf("documents %q and %q both claim definition id %q", a.name, b.name, id),
	}
}

// node builds the definitions object. Entries order by document
// declaration, role-tiebroken, which keeps output stable across runs.
func (ds *definitions) node(skip *defEntry) *jsonval.Node {
	ordered := make([]*defEntry, 0, len(ds.entries))
	for _, e := range ds.entries {
		if e == skip {
			continue
		}
		ordered = append(ordered, e)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].doc.seq != ordered[j].doc.seq {
			return ordered[i].doc.seq < ordered[j].doc.seq
		}
		return ordered[i].role < ordered[j].role
	})
	if len(ordered) == 0 {
		return nil
	}
	out := jsonval.NewObject()
	for _, e := range ordered {
		out.Set(e.id, e.node)
	}
	return out
}

// stackFrame is one in-progress inline expansion. Cycle detection keys
// on the pair: the same document may legally appear twice under two
// different roles.
type stackFrame struct {
	doc  *Document
	role roles.Role
}

// genContext carries one compilation: the role, the target registry, the
// inline resolution stack and the definitions under construction.
type genContext struct {
	role    roles.Role
	ordered bool
	reg     *Registry
	stack   []stackFrame
	defs    *definitions
}

// withRole derives a context for a subtree compiling under a different
// role. Definitions are shared; the stack is copied so push/pop in the
// subtree cannot alias the parent's.
func (ctx *genContext) withRole(role roles.Role) *genContext {
	if role == ctx.role {
		return ctx
	}
	return &genContext{
		role:    role,
		ordered: ctx.ordered,
		reg:     ctx.reg,
		stack:   append([]stackFrame(nil), ctx.stack...),
		defs:    ctx.defs,
	}
}

// current returns the innermost document being emitted, the target of
// Self references.
func (ctx *genContext) current() *Document {
	if len(ctx.stack) == 0 {
		return nil
	}
	return ctx.stack[len(ctx.stack)-1].doc
}

func (ctx *genContext) onStack(d *Document) bool {
	for _, s := range ctx.stack {
		if s.doc == d && s.role == ctx.role {
			return true
		}
	}
	return false
}

// inlineDocument flattens doc in place. A document already on the stack
// means the inline expansion would never terminate.
func (ctx *genContext) inlineDocument(doc *Document) (*jsonval.Node, error) {
	if ctx.onStack(doc) {
		return nil, &Error{
			Kind:  KindUnresolvableRecursion,
			Msg:   fmt.Sprintf("inline reference cycle through document %q", doc.name),
			Steps: []Step{docStep(doc.name, ctx.role)},
		}
	}
	ctx.stack = append(ctx.stack, stackFrame{doc: doc, role: ctx.role})
	node, err := emitDocument(doc, ctx)
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	if err != nil {
		return nil, prependStep(err, docStep(doc.name, ctx.role))
	}
	return node, nil
}

// registerRef ensures doc has a definitions entry for the active role and
// returns its id. The body is emitted once, on a fresh stack, so cycles
// through $ref terminate.
func (ctx *genContext) registerRef(doc *Document) (string, error) {
	e, fresh, err := ctx.defs.claim(doc, ctx.role)
	if err != nil {
		return "", err
	}
	e.referenced = true
	if !fresh {
		return e.id, nil
	}
	if debug.Resolve() {
		debug.Logf("definitions: %s <- %s (role %s)\n", e.id, doc.name, ctx.role)
	}
	sub := &genContext{
		role:    ctx.role,
		ordered: ctx.ordered,
		reg:     ctx.reg,
		stack:   []stackFrame{{doc: doc, role: ctx.role}},
		defs:    ctx.defs,
	}
	node, err := emitDocument(doc, sub)
	if err != nil {
		return "", prependStep(err, docStep(doc.name, ctx.role))
	}
	e.node = node
	e.state = defComplete
	return e.id, nil
}
