package schema

import (
	"sort"
	"sync"
)

// Registry maps document names to documents so fields can reference them
// by name before the target variable exists. Safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func NewRegistry() *Registry {
	return &Registry{docs: map[string]*Document{}}
}

// Register adds d under its name. Re-registering the same document is a
// no-op; a different document under a taken name is an error.
func (r *Registry) Register(d *Document) error {
	if d == nil {
		return configErrorf("register: nil document")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.docs[d.name]; ok {
		if prev == d {
			return nil
		}
		return configErrorf("register: document name %q already taken", d.name)
	}
	r.docs[d.name] = d
	return nil
}

// Lookup returns the document registered under name.
func (r *Registry) Lookup(name string) (*Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.docs[name]
	return d, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.docs))
	for n := range r.docs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry backs the package-level Register and name resolution
// when a compilation does not supply its own registry.
var DefaultRegistry = NewRegistry()

// Register adds d to DefaultRegistry.
func Register(d *Document) error {
	return DefaultRegistry.Register(d)
}

// MustRegister is Register that panics on failure.
func MustRegister(d *Document) *Document {
	if err := Register(d); err != nil {
		panic(err)
	}
	return d
}
