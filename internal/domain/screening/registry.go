package screening

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownModule is returned when a module id is not registered.
var ErrUnknownModule = errors.New("unknown module")

// Registry is the ordered, static set of screening modules.
type Registry struct {
	modules []Module
	byID    map[string]Module
}

// NewRegistry registers modules in the given order. Ids must be unique and
// non-empty.
func NewRegistry(modules ...Module) (*Registry, error) {
	r := &Registry{byID: make(map[string]Module, len(modules))}
	for _, m := range modules {
		id := m.ID()
		if id == "" {
			return nil, errors.New("module id is required")
		}
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("duplicate module id %q", id)
		}
		r.byID[id] = m
		r.modules = append(r.modules, m)
	}
	return r, nil
}

// DefaultRegistry returns the liver and heart panels, in that order.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(NewLiver(), NewHeart())
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the module registered under id.
func (r *Registry) Get(id string) (Module, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// All returns every module in registration order.
func (r *Registry) All() []Module {
	out := make([]Module, len(r.modules))
	copy(out, r.modules)
	return out
}

// IDs returns every registered id in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.modules))
	for i, m := range r.modules {
		ids[i] = m.ID()
	}
	return ids
}

// Select returns the modules named by ids, in the order given. Blank ids are
// ignored and repeats collapse to the first occurrence. An empty selection
// means every module.
func (r *Registry) Select(ids []string) ([]Module, error) {
	var out []Module
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		m, ok := r.byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownModule, id)
		}
		seen[id] = true
		out = append(out, m)
	}
	if len(out) == 0 {
		return r.All(), nil
	}
	return out, nil
}
