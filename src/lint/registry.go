package lint

import (
	"errors"
	"fmt"
)

// ErrUnknownLinter is returned when a linter name is not registered.
var ErrUnknownLinter = errors.New("lint: unknown linter")

// Registry is an ordered set of linters. Order is registration order and
// is the order fixers run in.
type Registry struct {
	linters []Linter
	index   map[string]int
}

// NewRegistry registers linters in the given order.
func NewRegistry(linters ...Linter) *Registry {
	r := &Registry{index: map[string]int{}}
	for _, l := range linters {
		r.Register(l)
	}
	return r
}

// Register appends a linter. Registering a name twice panics.
func (r *Registry) Register(l Linter) {
	if r.index == nil {
		r.index = map[string]int{}
	}
	name := l.Name()
	if _, exists := r.index[name]; exists {
		panic(fmt.Sprintf("lint: duplicate linter registration: %s", name))
	}
	r.index[name] = len(r.linters)
	r.linters = append(r.linters, l)
}

// Get returns the named linter.
func (r *Registry) Get(name string) (Linter, error) {
	i, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLinter, name)
	}
	return r.linters[i], nil
}

// Names returns linter names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.linters))
	for i, l := range r.linters {
		names[i] = l.Name()
	}
	return names
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Selection picks linters out of a registry.
type Selection struct {
	// Only, when non-empty, selects exactly these linters.
	Only []string
	// Skip removes linters from the selection.
	Skip []string
	// Enabled overrides DefaultEnabled per linter.
	Enabled map[string]bool
}

// Select returns the chosen linters in registration order.
func (r *Registry) Select(sel Selection) ([]Linter, error) {
	skip := make(map[string]bool, len(sel.Skip))
	for _, name := range sel.Skip {
		if !r.Has(name) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLinter, name)
		}
		skip[name] = true
	}

	only := make(map[string]bool, len(sel.Only))
	for _, name := range sel.Only {
		if !r.Has(name) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLinter, name)
		}
		only[name] = true
	}

	var out []Linter
	for _, l := range r.linters {
		name := l.Name()
		if skip[name] {
			continue
		}
		if len(only) > 0 {
			if only[name] {
				out = append(out, l)
			}
			continue
		}
		enabled := l.DefaultEnabled()
		if e, ok := sel.Enabled[name]; ok {
			enabled = e
		}
		if enabled {
			out = append(out, l)
		}
	}

	if len(out) == 0 {
		return nil, errors.New("no linters selected")
	}
	return out, nil
}
