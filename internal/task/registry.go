package task

import "fmt"

// Registry holds all known targets, keyed by unique name. It is populated
// once at process start and treated as read-only afterwards; declaration
// order is preserved for deterministic listing and resolution.
type Registry struct {
	byName map[string]*Target
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Target)}
}

// Register adds a target. It fails with DuplicateTargetError when the name
// is taken, and rejects names that are empty or contain whitespace.
func (r *Registry) Register(t *Target) error {
	if t == nil {
		return fmt.Errorf("cannot register nil target")
	}
	if !ValidName(t.Name) {
		return fmt.Errorf("invalid target name %q", t.Name)
	}
	if _, exists := r.byName[t.Name]; exists {
		return &DuplicateTargetError{Name: t.Name}
	}
	r.byName[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// Lookup returns the target registered under name, or UnknownTargetError.
func (r *Registry) Lookup(name string) (*Target, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, &UnknownTargetError{Name: name}
	}
	return t, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Names returns all registered names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// All returns all targets in declaration order.
func (r *Registry) All() []*Target {
	targets := make([]*Target, 0, len(r.order))
	for _, name := range r.order {
		targets = append(targets, r.byName[name])
	}
	return targets
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	return len(r.order)
}
