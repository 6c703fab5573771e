package docgen

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Set produces one family of documentation artifacts (input files, program
// settings, example models) from a configured Generator.
type Set interface {
	// Name is the identifier callers use to select the set.
	Name() string
	// Generate renders the set's artifacts.
	Generate(ctx context.Context, g *Generator) ([]Artifact, error)
}

// Registry stores named documentation sets so callers can resolve them at
// runtime.
type Registry struct {
	mu   sync.RWMutex
	sets map[string]Set
}

// NewRegistry builds an empty set registry.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[string]Set)}
}

// Register adds a set under its Name. Empty names or duplicate registrations
// are rejected so misconfigured callers fail fast.
func (r *Registry) Register(set Set) error {
	if set == nil {
		return fmt.Errorf("docgen: cannot register nil set")
	}
	name := set.Name()
	if name == "" {
		return fmt.Errorf("docgen: set name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sets[name]; exists {
		return fmt.Errorf("docgen: set %q already registered", name)
	}
	r.sets[name] = set
	return nil
}

// MustRegister is Register but panics on error. Intended for package init
// wiring where a failure is a programming bug.
func (r *Registry) MustRegister(set Set) {
	if err := r.Register(set); err != nil {
		panic(err)
	}
}

// Get resolves a set by name.
func (r *Registry) Get(name string) (Set, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.sets[name]
	if !ok {
		return nil, fmt.Errorf("docgen: set %q is not registered", name)
	}
	return set, nil
}

// Has reports whether a set is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.sets[name]
	return ok
}

// List returns the registered set names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with the built-in documentation sets.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(inputSet{})
	r.MustRegister(settingsSet{})
	r.MustRegister(examplesSet{})
	return r
}
