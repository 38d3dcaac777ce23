// Package registry keeps the generator backends available to the plugin.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/aretw0/xgenseed/pkg/ports"
)

// Registry manages the available generator backends.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]ports.Generator
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]ports.Generator),
	}
}

// Register adds a generator to the registry.
// If a generator with the same name exists, it is overwritten.
func (r *Registry) Register(name string, gen ports.Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[name] = gen
}

// Get looks up a generator by name.
func (r *Registry) Get(name string) (ports.Generator, error) {
	r.mu.RLock()
	gen, ok := r.generators[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGeneratorNotFound, name)
	}
	return gen, nil
}

// Names returns the registered generator names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes every generator.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.generators)
}
