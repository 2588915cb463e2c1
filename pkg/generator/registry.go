package generator

import (
	"sort"
	"sync"

	"github.com/aretw0/twotruths/pkg/domain"
)

// Constructor builds a generator from its config.
type Constructor func(config domain.GeneratorConfig) (Generator, error)

// Registry maps generator kinds to constructors.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Constructor
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]Constructor),
	}
}

// DefaultRegistry returns a registry with the built-in kinds and their short aliases.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindMeasurement, NewMeasurement)
	r.Register("measurement", NewMeasurement)
	r.Register(KindCount, NewCount)
	r.Register("count", NewCount)
	return r
}

// Register adds a constructor for kind.
// If the kind is already registered, it is overwritten.
func (r *Registry) Register(kind string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[kind] = ctor
}

// Lookup returns the constructor for kind.
func (r *Registry) Lookup(kind string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.kinds[kind]
	return ctor, ok
}

// Kinds lists the registered kinds in lexical order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Create builds the generator for config.
// Returns *domain.UnknownKindError if the kind is not registered.
func (r *Registry) Create(config domain.GeneratorConfig) (Generator, error) {
	ctor, ok := r.Lookup(config.Kind)
	if !ok {
		return nil, &domain.UnknownKindError{Kind: config.Kind}
	}
	return ctor(config)
}

// CreateAll builds one generator per config, failing on the first error.
func (r *Registry) CreateAll(configs []domain.GeneratorConfig) ([]Generator, error) {
	gens := make([]Generator, 0, len(configs))
	for _, cfg := range configs {
		g, err := r.Create(cfg)
		if err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}
	return gens, nil
}
