package adapters

import (
	"context"
	"sync"

	"github.com/aretw0/twotruths/pkg/domain"
)

// InMemoryLoader is a simple implementation of ports.ConfigLoader backed by a slice.
type InMemoryLoader struct {
	mu      sync.RWMutex
	configs []domain.GeneratorConfig
}

// NewInMemoryLoader creates a loader serving the given configs.
func NewInMemoryLoader(configs ...domain.GeneratorConfig) *InMemoryLoader {
	return &InMemoryLoader{configs: configs}
}

// Add appends a config.
func (l *InMemoryLoader) Add(cfg domain.GeneratorConfig) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.configs = append(l.configs, cfg)
}

// Load returns a copy of the configs.
func (l *InMemoryLoader) Load(ctx context.Context) ([]domain.GeneratorConfig, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.GeneratorConfig(nil), l.configs...), nil
}
