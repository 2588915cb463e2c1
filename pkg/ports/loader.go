package ports

import (
	"context"

	"github.com/aretw0/twotruths/pkg/domain"
)

// ConfigLoader defines how the engine retrieves generator definitions.
// This allows the source (files, memory, requests) to be decoupled.
type ConfigLoader interface {
	// Load returns every generator config the source knows about, in a stable order.
	Load(ctx context.Context) ([]domain.GeneratorConfig, error)
}
