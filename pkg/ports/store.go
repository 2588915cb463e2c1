package ports

import (
	"context"

	"github.com/aretw0/twotruths/pkg/domain"
)

// BatchStore defines the interface for persisting generated batches.
// It lets a client hand out the masked statements first and reveal which were
// true later.
type BatchStore interface {
	// Save persists the batch under batch.ID.
	Save(ctx context.Context, batch *domain.Batch) error

	// Load retrieves a batch by ID.
	// Returns domain.ErrBatchNotFound if the batch does not exist (or has expired).
	Load(ctx context.Context, id string) (*domain.Batch, error)

	// Delete removes a batch. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}
