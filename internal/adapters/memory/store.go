package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/twotruths/pkg/domain"
	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL is how long batches are kept when no TTL is given.
const DefaultTTL = time.Hour

// Store implements ports.BatchStore in process memory.
// Batches expire after the configured TTL.
type Store struct {
	cache *gocache.Cache
}

// NewStore creates a memory store. A ttl of zero uses DefaultTTL; a negative
// ttl keeps batches forever.
func NewStore(ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	cleanup := 10 * time.Minute
	if ttl < 0 {
		ttl = gocache.NoExpiration
		cleanup = 0
	}
	return &Store{
		cache: gocache.New(ttl, cleanup),
	}
}

// Save stores a copy of the batch.
func (s *Store) Save(ctx context.Context, batch *domain.Batch) error {
	if batch.ID == "" {
		return fmt.Errorf("batch ID cannot be empty")
	}
	s.cache.SetDefault(batch.ID, copyBatch(batch))
	return nil
}

// Load returns a copy of the stored batch.
func (s *Store) Load(ctx context.Context, id string) (*domain.Batch, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, domain.ErrBatchNotFound
	}
	return copyBatch(v.(*domain.Batch)), nil
}

// Delete removes the batch.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}

// Len returns the number of stored batches, including expired ones not yet cleaned up.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}

func copyBatch(b *domain.Batch) *domain.Batch {
	out := *b
	out.Statements = append([]domain.Statement(nil), b.Statements...)
	return &out
}
