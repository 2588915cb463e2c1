package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/aretw0/twotruths/pkg/ports"
)

// BatchStoreContractTest is a reusable test suite that verifies if an adapter complies with ports.BatchStore.
func BatchStoreContractTest(t *testing.T, store ports.BatchStore) {
	t.Helper()
	ctx := context.Background()

	batch := &domain.Batch{
		ID:        "batch-contract-1",
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Statements: []domain.Statement{
			{Text: "a truth", Truth: true},
			{Text: "a lie", Truth: false},
		},
	}

	// 1. Load non-existent batch
	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-batch")
		if !errors.Is(err, domain.ErrBatchNotFound) {
			t.Errorf("expected ErrBatchNotFound, got %v", err)
		}
	})

	// 2. Save and load round trip
	t.Run("Save_Load", func(t *testing.T) {
		if err := store.Save(ctx, batch); err != nil {
			t.Fatalf("failed to save batch: %v", err)
		}
		loaded, err := store.Load(ctx, batch.ID)
		if err != nil {
			t.Fatalf("failed to load batch: %v", err)
		}
		if loaded.ID != batch.ID {
			t.Errorf("expected ID %s, got %s", batch.ID, loaded.ID)
		}
		if !loaded.CreatedAt.Equal(batch.CreatedAt) {
			t.Errorf("expected CreatedAt %v, got %v", batch.CreatedAt, loaded.CreatedAt)
		}
		if len(loaded.Statements) != len(batch.Statements) {
			t.Fatalf("expected %d statements, got %d", len(batch.Statements), len(loaded.Statements))
		}
		for i, s := range batch.Statements {
			if loaded.Statements[i] != s {
				t.Errorf("statement %d: expected %+v, got %+v", i, s, loaded.Statements[i])
			}
		}
	})

	// 3. Delete and confirm it is gone
	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, batch.ID); err != nil {
			t.Fatalf("failed to delete batch: %v", err)
		}
		if _, err := store.Load(ctx, batch.ID); !errors.Is(err, domain.ErrBatchNotFound) {
			t.Errorf("expected ErrBatchNotFound after delete, got %v", err)
		}
		if err := store.Delete(ctx, "never-saved"); err != nil {
			t.Errorf("deleting an unknown batch should not fail, got %v", err)
		}
	})

	// 4. Saving without an ID is rejected
	t.Run("Save_EmptyID", func(t *testing.T) {
		if err := store.Save(ctx, &domain.Batch{}); err == nil {
			t.Error("expected error saving a batch without ID")
		}
	})
}
