package twotruths

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/aretw0/twotruths/internal/adapters"
	"github.com/aretw0/twotruths/internal/runtime"
	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/aretw0/twotruths/pkg/generator"
	"github.com/aretw0/twotruths/pkg/ports"
	"github.com/google/uuid"
)

// ErrNoStore is returned by Reveal when the engine has no batch store.
var ErrNoStore = errors.New("batch store not configured")

// Engine is the high-level entry point for the library.
// It owns the generators built from its loader and produces batches of
// truths and lies on demand. It is safe for concurrent use.
type Engine struct {
	mu         sync.RWMutex
	generators []generator.Generator

	loader   ports.ConfigLoader
	registry *generator.Registry
	store    ports.BatchStore
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	now      func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom ConfigLoader, bypassing the default file loader.
func WithLoader(l ports.ConfigLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithConfigs serves the given configs from memory.
func WithConfigs(configs ...domain.GeneratorConfig) Option {
	return func(e *Engine) {
		e.loader = adapters.NewInMemoryLoader(configs...)
	}
}

// WithRegistry sets the registry used to resolve generator kinds.
func WithRegistry(r *generator.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithStore keeps every generated batch so it can be revealed later.
func WithStore(s ports.BatchStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock overrides the time source used to stamp batches.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New initializes an Engine.
// By default, generator configs are read from the given files or directories.
// If WithLoader or WithConfigs is provided, paths may be empty.
func New(paths []string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if len(paths) == 0 {
			return nil, fmt.Errorf("config paths are required when no custom loader is provided")
		}
		eng.loader = adapters.NewFileLoader(paths...)
	}
	if eng.registry == nil {
		eng.registry = generator.DefaultRegistry()
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.now == nil {
		eng.now = time.Now
	}

	if err := eng.Reload(context.Background()); err != nil {
		return nil, err
	}
	return eng, nil
}

// Reload re-reads the configs from the loader and rebuilds the generators.
// On error the previous generators are kept.
func (e *Engine) Reload(ctx context.Context) error {
	configs, err := e.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load generator configs: %w", err)
	}
	gens, err := e.registry.CreateAll(configs)
	if err != nil {
		return fmt.Errorf("failed to build generators: %w", err)
	}

	e.mu.Lock()
	e.generators = gens
	e.mu.Unlock()

	e.logger.Debug("generators loaded", "count", len(gens))
	return nil
}

// GeneratorInfo summarizes one loaded generator.
type GeneratorInfo struct {
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
	Size int    `json:"size"`
}

// Generators describes the loaded generators in load order.
func (e *Engine) Generators() []GeneratorInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]GeneratorInfo, len(e.generators))
	for i, g := range e.generators {
		out[i] = GeneratorInfo{Kind: g.Kind(), Name: g.Name(), Size: g.Size()}
	}
	return out
}

// Generate produces a batch for req.
//
// The request is validated first. Each call draws from its own random source,
// seeded with req.Seed when non-zero. Statements are sorted lexically unless
// req.RandomOrder is set. When a store is configured the batch is saved
// before it is returned.
func (e *Engine) Generate(ctx context.Context, req domain.Request) (*domain.Batch, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	gens := e.generators
	e.mu.RUnlock()
	if len(gens) == 0 {
		return nil, &domain.ValidationError{Message: "at least one generator config is required"}
	}

	seed := req.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	batch := &domain.Batch{ID: uuid.NewString(), CreatedAt: e.now().UTC()}
	logger := e.logger.With("batch_id", batch.ID)
	start := time.Now()

	if e.hooks.OnBatchStart != nil {
		e.hooks.OnBatchStart(ctx, &domain.BatchEvent{
			EventBase: e.event(domain.EventBatchStart, batch.ID),
			Request:   req,
		})
	}

	retries := 0
	observe := runtime.WithRejectionObserver(func(r runtime.Rejection) {
		retries++
		if e.hooks.OnRetry != nil {
			e.hooks.OnRetry(ctx, &domain.RetryEvent{
				EventBase: e.event(domain.EventStatementRetry, batch.ID),
				Truth:     r.Truth,
				Generator: r.Generator,
				Reason:    r.Reason,
			})
		}
	})

	statements, err := runtime.GenerateTruthsLies(gens, req.Truths, req.Lies, req.MaxRetries, req.EnsureNotTrue, rng, observe)
	if err != nil {
		e.failed(ctx, batch.ID, req, start, retries, err)
		logger.Warn("batch generation failed", "error", err, "seed", seed, "retries", retries)
		return nil, err
	}

	if req.RandomOrder {
		statements.Shuffle(rng)
	} else {
		statements.Sort()
	}
	batch.Statements = statements.Statements()

	if e.store != nil {
		if err := e.store.Save(ctx, batch); err != nil {
			err = fmt.Errorf("failed to store batch: %w", err)
			e.failed(ctx, batch.ID, req, start, retries, err)
			logger.Error("batch store failed", "error", err)
			return nil, err
		}
	}

	if e.hooks.OnBatchComplete != nil {
		e.hooks.OnBatchComplete(ctx, &domain.BatchEvent{
			EventBase: e.event(domain.EventBatchComplete, batch.ID),
			Request:   req,
			Duration:  time.Since(start),
			Retries:   retries,
		})
	}
	logger.Debug("batch generated",
		"seed", seed,
		"truths", req.Truths,
		"lies", req.Lies,
		"retries", retries,
	)
	return batch, nil
}

// Reveal returns a stored batch with its truth flags.
func (e *Engine) Reveal(ctx context.Context, id string) (*domain.Batch, error) {
	if e.store == nil {
		return nil, ErrNoStore
	}
	return e.store.Load(ctx, id)
}

func (e *Engine) event(t domain.EventType, batchID string) domain.EventBase {
	return domain.EventBase{Timestamp: e.now(), Type: t, BatchID: batchID}
}

func (e *Engine) failed(ctx context.Context, batchID string, req domain.Request, start time.Time, retries int, err error) {
	if e.hooks.OnBatchFailed == nil {
		return
	}
	e.hooks.OnBatchFailed(ctx, &domain.BatchEvent{
		EventBase: e.event(domain.EventBatchFailed, batchID),
		Request:   req,
		Duration:  time.Since(start),
		Retries:   retries,
		Err:       err,
	})
}
