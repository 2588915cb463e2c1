package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventBatchStart     EventType = "batch_start"
	EventBatchComplete  EventType = "batch_complete"
	EventBatchFailed    EventType = "batch_failed"
	EventStatementRetry EventType = "statement_retry"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	BatchID   string    `json:"batch_id"`
}

// BatchEvent is emitted at the start and end of a batch.
type BatchEvent struct {
	EventBase
	Request  Request       `json:"request"`
	Duration time.Duration `json:"duration,omitempty"`
	Retries  int           `json:"retries,omitempty"`
	Err      error         `json:"-"`
}

// RetryEvent is emitted each time a candidate statement is rejected.
type RetryEvent struct {
	EventBase
	Truth     bool   `json:"truth"`
	Generator int    `json:"generator"`
	Reason    string `json:"reason"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnBatchStart    func(context.Context, *BatchEvent)
	OnBatchComplete func(context.Context, *BatchEvent)
	OnBatchFailed   func(context.Context, *BatchEvent)
	OnRetry         func(context.Context, *RetryEvent)
}
