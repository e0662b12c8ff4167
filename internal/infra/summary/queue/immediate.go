package queue

import (
	"context"

	domain "github.com/nextpdf/ai-service/internal/domain/summary"
)

// HandlerQueue supports setting a handler for task delivery.
type HandlerQueue interface {
	domain.TaskQueue
	SetHandler(handler Handler)
}

// Handler executes one task.
type Handler func(ctx context.Context, task domain.Task)

// ImmediateQueue runs the handler in the background on enqueue. Used when no
// Valkey instance is configured.
type ImmediateQueue struct {
	handler Handler
}

// NewImmediateQueue constructs the queue.
func NewImmediateQueue() *ImmediateQueue {
	return &ImmediateQueue{}
}

// SetHandler replaces the handler used for queued tasks.
func (q *ImmediateQueue) SetHandler(handler Handler) {
	q.handler = handler
}

// Enqueue invokes the handler asynchronously.
func (q *ImmediateQueue) Enqueue(ctx context.Context, task domain.Task) error {
	if q.handler == nil {
		return nil
	}
	go q.handler(context.WithoutCancel(ctx), task)
	return nil
}

var _ domain.TaskQueue = (*ImmediateQueue)(nil)
var _ HandlerQueue = (*ImmediateQueue)(nil)
