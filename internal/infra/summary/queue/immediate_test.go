package queue

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domain "github.com/nextpdf/ai-service/internal/domain/summary"
)

func TestImmediateQueueRunsHandler(t *testing.T) {
	q := NewImmediateQueue()
	received := make(chan domain.Task, 1)
	q.SetHandler(func(_ context.Context, task domain.Task) {
		received <- task
	})

	task := domain.Task{JobID: uuid.New(), StoragePath: "uploads/a.txt"}
	require.NoError(t, q.Enqueue(context.Background(), task))

	select {
	case got := <-received:
		require.Equal(t, task.JobID, got.JobID)
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestImmediateQueueSurvivesCallerCancellation(t *testing.T) {
	q := NewImmediateQueue()
	received := make(chan error, 1)
	q.SetHandler(func(ctx context.Context, _ domain.Task) {
		received <- ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, q.Enqueue(ctx, domain.Task{JobID: uuid.New()}))

	select {
	case err := <-received:
		// The task context is detached from the request context.
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestImmediateQueueWithoutHandlerDropsTask(t *testing.T) {
	q := NewImmediateQueue()
	require.NoError(t, q.Enqueue(context.Background(), domain.Task{JobID: uuid.New()}))
}
