package summary

import (
	"context"
	"io"

	"github.com/nextpdf/ai-service/pkg/metrics"
)

// Generation is the outcome of one backend call. Usage is nil when the
// backend does not report token counts; callers then estimate from text
// length.
type Generation struct {
	Text  string
	Usage *metrics.TokenUsage
}

// Generator abstracts the external text-generation backend. Implementations
// return errors tagged backend_transient or backend_fatal via pkg/errors so
// the retry policy can classify them without parsing message text.
type Generator interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (Generation, error)
}

// Chunker splits a text blob into an ordered sequence of bounded-size,
// overlapping segments. Small inputs come back as a single element.
type Chunker interface {
	Chunk(text string) []string
}

// TextExtractor turns source document bytes into plain UTF-8 text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, mimeType string) (string, error)
}

// ObjectStorage retrieves source documents by storage key.
type ObjectStorage interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// TaskQueue enqueues summarization jobs for the background worker.
type TaskQueue interface {
	Enqueue(ctx context.Context, task Task) error
}

// ResultSink receives job status updates: progress logs while the pipeline
// runs, then exactly one completed or failed update.
type ResultSink interface {
	Publish(ctx context.Context, update StatusUpdate) error
}

// SummaryRepository persists completed summaries.
type SummaryRepository interface {
	Save(ctx context.Context, record SummaryRecord) error
}
