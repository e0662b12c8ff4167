package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/nextpdf/ai-service/pkg/errors"
	"github.com/nextpdf/ai-service/pkg/metrics"
	"github.com/nextpdf/ai-service/pkg/tokens"
)

// PipelineConfig bounds the recursive map-reduce pipeline.
type PipelineConfig struct {
	// SingleCallLimit is the largest text passed to one backend call.
	SingleCallLimit int
	// MaxDepth bounds the recursion; the run terminates within
	// MaxDepth+1 summarization rounds regardless of input size.
	MaxDepth int
	// MaxConcurrent bounds in-flight backend calls during dispatch.
	MaxConcurrent int
	Retry         RetryPolicy
	// LocalMergeFallback makes the finalizing stage fall back to the
	// local style merge when the polish call fails after retries. The
	// strict pipeline (stream/worker) keeps it off: any exhausted
	// backend failure fails the whole run.
	LocalMergeFallback bool
}

const (
	defaultSingleCallLimit = 30000
	defaultMaxDepth        = 3
	defaultMaxConcurrent   = 5
	defaultTitle           = "Document Summary"
	maxTitleLen            = 100
)

// stage names the orchestrator states. Transitions follow
// Direct | Chunking -> Dispatching -> Merging -> (Recursing | Finalizing),
// with Done and Failed terminal.
type stage string

const (
	stageDirect      stage = "direct"
	stageChunking    stage = "chunking"
	stageDispatching stage = "dispatching"
	stageMerging     stage = "merging"
	stageRecursing   stage = "recursing"
	stageFinalizing  stage = "finalizing"
	stageDone        stage = "done"
	stageFailed      stage = "failed"
)

// pipeline drives one summarization run to a terminal result. It is created
// per run; the only state shared between its concurrent chunk workers is the
// token accountant.
type pipeline struct {
	cfg     PipelineConfig
	gen     Generator
	chunker Chunker
	usage   *metrics.Accountant
	logger  *slog.Logger
	emit    func(Event)
}

func newPipeline(cfg PipelineConfig, gen Generator, chunker Chunker, logger *slog.Logger, emit func(Event)) *pipeline {
	if cfg.SingleCallLimit <= 0 {
		cfg.SingleCallLimit = defaultSingleCallLimit
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = defaultMaxDepth
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = defaultMaxConcurrent
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = NewRetryPolicy(0, 0)
	}
	if emit == nil {
		emit = func(Event) {}
	}
	return &pipeline{
		cfg:     cfg,
		gen:     gen,
		chunker: chunker,
		usage:   metrics.NewAccountant(),
		logger:  logger,
		emit:    emit,
	}
}

// run executes the state machine and returns the terminal result. It emits
// progress events along the way but never a terminal error/result event;
// the caller owns terminal delivery.
func (p *pipeline) run(ctx context.Context, req Request) (Result, error) {
	p.emitLog(fmt.Sprintf("Analyzing document (%d chars)...", len(req.Text)))

	text := req.Text
	depth := 1

	var (
		st       = p.entryStage(text, depth)
		chunks   []Chunk
		partials []string
		final    string
		runErr   error
	)

	for st != stageDone && st != stageFailed {
		switch st {
		case stageDirect:
			// Also the forced escape hatch: above MaxDepth the size
			// limit is ignored to guarantee termination.
			if depth > p.cfg.MaxDepth {
				p.emitLog(fmt.Sprintf("Max recursion depth reached at level %d. Summarizing directly.", depth))
			} else {
				p.emitLog("Processing single chunk...")
			}
			prompt := buildSinglePrompt(text, req.Style, req.CustomInstructions, req.Language)
			gen, err := p.generate(ctx, "single", prompt, singleCallParams)
			if err != nil {
				runErr = err
				st = stageFailed
				continue
			}
			final = gen.Text
			st = stageDone

		case stageChunking:
			p.emitLog(fmt.Sprintf("Chunking text (level %d)...", depth))
			chunks = p.buildChunks(text)
			if len(chunks) == 0 {
				runErr = apperrors.Wrap(apperrors.CodeChunkingError, "chunker produced no chunks", nil)
				st = stageFailed
				continue
			}
			total := 0
			for _, c := range chunks {
				total += c.TokenCount
			}
			p.logger.Debug("chunked input", "chunks", len(chunks), "tokens", total, "depth", depth)
			p.emitLog(fmt.Sprintf("Created %d chunks. Processing in parallel...", len(chunks)))
			st = stageDispatching

		case stageDispatching:
			var err error
			partials, err = p.dispatch(ctx, chunks, req)
			if err != nil {
				runErr = err
				st = stageFailed
				continue
			}
			p.emitLog(fmt.Sprintf("All %d chunks processed successfully.", len(chunks)))
			st = stageMerging

		case stageMerging:
			p.emitLog("Merging chunk summaries...")
			candidate := strings.Join(partials, "\n\n")
			if len(candidate) > p.cfg.SingleCallLimit && depth < p.cfg.MaxDepth {
				text = candidate
				st = stageRecursing
				continue
			}
			st = stageFinalizing

		case stageRecursing:
			depth++
			p.emitLog(fmt.Sprintf("Merged summary is still large (%d chars). Recursively summarizing (level %d)...", len(text), depth))
			st = p.entryStage(text, depth)

		case stageFinalizing:
			p.emitLog("Finalizing merged summary...")
			prompt := buildMergePrompt(partials, req.Style, req.Language)
			gen, err := p.generate(ctx, "merge", prompt, mergeCallParams)
			if err != nil {
				if !p.cfg.LocalMergeFallback {
					runErr = err
					st = stageFailed
					continue
				}
				p.logger.Warn("polish call failed, using local style merge", "error", err)
				final = MergeSummaries(partials, req.Style)
				st = stageDone
				continue
			}
			final = gen.Text
			st = stageDone
		}
	}

	if runErr != nil {
		return Result{}, runErr
	}

	title, content := parseTitle(final)
	usage := p.usage.Snapshot()
	return Result{
		Title:            title,
		Content:          content,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
	}, nil
}

// entryStage decides between the direct path and the chunked path. Depth
// beyond the budget always forces direct.
func (p *pipeline) entryStage(text string, depth int) stage {
	if depth > p.cfg.MaxDepth || len(text) <= p.cfg.SingleCallLimit {
		return stageDirect
	}
	return stageChunking
}

func (p *pipeline) buildChunks(text string) []Chunk {
	parts := p.chunker.Chunk(text)
	chunks := make([]Chunk, len(parts))
	for i, part := range parts {
		chunks[i] = Chunk{Index: i, Total: len(parts), Text: part, TokenCount: tokens.Count(part)}
	}
	return chunks
}

// dispatch fans the chunks out to parallel backend calls, at most
// MaxConcurrent in flight. Results land in chunk-index order no matter the
// completion order. One exhausted failure fails the whole batch; in-flight
// siblings finish but their results are discarded with the batch.
func (p *pipeline) dispatch(ctx context.Context, chunks []Chunk, req Request) ([]string, error) {
	results := make([]string, len(chunks))

	var g errgroup.Group
	g.SetLimit(p.cfg.MaxConcurrent)
	for _, chunk := range chunks {
		chunk := chunk
		p.emitLog(fmt.Sprintf("Queued chunk %d/%d...", chunk.Index+1, chunk.Total))
		g.Go(func() error {
			prompt := buildChunkPrompt(chunk, req.Style, req.CustomInstructions, req.Language)
			label := fmt.Sprintf("chunk %d/%d", chunk.Index+1, chunk.Total)
			gen, err := p.generate(ctx, label, prompt, chunkCallParams)
			if err != nil {
				return fmt.Errorf("%s: %w", label, err)
			}
			results[chunk.Index] = gen.Text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeBackendFatal, "parallel chunk processing failed", err)
	}
	return results, nil
}

// generate performs one retried backend call and books its token usage.
// Reported usage wins; otherwise both sides are estimated from text length.
func (p *pipeline) generate(ctx context.Context, label, prompt string, params GenerationParams) (Generation, error) {
	gen, err := p.cfg.Retry.Do(ctx, p.logger, label, func(ctx context.Context) (Generation, error) {
		return p.gen.Generate(ctx, prompt, params)
	})
	if err != nil {
		return Generation{}, err
	}
	if gen.Usage != nil && !gen.Usage.IsZero() {
		p.usage.AddPrompt(gen.Usage.PromptTokens)
		p.usage.AddCompletion(gen.Usage.CompletionTokens)
	} else {
		p.usage.AddPrompt(metrics.EstimateTokens(prompt))
		p.usage.AddCompletion(metrics.EstimateTokens(gen.Text))
	}
	return gen, nil
}

func (p *pipeline) emitLog(msg string) {
	p.emit(Event{Log: msg})
}

// parseTitle splits terminal text on the TITLE:/SUMMARY: marker pair. A
// missing pair degrades to the default title with the whole text as body.
func parseTitle(text string) (string, string) {
	text = strings.TrimSpace(text)
	if !strings.Contains(text, "TITLE:") {
		return defaultTitle, text
	}
	parts := strings.SplitN(text, "SUMMARY:", 2)
	if len(parts) != 2 {
		return defaultTitle, text
	}
	titlePart := strings.TrimSpace(strings.Replace(parts[0], "TITLE:", "", 1))
	title := titlePart
	if idx := strings.IndexByte(titlePart, '\n'); idx >= 0 {
		title = titlePart[:idx]
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultTitle
	} else if len(title) > maxTitleLen {
		title = title[:maxTitleLen]
	}
	return title, strings.TrimSpace(parts[1])
}
