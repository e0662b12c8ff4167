package summary

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	apperrors "github.com/nextpdf/ai-service/pkg/errors"
	"github.com/nextpdf/ai-service/pkg/util"
)

// Config drives validation limits and the pipeline bounds.
type Config struct {
	Pipeline          PipelineConfig
	MaxInstructionLen int
	MaxDocumentBytes  int64
	DefaultStyle      Style
	DefaultLanguage   Language
	PersistSummaries  bool
}

// Service exposes the summarization workflows: synchronous, streaming, and
// queue-driven.
type Service struct {
	cfg       Config
	gen       Generator
	chunker   Chunker
	extractor TextExtractor
	storage   ObjectStorage
	queue     TaskQueue
	sink      ResultSink
	repo      SummaryRepository
	logger    *slog.Logger
}

// NewService constructs the Service; it is the wire provider for the domain.
func NewService(cfg Config, gen Generator, chunker Chunker, extractor TextExtractor, storage ObjectStorage, queue TaskQueue, sink ResultSink, repo SummaryRepository, logger *slog.Logger) *Service {
	if cfg.MaxInstructionLen <= 0 {
		cfg.MaxInstructionLen = 500
	}
	if cfg.DefaultStyle == "" {
		cfg.DefaultStyle = StyleBulletPoints
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = LanguageEnglish
	}
	return &Service{
		cfg:       cfg,
		gen:       gen,
		chunker:   chunker,
		extractor: extractor,
		storage:   storage,
		queue:     queue,
		sink:      sink,
		repo:      repo,
		logger:    logger.With("component", "summary.service"),
	}
}

// Summarize runs the pipeline inline and returns the terminal result. This
// is the guest/sync path: its finalizing stage falls back to the local style
// merge instead of failing the run when the polish call is exhausted.
func (s *Service) Summarize(ctx context.Context, req Request) (Result, error) {
	req, err := s.normalizeRequest(req)
	if err != nil {
		return Result{}, err
	}
	cfg := s.cfg.Pipeline
	cfg.LocalMergeFallback = true
	pipe := newPipeline(cfg, s.gen, s.chunker, s.logger, nil)
	return pipe.run(ctx, req)
}

// SummarizeStream runs the pipeline in the background and returns its event
// sequence: progress logs followed by exactly one result or error event.
func (s *Service) SummarizeStream(ctx context.Context, req Request) (<-chan Event, error) {
	req, err := s.normalizeRequest(req)
	if err != nil {
		return nil, err
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		emit := func(ev Event) {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		}
		pipe := newPipeline(s.cfg.Pipeline, s.gen, s.chunker, s.logger, emit)
		result, err := pipe.run(ctx, req)
		if err != nil {
			s.logger.Error("stream summarization failed", "error", err)
			emit(Event{Error: err.Error()})
			return
		}
		emit(Event{Result: &result})
	}()
	return events, nil
}

// SubmitRequest describes an asynchronous job submission.
type SubmitRequest struct {
	StoragePath        string   `json:"storage_path"`
	MimeType           string   `json:"mime_type,omitempty"`
	Style              Style    `json:"style"`
	CustomInstructions string   `json:"custom_instructions,omitempty"`
	Language           Language `json:"language"`
	CallbackURL        string   `json:"callback_url,omitempty"`
}

// Submit enqueues a summarization task for the background worker.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (Task, error) {
	if strings.TrimSpace(req.StoragePath) == "" {
		return Task{}, apperrors.Wrap(apperrors.CodeInvalidInput, "storage_path cannot be empty", nil)
	}
	if len(req.CustomInstructions) > s.cfg.MaxInstructionLen {
		return Task{}, apperrors.Wrap(apperrors.CodeInvalidInput, "custom_instructions too long", nil)
	}
	task := Task{
		JobID:              uuid.New(),
		StoragePath:        req.StoragePath,
		MimeType:           req.MimeType,
		Style:              s.styleOrDefault(req.Style),
		CustomInstructions: strings.TrimSpace(req.CustomInstructions),
		Language:           s.languageOrDefault(req.Language),
		CallbackURL:        req.CallbackURL,
	}
	if err := s.queue.Enqueue(ctx, task); err != nil {
		return Task{}, apperrors.Wrap(apperrors.CodeStorageError, "failed to enqueue task", err)
	}
	s.logger.Info("task enqueued", "job_id", task.JobID, "storage_path", task.StoragePath, "style", task.Style)
	return task, nil
}

// ProcessTask is the worker entry point: fetch the source bytes, extract
// text, run the strict pipeline, and deliver status updates to the sink.
// The sink sees progress updates and then exactly one terminal update.
func (s *Service) ProcessTask(ctx context.Context, task Task) {
	start := time.Now()
	logger := s.logger.With("job_id", task.JobID)
	logger.Info("task started", "storage_path", task.StoragePath)

	publish := func(update StatusUpdate) {
		update.JobID = task.JobID
		update.CallbackURL = task.CallbackURL
		if err := s.sink.Publish(ctx, update); err != nil {
			logger.Warn("status publish failed", "status", update.Status, "error", err)
		}
	}
	fail := func(msg string, err error) {
		logger.Error("task failed", "error", err)
		publish(StatusUpdate{Status: JobStatusFailed, Error: msg + ": " + err.Error()})
	}

	publish(StatusUpdate{Status: JobStatusProcessing, Log: "Worker received task"})

	text, err := s.loadDocument(ctx, task)
	if err != nil {
		fail("document load failed", err)
		return
	}

	req, err := s.normalizeRequest(Request{
		Text:               text,
		Style:              task.Style,
		CustomInstructions: task.CustomInstructions,
		Language:           task.Language,
	})
	if err != nil {
		fail("invalid document", err)
		return
	}

	emit := func(ev Event) {
		if ev.Log != "" {
			publish(StatusUpdate{Status: JobStatusProcessing, Log: ev.Log})
		}
	}
	pipe := newPipeline(s.cfg.Pipeline, s.gen, s.chunker, logger, emit)
	result, err := pipe.run(ctx, req)
	if err != nil {
		fail("summarization failed", err)
		return
	}

	if s.cfg.PersistSummaries && s.repo != nil {
		record := SummaryRecord{
			ID:               uuid.New(),
			JobID:            task.JobID,
			Title:            result.Title,
			Content:          result.Content,
			Style:            req.Style,
			Language:         req.Language,
			PromptTokens:     result.PromptTokens,
			CompletionTokens: result.CompletionTokens,
			DurationMs:       time.Since(start).Milliseconds(),
			CreatedAt:        util.NowUTC(),
		}
		if err := s.repo.Save(ctx, record); err != nil {
			logger.Warn("summary persistence failed", "error", err)
		}
	}

	publish(StatusUpdate{Status: JobStatusCompleted, Result: &result})
	logger.Info("task completed", "duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", result.PromptTokens, "completion_tokens", result.CompletionTokens)
}

// Styles returns the selectable style catalog.
func (s *Service) Styles() []StyleInfo {
	return StyleCatalog()
}

func (s *Service) loadDocument(ctx context.Context, task Task) (string, error) {
	reader, err := s.storage.Get(ctx, task.StoragePath)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeStorageError, "failed to fetch source object", err)
	}
	defer reader.Close()

	var data []byte
	if s.cfg.MaxDocumentBytes > 0 {
		data, err = io.ReadAll(io.LimitReader(reader, s.cfg.MaxDocumentBytes+1))
		if err == nil && int64(len(data)) > s.cfg.MaxDocumentBytes {
			return "", apperrors.Wrap(apperrors.CodeInvalidInput, "source document exceeds size limit", nil)
		}
	} else {
		data, err = io.ReadAll(reader)
	}
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeStorageError, "failed to read source object", err)
	}

	text, err := s.extractor.Extract(ctx, data, task.MimeType)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (s *Service) normalizeRequest(req Request) (Request, error) {
	req.Text = normalizeText(req.Text)
	if req.Text == "" {
		return Request{}, apperrors.Wrap(apperrors.CodeInvalidInput, "text cannot be empty", nil)
	}
	if !utf8.ValidString(req.Text) {
		return Request{}, apperrors.Wrap(apperrors.CodeInvalidInput, "text must be valid UTF-8", nil)
	}
	if len(req.CustomInstructions) > s.cfg.MaxInstructionLen {
		return Request{}, apperrors.Wrap(apperrors.CodeInvalidInput,
			fmt.Sprintf("custom_instructions exceeds %d characters", s.cfg.MaxInstructionLen), nil)
	}
	req.Style = s.styleOrDefault(req.Style)
	req.Language = s.languageOrDefault(req.Language)
	req.CustomInstructions = strings.TrimSpace(req.CustomInstructions)
	return req, nil
}

func (s *Service) styleOrDefault(style Style) Style {
	if style.Known() {
		return style
	}
	return s.cfg.DefaultStyle
}

func (s *Service) languageOrDefault(language Language) Language {
	if language == LanguageEnglish || language == LanguageIndonesian {
		return language
	}
	return s.cfg.DefaultLanguage
}

func normalizeText(text string) string {
	text = strings.TrimSpace(text)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r' {
			return -1
		}
		return r
	}, text)
}
