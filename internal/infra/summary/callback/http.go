package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	domain "github.com/nextpdf/ai-service/internal/domain/summary"
)

// HTTPSink delivers job status updates to the backend callback endpoint.
// Progress logs are advisory; terminal updates carry the result or error.
type HTTPSink struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPSink constructs the sink. baseURL is the backend root; updates are
// posted to its internal summaries endpoint.
func NewHTTPSink(baseURL string, logger *slog.Logger) *HTTPSink {
	return &HTTPSink{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger.With("component", "summary.callback"),
	}
}

// Publish posts one status update.
func (s *HTTPSink) Publish(ctx context.Context, update domain.StatusUpdate) error {
	payload, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("encode status update: %w", err)
	}

	url := fmt.Sprintf("%s/internal/summaries/%s/events", s.baseURL, update.JobID)
	if update.CallbackURL != "" {
		url = update.CallbackURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build callback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("callback rejected with status %d", resp.StatusCode)
	}
	return nil
}

var _ domain.ResultSink = (*HTTPSink)(nil)

// LogSink records status updates in the service log when no callback URL is
// configured.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink constructs the sink.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With("component", "summary.callback.log")}
}

// Publish logs the update.
func (s *LogSink) Publish(_ context.Context, update domain.StatusUpdate) error {
	switch update.Status {
	case domain.JobStatusFailed:
		s.logger.Error("job failed", "job_id", update.JobID, "error", update.Error)
	case domain.JobStatusCompleted:
		s.logger.Info("job completed", "job_id", update.JobID, "title", update.Result.Title)
	default:
		s.logger.Info("job progress", "job_id", update.JobID, "log", update.Log)
	}
	return nil
}

var _ domain.ResultSink = (*LogSink)(nil)
