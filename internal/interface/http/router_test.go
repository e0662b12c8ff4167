package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	summary "github.com/nextpdf/ai-service/internal/domain/summary"
	"github.com/nextpdf/ai-service/internal/infra/config"
	"github.com/nextpdf/ai-service/internal/infra/summary/callback"
	"github.com/nextpdf/ai-service/internal/infra/summary/chunker"
	"github.com/nextpdf/ai-service/internal/infra/summary/extract"
	"github.com/nextpdf/ai-service/internal/infra/summary/llm"
	"github.com/nextpdf/ai-service/internal/infra/summary/queue"
	"github.com/nextpdf/ai-service/internal/infra/summary/repo"
	"github.com/nextpdf/ai-service/internal/infra/summary/storage"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := summary.NewService(
		summary.Config{},
		llm.EchoGenerator{},
		chunker.New(8000, 200),
		extract.NewPlainTextExtractor(),
		storage.NewMemoryStorage(),
		queue.NewImmediateQueue(),
		callback.NewLogSink(logger),
		repo.NewMemoryRepository(),
		logger,
	)
	handler := NewSummaryHandler(svc, logger)

	cfg := &config.Config{}
	cfg.HTTP.Address = ":0"
	server := NewRouter(cfg, handler)
	return server.Handler
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestServer(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestStylesEndpoint(t *testing.T) {
	router := newTestServer(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/styles", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "bullet_points")
	require.Contains(t, w.Body.String(), "academic")
}

func TestSyncSummarizeEndpoint(t *testing.T) {
	router := newTestServer(t)
	body := strings.NewReader(`{"text": "A short document to summarize.", "style": "bullet_points", "language": "en"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summaries/sync", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Echo Summary")
}

func TestSyncSummarizeRejectsEmptyText(t *testing.T) {
	router := newTestServer(t)
	body := strings.NewReader(`{"text": "   "}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summaries/sync", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "invalid_request")
}

func TestSubmitEndpointAcceptsJob(t *testing.T) {
	router := newTestServer(t)
	body := strings.NewReader(`{"storage_path": "uploads/report.txt", "style": "paragraph"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summaries", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Contains(t, w.Body.String(), "job_id")
	require.Contains(t, w.Body.String(), "processing")
}

func TestSubmitEndpointValidatesBody(t *testing.T) {
	router := newTestServer(t)
	body := strings.NewReader(`{"storage_path": ""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summaries", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStreamEndpointEmitsEvents(t *testing.T) {
	router := newTestServer(t)
	body := strings.NewReader(`{"text": "Streamed document content."}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summaries/stream", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	require.Contains(t, w.Body.String(), "data: ")
	require.Contains(t, w.Body.String(), "Echo Summary")
}

func TestCORSPreflight(t *testing.T) {
	router := newTestServer(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/styles", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
