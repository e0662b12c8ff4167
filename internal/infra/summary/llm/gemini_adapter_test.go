package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/nextpdf/ai-service/internal/domain/summary"
	"github.com/nextpdf/ai-service/internal/infra/llm/gemini"
	apperrors "github.com/nextpdf/ai-service/pkg/errors"
)

func adapterFor(t *testing.T, handler http.HandlerFunc) *GeminiGenerator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := gemini.NewClient("test-key", server.URL, "gemini-2.0-flash")
	require.NoError(t, err)
	return NewGeminiGenerator(client)
}

func TestGenerateMapsTextAndUsage(t *testing.T) {
	gen := adapterFor(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"candidates": [{"content": {"parts": [{"text": "TITLE: T\nSUMMARY:\nBody."}]}}],
			"usageMetadata": {"promptTokenCount": 9, "candidatesTokenCount": 4, "totalTokenCount": 13}
		}`))
	})

	out, err := gen.Generate(context.Background(), "prompt", domain.GenerationParams{Temperature: 0.3})
	require.NoError(t, err)
	require.Equal(t, "TITLE: T\nSUMMARY:\nBody.", out.Text)
	require.NotNil(t, out.Usage)
	require.Equal(t, 9, out.Usage.PromptTokens)
	require.Equal(t, 4, out.Usage.CompletionTokens)
}

func TestGenerateClassifiesRateLimitAsTransient(t *testing.T) {
	gen := adapterFor(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "quota exhausted", "status": "RESOURCE_EXHAUSTED"}}`))
	})

	_, err := gen.Generate(context.Background(), "prompt", domain.GenerationParams{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeBackendTransient))
	require.True(t, apperrors.IsRetryable(err))
}

func TestGenerateClassifiesClientErrorAsFatal(t *testing.T) {
	gen := adapterFor(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "invalid argument", "status": "INVALID_ARGUMENT"}}`))
	})

	_, err := gen.Generate(context.Background(), "prompt", domain.GenerationParams{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeBackendFatal))
	require.False(t, apperrors.IsRetryable(err))
}

func TestGenerateRejectsEmptyCandidates(t *testing.T) {
	gen := adapterFor(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})

	_, err := gen.Generate(context.Background(), "prompt", domain.GenerationParams{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeBackendFatal))
}

func TestEchoGeneratorProducesParseableOutput(t *testing.T) {
	out, err := EchoGenerator{}.Generate(context.Background(), "some prompt", domain.GenerationParams{})
	require.NoError(t, err)
	require.Contains(t, out.Text, "TITLE: Echo Summary")
	require.Contains(t, out.Text, "SUMMARY:")
}
