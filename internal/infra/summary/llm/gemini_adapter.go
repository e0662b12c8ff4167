package llm

import (
	"context"
	"errors"
	"net"

	domain "github.com/nextpdf/ai-service/internal/domain/summary"
	"github.com/nextpdf/ai-service/internal/infra/llm/gemini"
	apperrors "github.com/nextpdf/ai-service/pkg/errors"
	"github.com/nextpdf/ai-service/pkg/metrics"
)

// GeminiGenerator adapts the Gemini client to the summary domain, tagging
// failures as transient or fatal so the retry policy can classify them
// without parsing message text.
type GeminiGenerator struct {
	client *gemini.Client
}

// NewGeminiGenerator constructs the adapter.
func NewGeminiGenerator(client *gemini.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

// Generate performs one generation call.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, params domain.GenerationParams) (domain.Generation, error) {
	resp, err := g.client.GenerateContent(ctx, gemini.GenerateRequest{
		Contents: []gemini.Content{
			{Role: "user", Parts: []gemini.Part{{Text: prompt}}},
		},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:     params.Temperature,
			TopP:            params.TopP,
			TopK:            params.TopK,
			MaxOutputTokens: params.MaxOutputTokens,
		},
	})
	if err != nil {
		return domain.Generation{}, classify(err)
	}

	text := resp.Text()
	if text == "" {
		return domain.Generation{}, apperrors.Wrap(apperrors.CodeBackendFatal, "gemini returned no candidates", nil)
	}

	gen := domain.Generation{Text: text}
	if resp.UsageMetadata != nil {
		gen.Usage = &metrics.TokenUsage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
	}
	return gen, nil
}

func classify(err error) error {
	var apiErr *gemini.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Retryable() {
			return apperrors.Wrap(apperrors.CodeBackendTransient, "gemini request rate limited or unavailable", err)
		}
		return apperrors.Wrap(apperrors.CodeBackendFatal, "gemini request rejected", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.Wrap(apperrors.CodeBackendTransient, "gemini request timed out", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.CodeBackendTransient, "gemini request timed out", err)
	}
	return apperrors.Wrap(apperrors.CodeBackendFatal, "gemini request failed", err)
}

var _ domain.Generator = (*GeminiGenerator)(nil)
