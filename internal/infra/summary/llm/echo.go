package llm

import (
	"context"

	domain "github.com/nextpdf/ai-service/internal/domain/summary"
)

// EchoGenerator is a lightweight fallback for local development without an
// API key: it answers with a fixed-shape summary instead of calling out.
type EchoGenerator struct{}

// Generate returns a canned structured response.
func (EchoGenerator) Generate(_ context.Context, prompt string, _ domain.GenerationParams) (domain.Generation, error) {
	preview := prompt
	if len(preview) > 120 {
		preview = preview[:120]
	}
	return domain.Generation{
		Text: "TITLE: Echo Summary\n\nSUMMARY:\n• Echo backend active; no generation performed.\n• Prompt preview: " + preview,
	}, nil
}

var _ domain.Generator = (EchoGenerator{})
