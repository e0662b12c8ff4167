package extract

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"

	domain "github.com/nextpdf/ai-service/internal/domain/summary"
	apperrors "github.com/nextpdf/ai-service/pkg/errors"
)

var pdfMagic = []byte("%PDF-")

// PlainTextExtractor handles payloads that are already text. Binary source
// formats are converted upstream before the task reaches this service; a
// PDF that slips through is rejected rather than summarized as mojibake.
type PlainTextExtractor struct{}

// NewPlainTextExtractor constructs the extractor.
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// Extract validates and returns the text content of data.
func (PlainTextExtractor) Extract(_ context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", apperrors.Wrap(apperrors.CodeExtractError, "source document is empty", nil)
	}
	if bytes.HasPrefix(data, pdfMagic) || strings.EqualFold(mimeType, "application/pdf") {
		return "", apperrors.Wrap(apperrors.CodeExtractError, "pdf payloads must be converted to text upstream", nil)
	}
	if !utf8.Valid(data) {
		return "", apperrors.Wrap(apperrors.CodeExtractError, "source document is not valid UTF-8 text", nil)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", apperrors.Wrap(apperrors.CodeExtractError, "no text extracted from source document", nil)
	}
	return text, nil
}

var _ domain.TextExtractor = (*PlainTextExtractor)(nil)
