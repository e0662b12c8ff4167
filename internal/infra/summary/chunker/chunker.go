package chunker

import (
	"regexp"
	"strings"

	domain "github.com/nextpdf/ai-service/internal/domain/summary"
)

const (
	defaultMaxChunkSize = 8000
	defaultOverlapSize  = 200
	paragraphSeparator  = "\n\n"
)

// sentenceEndRe marks a sentence boundary: terminal punctuation followed by
// whitespace. Splits happen after the punctuation.
var sentenceEndRe = regexp.MustCompile(`[.!?]\s+`)

// TextChunker splits a text blob into an ordered sequence of bounded-size,
// overlapping segments. It prefers paragraph boundaries, then sentence
// boundaries, and force-splits only when a single sentence exceeds the
// budget. No produced chunk ever exceeds MaxChunkSize.
type TextChunker struct {
	MaxChunkSize int
	OverlapSize  int
}

// New constructs a chunker with defaults matching the pipeline tuning.
func New(maxChunkSize, overlapSize int) *TextChunker {
	if maxChunkSize <= 0 {
		maxChunkSize = defaultMaxChunkSize
	}
	if overlapSize < 0 || overlapSize >= maxChunkSize {
		overlapSize = defaultOverlapSize
		if overlapSize >= maxChunkSize {
			overlapSize = maxChunkSize / 4
		}
	}
	return &TextChunker{MaxChunkSize: maxChunkSize, OverlapSize: overlapSize}
}

// Chunk splits text into ordered chunks. Empty input yields nothing; input
// within the budget comes back unchanged as a single chunk.
func (c *TextChunker) Chunk(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= c.MaxChunkSize {
		return []string{text}
	}

	var (
		chunks  []string
		current string
	)
	flush := func() {
		if trimmed := strings.TrimSpace(current); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
		current = ""
	}

	for _, para := range splitParagraphs(text) {
		if len(para) > c.MaxChunkSize {
			flush()
			chunks = append(chunks, c.splitLargeParagraph(para)...)
			continue
		}

		test := para
		if current != "" {
			test = current + paragraphSeparator + para
		}
		if len(test) <= c.MaxChunkSize {
			current = test
			continue
		}

		closed := current
		flush()
		current = c.seedOverlap(closed, para, paragraphSeparator)
	}
	flush()
	return chunks
}

func splitParagraphs(text string) []string {
	parts := strings.Split(text, paragraphSeparator)
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitLargeParagraph splits an oversized paragraph at sentence boundaries
// with the same greedy-accumulate-with-overlap rule, force-splitting single
// sentences that still exceed the budget into fixed-size windows.
func (c *TextChunker) splitLargeParagraph(paragraph string) []string {
	var (
		chunks  []string
		current string
	)
	flush := func() {
		if trimmed := strings.TrimSpace(current); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
		current = ""
	}

	for _, sentence := range splitSentences(paragraph) {
		if len(sentence) > c.MaxChunkSize {
			flush()
			chunks = append(chunks, c.forceSplit(sentence)...)
			continue
		}

		test := sentence
		if current != "" {
			test = current + " " + sentence
		}
		if len(test) <= c.MaxChunkSize {
			current = test
			continue
		}

		closed := current
		flush()
		current = c.seedOverlap(closed, sentence, " ")
	}
	flush()
	return chunks
}

func splitSentences(paragraph string) []string {
	matches := sentenceEndRe.FindAllStringIndex(paragraph, -1)
	if len(matches) == 0 {
		return []string{paragraph}
	}
	var sentences []string
	prev := 0
	for _, m := range matches {
		// The boundary sits right after the punctuation character.
		sentences = append(sentences, paragraph[prev:m[0]+1])
		prev = m[1]
	}
	if prev < len(paragraph) {
		sentences = append(sentences, paragraph[prev:])
	}
	return sentences
}

// forceSplit cuts a sentence into windows of MaxChunkSize advancing by
// MaxChunkSize-OverlapSize, so consecutive windows share OverlapSize chars.
func (c *TextChunker) forceSplit(sentence string) []string {
	stride := c.MaxChunkSize - c.OverlapSize
	var chunks []string
	for i := 0; i < len(sentence); i += stride {
		end := i + c.MaxChunkSize
		if end > len(sentence) {
			end = len(sentence)
		}
		chunks = append(chunks, sentence[i:end])
	}
	return chunks
}

// seedOverlap starts the next chunk with the tail of the closed one so
// context survives the cut. The overlap is skipped when it would push the
// combined seed past the budget.
func (c *TextChunker) seedOverlap(closed, next, sep string) string {
	overlap := c.overlapTail(closed)
	if overlap == "" || len(overlap)+len(sep)+len(next) > c.MaxChunkSize {
		return next
	}
	return overlap + sep + next
}

// overlapTail takes up to OverlapSize trailing characters of text, trimmed
// backward to the nearest sentence boundary, else the nearest word boundary,
// else a raw character cut.
func (c *TextChunker) overlapTail(text string) string {
	if text == "" || len(text) < c.OverlapSize {
		return ""
	}
	tail := text[len(text)-c.OverlapSize:]

	if idx := strings.LastIndex(tail, ". "); idx > 0 {
		return tail[idx+2:]
	}
	if idx := strings.LastIndex(tail, " "); idx > 0 {
		return tail[idx+1:]
	}
	return tail
}

var _ domain.Chunker = (*TextChunker)(nil)
