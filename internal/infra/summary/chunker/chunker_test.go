package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkEmptyInput(t *testing.T) {
	c := New(8000, 200)
	require.Nil(t, c.Chunk(""))
}

func TestChunkReturnsInputWithinBudget(t *testing.T) {
	c := New(8000, 200)
	text := strings.Repeat("Short paragraph. ", 100)
	chunks := c.Chunk(text)
	require.Equal(t, []string{text}, chunks)
}

func TestChunkRespectsBudgetOnLargeInput(t *testing.T) {
	c := New(8000, 200)

	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString(strings.Repeat("The quarterly review covered revenue, churn and hiring. ", 8))
		b.WriteString("\n\n")
	}
	text := b.String()
	require.Greater(t, len(text), 25000)

	chunks := c.Chunk(text)
	require.Greater(t, len(chunks), 1)
	for i, chunk := range chunks {
		require.LessOrEqual(t, len(chunk), 8000, "chunk %d exceeds budget", i)
		require.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestChunkSeedsOverlapAcrossBoundaries(t *testing.T) {
	c := New(1000, 200)

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString(strings.Repeat("Sentence with enough words to matter here. ", 5))
		b.WriteString("\n\n")
	}

	chunks := c.Chunk(b.String())
	require.Greater(t, len(chunks), 1)
	for i := 1; i < len(chunks); i++ {
		// Each chunk opens with tail content carried over from its
		// predecessor.
		head := chunks[i]
		if len(head) > 40 {
			head = head[:40]
		}
		require.Contains(t, chunks[i-1], strings.TrimSpace(head), "chunk %d does not continue chunk %d", i, i-1)
	}
}

func TestChunkForceSplitsUnbrokenText(t *testing.T) {
	c := New(8000, 200)
	text := strings.Repeat("x", 20000)

	chunks := c.Chunk(text)
	// Windows of 8000 advancing by 7800: [0,8000) [7800,15600) [15600,20000).
	require.Len(t, chunks, 3)
	require.Equal(t, text[:8000], chunks[0])
	require.Equal(t, text[7800:15600], chunks[1])
	require.Equal(t, text[15600:], chunks[2])
}

func TestChunkSplitsOversizedParagraphAtSentences(t *testing.T) {
	c := New(500, 100)
	para := strings.Repeat("Each sentence here is modest in size and ends cleanly. ", 30)

	chunks := c.Chunk(para)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		require.LessOrEqual(t, len(chunk), 500)
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	c := New(0, -1)
	require.Equal(t, 8000, c.MaxChunkSize)
	require.Equal(t, 200, c.OverlapSize)

	// Overlap must stay below the chunk budget.
	c = New(100, 100)
	require.Equal(t, 25, c.OverlapSize)
}
