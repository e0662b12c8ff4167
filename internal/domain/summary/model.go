package summary

import (
	"time"

	"github.com/google/uuid"
)

// Style selects both the prompt template and the merge strategy.
type Style string

const (
	StyleBulletPoints Style = "bullet_points"
	StyleParagraph    Style = "paragraph"
	StyleDetailed     Style = "detailed"
	StyleExecutive    Style = "executive"
	StyleAcademic     Style = "academic"
)

// Known reports whether the style has a prompt table entry.
func (s Style) Known() bool {
	switch s {
	case StyleBulletPoints, StyleParagraph, StyleDetailed, StyleExecutive, StyleAcademic:
		return true
	}
	return false
}

// Language selects the prompt language instruction.
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguageIndonesian Language = "id"
)

// Request is the summarization payload handed to the pipeline.
type Request struct {
	Text               string   `json:"text"`
	Style              Style    `json:"style"`
	CustomInstructions string   `json:"custom_instructions,omitempty"`
	Language           Language `json:"language"`
}

// Result is the terminal output of one pipeline run.
type Result struct {
	Title            string `json:"title"`
	Content          string `json:"content"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
}

// Event is one entry in the append-only sequence a pipeline run emits.
// Exactly one of the fields is set: Log entries are advisory, and every run
// ends with either a single Result or a single Error event.
type Event struct {
	Log    string  `json:"log,omitempty"`
	Error  string  `json:"error,omitempty"`
	Result *Result `json:"result,omitempty"`
}

// Chunk is an ordered segment of the input document. Index order defines the
// merge order of partial summaries regardless of completion order.
type Chunk struct {
	Index      int
	Total      int
	Text       string
	TokenCount int
}

// GenerationParams are fixed per call type, never user-configurable.
type GenerationParams struct {
	Temperature     float32
	TopP            float32
	TopK            int
	MaxOutputTokens int
}

var (
	singleCallParams = GenerationParams{Temperature: 0.3, TopP: 0.95, TopK: 40, MaxOutputTokens: 2048}
	chunkCallParams  = GenerationParams{Temperature: 0.3, TopP: 0.95, TopK: 40, MaxOutputTokens: 1024}
	mergeCallParams  = GenerationParams{Temperature: 0.3, TopP: 0.95, TopK: 40, MaxOutputTokens: 2048}
)

// Task describes one queued summarization job.
type Task struct {
	JobID              uuid.UUID `json:"job_id"`
	StoragePath        string    `json:"storage_path"`
	MimeType           string    `json:"mime_type,omitempty"`
	Style              Style     `json:"style"`
	CustomInstructions string    `json:"custom_instructions,omitempty"`
	Language           Language  `json:"language"`
	CallbackURL        string    `json:"callback_url,omitempty"`
}

// JobStatus tracks the externally visible lifecycle of a task.
type JobStatus string

const (
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// StatusUpdate is delivered to the result sink as a job progresses.
// CallbackURL overrides the sink's default delivery target when the job was
// submitted with its own callback; it never travels on the wire.
type StatusUpdate struct {
	JobID       uuid.UUID `json:"job_id"`
	Status      JobStatus `json:"status"`
	Log         string    `json:"log,omitempty"`
	Error       string    `json:"error,omitempty"`
	Result      *Result   `json:"result,omitempty"`
	CallbackURL string    `json:"-"`
}

// SummaryRecord is the persisted form of a completed run.
type SummaryRecord struct {
	ID               uuid.UUID
	JobID            uuid.UUID
	Title            string
	Content          string
	Style            Style
	Language         Language
	PromptTokens     int
	CompletionTokens int
	DurationMs       int64
	CreatedAt        time.Time
}

// StyleInfo describes one catalog entry returned by the styles endpoint.
type StyleInfo struct {
	ID            Style  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	ExampleOutput string `json:"example_output"`
}

// StyleCatalog lists the selectable summary styles.
func StyleCatalog() []StyleInfo {
	return []StyleInfo{
		{
			ID:            StyleBulletPoints,
			Name:          "Bullet Points",
			Description:   "Concise bullet-point format highlighting key information",
			ExampleOutput: "• Key finding 1\n• Key finding 2\n• Key finding 3",
		},
		{
			ID:            StyleParagraph,
			Name:          "Paragraph",
			Description:   "Flowing paragraph narrative for easy reading",
			ExampleOutput: "This document discusses... The main points include...",
		},
		{
			ID:            StyleDetailed,
			Name:          "Detailed Analysis",
			Description:   "Comprehensive detailed analysis with sections",
			ExampleOutput: "## Overview\n...\n## Key Findings\n...\n## Methodology\n...",
		},
		{
			ID:            StyleExecutive,
			Name:          "Executive Summary",
			Description:   "Brief executive summary with key takeaways for quick decisions",
			ExampleOutput: "**Bottom Line:** ...\n**Key Takeaways:**\n1. ...\n2. ...",
		},
		{
			ID:            StyleAcademic,
			Name:          "Academic Style",
			Description:   "Academic/research style with structured sections",
			ExampleOutput: "**Abstract:** ...\n**Methods:** ...\n**Results:** ...\n**Conclusion:** ...",
		},
	}
}
