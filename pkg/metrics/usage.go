package metrics

import "sync/atomic"

// TokenUsage captures LLM token counts used to satisfy a request.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// IsZero reports whether usage data is absent.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0
}

// Accountant is a running total of token usage shared by every generation
// call in one pipeline run. Increments are atomic; concurrent chunk workers
// add to it directly. It only grows and is never reset mid-run.
type Accountant struct {
	prompt     atomic.Int64
	completion atomic.Int64
}

// NewAccountant constructs an empty accountant.
func NewAccountant() *Accountant {
	return &Accountant{}
}

// AddPrompt records prompt-side tokens.
func (a *Accountant) AddPrompt(n int) {
	if n > 0 {
		a.prompt.Add(int64(n))
	}
}

// AddCompletion records completion-side tokens.
func (a *Accountant) AddCompletion(n int) {
	if n > 0 {
		a.completion.Add(int64(n))
	}
}

// Snapshot returns the current totals.
func (a *Accountant) Snapshot() TokenUsage {
	prompt := int(a.prompt.Load())
	completion := int(a.completion.Load())
	return TokenUsage{
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      prompt + completion,
	}
}

// EstimateTokens approximates a token count from text length when the
// backend does not report usage. Four characters per token tracks the
// published averages for English prose closely enough for billing logs.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 2) / 4
}
