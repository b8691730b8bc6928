package mock

import (
	"context"
	"sync"
)

// Summarizer is a test double for ai.Summarizer.
// It allows custom behavior injection via function fields.
type Summarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, uses default truncation behavior.
	SummarizeFunc func(ctx context.Context, text string, levels []string) (map[string]string, error)

	mu        sync.Mutex
	callCount int
}

// NewSummarizer creates a mock summarizer with default behavior.
// Returns the concrete type for test assertions.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize returns a truncated copy of the input per level.
func (m *Summarizer) Summarize(ctx context.Context, text string, levels []string) (map[string]string, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text, levels)
	}

	summary := text
	if len(summary) > 100 {
		summary = summary[:100]
	}

	summaries := make(map[string]string, len(levels))
	for _, level := range levels {
		summaries[level] = summary
	}
	return summaries, nil
}

// CallCount returns the number of times Summarize was called.
func (m *Summarizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *Summarizer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.SummarizeFunc = nil
}
