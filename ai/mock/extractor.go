package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/papyrus/ai"
)

// MetadataExtractor is a test double for ai.MetadataExtractor.
// It allows custom behavior injection via function fields.
type MetadataExtractor struct {
	// ExtractMetadataFunc is called by ExtractMetadata if set.
	// If nil, uses default first-line heuristics.
	ExtractMetadataFunc func(ctx context.Context, text string) (*ai.PaperMetadata, error)

	mu        sync.Mutex
	callCount int
}

// NewMetadataExtractor creates a mock metadata extractor with default
// behavior. Returns the concrete type for test assertions.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata returns mock metadata derived from the text.
// Default behavior: the first non-empty line becomes the title, the
// authors list is fixed, and the abstract is a truncated copy of the text.
func (m *MetadataExtractor) ExtractMetadata(ctx context.Context, text string) (*ai.PaperMetadata, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.ExtractMetadataFunc != nil {
		return m.ExtractMetadataFunc(ctx, text)
	}

	title := ""
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			title = line
			break
		}
	}

	abstract := strings.TrimSpace(text)
	if len(abstract) > 200 {
		abstract = abstract[:200]
	}

	return &ai.PaperMetadata{
		Title:    title,
		Authors:  []string{"Test Author"},
		Abstract: abstract,
	}, nil
}

// CallCount returns the number of times ExtractMetadata was called.
func (m *MetadataExtractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MetadataExtractor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.ExtractMetadataFunc = nil
}
