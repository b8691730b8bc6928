package ingest

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// TextExtractor turns an acquired payload into plain text.
type TextExtractor interface {
	// Extract returns the text content of data.
	// Returns ErrNoExtractableText when data holds no usable text.
	Extract(ctx context.Context, data []byte) (string, error)
}

// PlainTextExtractor treats the payload as UTF-8 text. Payloads that
// are mostly binary are rejected rather than passed downstream as
// garbage.
type PlainTextExtractor struct{}

// NewPlainTextExtractor creates the default extractor.
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

var _ TextExtractor = (*PlainTextExtractor)(nil)

// Extract validates and returns the payload as text.
func (e *PlainTextExtractor) Extract(_ context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoExtractableText
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: payload is not valid UTF-8 text", ErrNoExtractableText)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", ErrNoExtractableText
	}
	return text, nil
}
