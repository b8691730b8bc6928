package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings.
	// The returned slice contains embeddings in the same order as the
	// input texts and has the same length.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// MetadataExtractor pulls bibliographic metadata out of raw paper text.
// Implementations must be thread-safe for concurrent use.
type MetadataExtractor interface {
	// ExtractMetadata analyzes the opening portion of a paper's text and
	// returns its title, authors, and abstract. Fields the model cannot
	// determine are left empty rather than causing an error.
	ExtractMetadata(ctx context.Context, text string) (*PaperMetadata, error)
}

// Summarizer produces reader-facing summaries of a paper.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize generates summaries of the text at each requested
	// detail level. The returned map is keyed by level name.
	Summarize(ctx context.Context, text string, levels []string) (map[string]string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. Services returned by a provider share
// configuration and underlying clients.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// MetadataExtractor returns the metadata extraction service.
	MetadataExtractor() MetadataExtractor

	// Summarizer returns the summarization service.
	Summarizer() Summarizer

	// Close releases resources held by the provider and its services.
	Close() error
}
