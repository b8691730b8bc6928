// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder,
// ai.MetadataExtractor, ai.Summarizer, and ai.Provider for use in unit
// tests. The mocks allow tests to run without external AI service
// dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewProvider()
//	vectors, err := provider.Embedder().EmbedTexts(ctx, texts)
//
//	// Custom behavior injection
//	embedder := mock.NewEmbedder()
//	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    return nil, errors.New("provider down")
//	}
//
//	// Check call counts
//	count := embedder.CallCount()
//
// # Default Behavior
//
//   - Embedder: returns deterministic unit vectors based on text hash,
//     at a configurable dimension (default 384)
//   - MetadataExtractor: returns a fixed metadata record derived from
//     the text's first line
//   - Summarizer: returns truncated input text per level
package mock
