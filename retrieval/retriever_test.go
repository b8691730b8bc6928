package retrieval

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/papyrus/ai/mock"
	"github.com/poiesic/papyrus/core"
	storagebadger "github.com/poiesic/papyrus/storage/badger"
	"github.com/poiesic/papyrus/vector"
	"github.com/poiesic/papyrus/vector/local"
)

func newTestSetup(t *testing.T, dim int) (*mock.Embedder, *vector.Manager) {
	t.Helper()
	backend, err := storagebadger.OpenBackend("", true)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	provider, err := local.NewProvider(backend)
	require.NoError(t, err)

	manager, err := vector.NewManager(context.Background(), provider, "papers",
		vector.WithDimension(dim))
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	return mock.NewEmbedderWithDimension(dim), manager
}

func seedChunks(t *testing.T, embedder *mock.Embedder, manager *vector.Manager, namespace string, texts []string) {
	t.Helper()
	vectors, err := embedder.EmbedTexts(context.Background(), texts)
	require.NoError(t, err)

	records := make([]core.VectorRecord, len(texts))
	for i, text := range texts {
		records[i] = core.VectorRecord{
			Id:     fmt.Sprintf("%s:0:%d", namespace, i),
			Vector: vectors[i],
			Metadata: core.ChunkMetadata{
				ChunkIndex:  i,
				TextPreview: text,
			},
		}
	}
	require.NoError(t, manager.Upsert(context.Background(), namespace, records))
}

func TestRetriever_RetrieveByText(t *testing.T) {
	embedder, manager := newTestSetup(t, 64)
	retriever, err := NewRetriever(embedder, manager)
	require.NoError(t, err)

	texts := []string{
		"the encoder stacks self-attention layers",
		"results on the translation benchmark",
		"we discuss limitations of the approach",
	}
	seedChunks(t, embedder, manager, "7", texts)

	// The mock embedder is deterministic, so querying with an indexed
	// text must rank that text first.
	matches, err := retriever.Retrieve(context.Background(), texts[1], "7", 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, texts[1], matches[0].Text)
	assert.GreaterOrEqual(t, matches[0].Score, matches[1].Score)
}

func TestRetriever_RetrieveVectorPadsToIndexDimension(t *testing.T) {
	embedder, manager := newTestSetup(t, 64)
	retriever, err := NewRetriever(embedder, manager)
	require.NoError(t, err)

	seedChunks(t, embedder, manager, "7", []string{"some indexed chunk"})

	// A shorter query vector is zero-padded rather than rejected.
	short := []float32{0.5, 0.5}
	matches, err := retriever.RetrieveVector(context.Background(), short, "7", 5)
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	// A longer one is truncated.
	long := make([]float32, 128)
	long[0] = 1.0
	matches, err = retriever.RetrieveVector(context.Background(), long, "7", 5)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRetriever_NamespaceScoping(t *testing.T) {
	embedder, manager := newTestSetup(t, 64)
	retriever, err := NewRetriever(embedder, manager)
	require.NoError(t, err)

	seedChunks(t, embedder, manager, "a", []string{"alpha one", "alpha two"})
	seedChunks(t, embedder, manager, "b", []string{"beta one"})

	matches, err := retriever.Retrieve(context.Background(), "alpha one", "b", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "beta one", matches[0].Text)
}

func TestRetriever_EmbedFailure(t *testing.T) {
	embedder, manager := newTestSetup(t, 64)
	retriever, err := NewRetriever(embedder, manager)
	require.NoError(t, err)

	embedder.EmbedTextFunc = func(context.Context, string) ([]float32, error) {
		return nil, errors.New("provider down")
	}

	_, err = retriever.Retrieve(context.Background(), "anything", "7", 5)
	assert.Error(t, err)
}

func TestRetriever_InputValidation(t *testing.T) {
	embedder, manager := newTestSetup(t, 8)
	retriever, err := NewRetriever(embedder, manager)
	require.NoError(t, err)

	_, err = retriever.Retrieve(context.Background(), "", "7", 5)
	assert.Error(t, err)

	_, err = retriever.RetrieveVector(context.Background(), nil, "7", 5)
	assert.ErrorIs(t, err, vector.ErrEmptyVector)
}
