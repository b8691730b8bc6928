package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEmbedder counts calls and records the batches it receives.
type recordingEmbedder struct {
	batches [][]string
	fail    bool
}

func (r *recordingEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	if r.fail {
		return nil, errors.New("provider unavailable")
	}
	r.batches = append(r.batches, []string{text})
	return []float32{float32(len(text))}, nil
}

func (r *recordingEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	if r.fail {
		return nil, errors.New("provider unavailable")
	}
	batch := make([]string, len(texts))
	copy(batch, texts)
	r.batches = append(r.batches, batch)

	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t))}
	}
	return out, nil
}

func TestBatchEmbedder_SplitsIntoBatches(t *testing.T) {
	inner := &recordingEmbedder{}
	be, err := NewBatchEmbedder(inner, WithBatchDelay(0))
	require.NoError(t, err)

	texts := make([]string, 25)
	for i := range texts {
		texts[i] = fmt.Sprintf("chunk %d", i)
	}

	vectors, err := be.EmbedTexts(context.Background(), texts)
	require.NoError(t, err)
	assert.Len(t, vectors, 25)

	require.Len(t, inner.batches, 3)
	assert.Len(t, inner.batches[0], 10)
	assert.Len(t, inner.batches[1], 10)
	assert.Len(t, inner.batches[2], 5)

	// Order preservation across batch boundaries.
	assert.Equal(t, "chunk 0", inner.batches[0][0])
	assert.Equal(t, "chunk 10", inner.batches[1][0])
	assert.Equal(t, "chunk 24", inner.batches[2][4])
}

func TestBatchEmbedder_EmptyStringSubstitution(t *testing.T) {
	inner := &recordingEmbedder{}
	be, err := NewBatchEmbedder(inner, WithBatchDelay(0))
	require.NoError(t, err)

	_, err = be.EmbedTexts(context.Background(), []string{"a", "", "c"})
	require.NoError(t, err)

	require.Len(t, inner.batches, 1)
	assert.Equal(t, []string{"a", " ", "c"}, inner.batches[0])
}

func TestBatchEmbedder_ErrorPropagation(t *testing.T) {
	inner := &recordingEmbedder{fail: true}
	be, err := NewBatchEmbedder(inner, WithBatchDelay(0))
	require.NoError(t, err)

	_, err = be.EmbedTexts(context.Background(), []string{"a", "b"})
	require.Error(t, err)

	var embErr *EmbeddingError
	require.ErrorAs(t, err, &embErr)
	assert.Equal(t, 0, embErr.Batch)
}

func TestBatchEmbedder_EmptyInput(t *testing.T) {
	inner := &recordingEmbedder{}
	be, err := NewBatchEmbedder(inner, WithBatchDelay(0))
	require.NoError(t, err)

	vectors, err := be.EmbedTexts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
	assert.Empty(t, inner.batches)
}

func TestBatchEmbedder_ContextCancelledDuringDelay(t *testing.T) {
	inner := &recordingEmbedder{}
	be, err := NewBatchEmbedder(inner, WithBatchSize(1), WithBatchDelay(time.Minute))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err = be.EmbedTexts(ctx, []string{"a", "b"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, inner.batches, 1)
}

func TestBatchEmbedder_InvalidOptions(t *testing.T) {
	_, err := NewBatchEmbedder(&recordingEmbedder{}, WithBatchSize(0))
	assert.ErrorIs(t, err, ErrInvalidBatchSize)

	_, err = NewBatchEmbedder(nil)
	assert.Error(t, err)
}
