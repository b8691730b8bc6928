package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("https://arxiv.org/abs/1706.03762")
		b := IDFromContent("https://arxiv.org/abs/1706.03762")
		assert.Equal(t, a, b)
	})

	t.Run("different content different id", func(t *testing.T) {
		a := IDFromContent("https://arxiv.org/abs/1706.03762")
		b := IDFromContent("https://arxiv.org/abs/1810.04805")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty content", func(t *testing.T) {
		a := IDFromContent("")
		b := IDFromContent("")
		assert.Equal(t, a, b)
	})
}

func TestChunkVectorID(t *testing.T) {
	chunk := &Chunk{PaperId: 42, SectionIndex: 3, ChunkIndex: 7}
	assert.Equal(t, "42:3:7", chunk.VectorID())

	// Identity is stable: same indices, same ID.
	again := &Chunk{PaperId: 42, SectionIndex: 3, ChunkIndex: 7, Text: "different"}
	assert.Equal(t, chunk.VectorID(), again.VectorID())
}

func TestChunkMetadata(t *testing.T) {
	t.Run("copies fields", func(t *testing.T) {
		chunk := &Chunk{
			Text:         "some body text",
			PaperId:      9,
			SectionTitle: "RESULTS",
			SectionIndex: 4,
			ChunkIndex:   1,
			Length:       14,
			IsResults:    true,
		}
		md := chunk.Metadata()
		assert.Equal(t, ID(9), md.PaperId)
		assert.Equal(t, "RESULTS", md.SectionTitle)
		assert.Equal(t, 4, md.SectionIndex)
		assert.Equal(t, 1, md.ChunkIndex)
		assert.Equal(t, "some body text", md.TextPreview)
		assert.True(t, md.IsResults)
		assert.False(t, md.IsAbstract)
	})

	t.Run("preview is bounded", func(t *testing.T) {
		long := make([]byte, 5000)
		for i := range long {
			long[i] = 'a'
		}
		chunk := &Chunk{Text: string(long), Length: len(long)}
		md := chunk.Metadata()
		assert.Len(t, md.TextPreview, previewLength)
	})
}

func TestPaperNamespace(t *testing.T) {
	paper := &Paper{Id: 1234}
	assert.Equal(t, "1234", paper.Namespace())
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "extracting_text", StageExtractingText.String())
	assert.Equal(t, "text_extracted", StageTextExtracted.String())
	assert.Equal(t, "stage(99)", ProcessingStage(99).String())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "processing", StatusProcessing.String())
	assert.Equal(t, "partial", StatusPartial.String())
	assert.Equal(t, "status(0)", PaperStatus(0).String())
}
