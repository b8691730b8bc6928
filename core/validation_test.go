package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validPaper() *Paper {
	return &Paper{
		Id:     IDFromContent("test"),
		Source: "https://example.org/paper.txt",
		Status: StatusProcessing,
		Stage:  StageSubmitted,
	}
}

func TestValidatePaper(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidatePaper(validPaper()))
	})

	t.Run("nil", func(t *testing.T) {
		err := ValidatePaper(nil)
		assert.ErrorIs(t, err, ErrInvalidPaper)
	})

	t.Run("empty source", func(t *testing.T) {
		paper := validPaper()
		paper.Source = ""
		err := ValidatePaper(paper)
		assert.ErrorIs(t, err, ErrInvalidPaper)
		assert.ErrorIs(t, err, ErrEmptySource)
	})

	t.Run("bad status", func(t *testing.T) {
		paper := validPaper()
		paper.Status = PaperStatus(42)
		err := ValidatePaper(paper)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("bad stage", func(t *testing.T) {
		paper := validPaper()
		paper.Stage = ProcessingStage(42)
		err := ValidatePaper(paper)
		assert.ErrorIs(t, err, ErrInvalidStage)
	})
}

func TestValidateChunk(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateChunk(&Chunk{Text: "body", SectionIndex: 0, ChunkIndex: 0})
		assert.NoError(t, err)
	})

	t.Run("nil", func(t *testing.T) {
		assert.ErrorIs(t, ValidateChunk(nil), ErrInvalidChunk)
	})

	t.Run("empty text", func(t *testing.T) {
		err := ValidateChunk(&Chunk{})
		assert.ErrorIs(t, err, ErrEmptyChunkText)
	})

	t.Run("negative index", func(t *testing.T) {
		err := ValidateChunk(&Chunk{Text: "x", SectionIndex: -1})
		assert.ErrorIs(t, err, ErrNegativeChunkIndex)
	})
}

func TestValidateIndexDescriptor(t *testing.T) {
	assert.NoError(t, ValidateIndexDescriptor(IndexDescriptor{Name: "papers", Dimension: 384, Metric: MetricCosine}))
	assert.Error(t, ValidateIndexDescriptor(IndexDescriptor{Name: "", Dimension: 384}))
	assert.ErrorIs(t, ValidateIndexDescriptor(IndexDescriptor{Name: "papers"}), ErrInvalidDimension)
}
