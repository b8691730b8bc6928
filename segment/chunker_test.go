package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/papyrus/core"
)

const paperText = `ABSTRACT

We present a study of sequence transduction models and report strong
results on two translation benchmarks. The model relies entirely on
attention mechanisms.

We further analyze the computational cost of the approach and compare
against recurrent and convolutional baselines.

INTRODUCTION

Sequence modeling has long been dominated by recurrent architectures.
These impose a sequential computation constraint that limits
parallelization within training examples.

Attention mechanisms relax this constraint by relating arbitrary
positions of the input and output directly.

METHODOLOGY

The encoder is composed of a stack of identical layers. Each layer has
a multi-head self-attention sublayer and a position-wise feed-forward
sublayer.

The decoder inserts a third sublayer performing attention over the
encoder output. Residual connections surround every sublayer.

RESULTS

On the WMT 2014 English-to-German task the model achieves a new state
of the art. Training takes a fraction of the cost of the best previous
models.

On English-to-French the model likewise outperforms all previously
published single models.

CONCLUSION

Attention-based models are a promising direction for sequence
transduction. Future work includes applying the approach to other
modalities.

We release our code to encourage further research.`

func TestChunkText_FiveSectionPaper(t *testing.T) {
	chunker, err := NewChunker()
	require.NoError(t, err)

	chunks, err := chunker.ChunkText(paperText, core.ID(7))
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	sections := make(map[int]string)
	flags := semanticFlags{}
	for _, c := range chunks {
		sections[c.SectionIndex] = c.SectionTitle
		flags.abstract = flags.abstract || c.IsAbstract
		flags.introduction = flags.introduction || c.IsIntroduction
		flags.methodology = flags.methodology || c.IsMethodology
		flags.results = flags.results || c.IsResults
		flags.conclusion = flags.conclusion || c.IsConclusion
		assert.Equal(t, core.ID(7), c.PaperId)
		assert.Equal(t, len(c.Text), c.Length)
	}

	assert.Len(t, sections, 5)
	assert.True(t, flags.abstract, "no chunk flagged as abstract")
	assert.True(t, flags.introduction, "no chunk flagged as introduction")
	assert.True(t, flags.methodology, "no chunk flagged as methodology")
	assert.True(t, flags.results, "no chunk flagged as results")
	assert.True(t, flags.conclusion, "no chunk flagged as conclusion")
}

func TestChunkText_NoHeadersFallsBackToSingleSection(t *testing.T) {
	chunker, err := NewChunker()
	require.NoError(t, err)

	chunks, err := chunker.ChunkText("just a short note with no headers at all.", core.ID(1))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Introduction", chunks[0].SectionTitle)
	assert.Equal(t, 0, chunks[0].SectionIndex)
	assert.Equal(t, 0, chunks[0].ChunkIndex)
}

func TestChunkText_Idempotent(t *testing.T) {
	chunker, err := NewChunker()
	require.NoError(t, err)

	first, err := chunker.ChunkText(paperText, core.ID(3))
	require.NoError(t, err)
	second, err := chunker.ChunkText(paperText, core.ID(3))
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].SectionIndex, second[i].SectionIndex)
		assert.Equal(t, first[i].ChunkIndex, second[i].ChunkIndex)
		assert.Equal(t, first[i].Text, second[i].Text)
	}
}

func TestChunkText_LengthBound(t *testing.T) {
	chunker, err := NewChunker(WithMaxChunkSize(200), WithOverlap(40))
	require.NoError(t, err)

	long := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 200)
	chunks, err := chunker.ChunkText(long, core.ID(1))
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for _, c := range chunks {
		assert.LessOrEqual(t, c.Length, 200+40, "chunk exceeds size bound: %d", c.Length)
	}
}

func TestChunkText_EmptyInput(t *testing.T) {
	chunker, err := NewChunker()
	require.NoError(t, err)

	_, err = chunker.ChunkText("   \n\n  ", core.ID(1))
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestChunkText_EmptySectionSkipped(t *testing.T) {
	chunker, err := NewChunker()
	require.NoError(t, err)

	text := "ABSTRACT\n\nRESULTS\n\nThe approach works well on every benchmark we tried."
	chunks, err := chunker.ChunkText(text, core.ID(1))
	require.NoError(t, err)

	for _, c := range chunks {
		assert.NotEqual(t, "ABSTRACT", c.SectionTitle, "empty section should be skipped")
		assert.NotEmpty(t, strings.TrimSpace(c.Text))
	}
}

func TestNewChunker_InvalidConfig(t *testing.T) {
	_, err := NewChunker(WithMaxChunkSize(0))
	assert.ErrorIs(t, err, ErrInvalidChunkSize)

	_, err = NewChunker(WithOverlap(-1))
	assert.ErrorIs(t, err, ErrInvalidChunkSize)

	_, err = NewChunker(WithMaxChunkSize(100), WithOverlap(100))
	assert.ErrorIs(t, err, ErrInvalidChunkSize)
}

func TestRegexDetector_NumberedHeadings(t *testing.T) {
	detector := NewRegexDetector()

	text := "1. Introduction\n\nOpening material here.\n\n2. Related Work\n\nPrior approaches are discussed."
	sections, err := detector.DetectSections(text)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "1. Introduction", sections[0].Title)
	assert.Equal(t, "2. Related Work", sections[1].Title)
}
