package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/papyrus/ai"
	"github.com/poiesic/papyrus/ai/mock"
	"github.com/poiesic/papyrus/core"
	"github.com/poiesic/papyrus/storage"
	storagebadger "github.com/poiesic/papyrus/storage/badger"
	"github.com/poiesic/papyrus/vector"
	"github.com/poiesic/papyrus/vector/local"
)

const testPaperText = `ABSTRACT

We present a study of attention-based sequence transduction and report
strong results on two machine translation benchmarks.

INTRODUCTION

Recurrent architectures impose a sequential computation constraint.
Attention mechanisms relax this constraint entirely.

METHODOLOGY

The encoder stacks identical layers of multi-head self-attention and
position-wise feed-forward sublayers.

RESULTS

The model sets a new state of the art on English-to-German translation
at a fraction of the previous training cost.

CONCLUSION

Attention-based models are a promising direction for future work.`

// stubAcquirer returns canned bytes instead of touching the network.
type stubAcquirer struct {
	data []byte
	err  error
}

func (s *stubAcquirer) Acquire(context.Context, string) ([]byte, error) {
	return s.data, s.err
}

// flakyRepo wraps a PaperRepository and fails UpdatePaper while
// failUpdate returns true.
type flakyRepo struct {
	storage.PaperRepository
	failUpdate func(paper *core.Paper) bool
}

func (f *flakyRepo) UpdatePaper(ctx context.Context, paper *core.Paper) (*core.Paper, error) {
	if f.failUpdate != nil && f.failUpdate(paper) {
		return nil, errors.New("simulated storage failure")
	}
	return f.PaperRepository.UpdatePaper(ctx, paper)
}

type testEnv struct {
	repo     storage.PaperRepository
	manager  *vector.Manager
	embedder *mock.Embedder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo, backend, err := storagebadger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	provider, err := local.NewProvider(backend)
	require.NoError(t, err)

	embedder := mock.NewEmbedderWithDimension(64)
	manager, err := vector.NewManager(context.Background(), provider, "papers",
		vector.WithDimension(64))
	require.NoError(t, err)

	return &testEnv{repo: repo, manager: manager, embedder: embedder}
}

func newTestPipeline(t *testing.T, env *testEnv, opts ...Option) *Pipeline {
	t.Helper()
	batched, err := ai.NewBatchEmbedder(env.embedder, ai.WithBatchDelay(0))
	require.NoError(t, err)

	opts = append([]Option{
		WithAcquirer(&stubAcquirer{data: []byte(testPaperText)}),
		WithPoolSize(2),
	}, opts...)

	pipeline, err := NewPipeline(env.repo, batched, env.manager, opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)
	return pipeline
}

func TestPipeline_ProcessCompletes(t *testing.T) {
	env := newTestEnv(t)
	pipeline := newTestPipeline(t, env,
		WithMetadataExtractor(mock.NewMetadataExtractor()),
		WithSummarizer(mock.NewSummarizer()),
	)

	paper, err := pipeline.Process(context.Background(), "https://arxiv.org/abs/1706.03762", []string{"ml"})
	require.NoError(t, err)

	assert.Equal(t, core.StatusCompleted, paper.Status)
	assert.Equal(t, core.StageCompleted, paper.Stage)
	assert.Empty(t, paper.ErrorMessage)
	assert.Greater(t, paper.ChunkCount, 0)
	assert.NotEmpty(t, paper.RawText)
	assert.NotEmpty(t, paper.Title)
	assert.NotEmpty(t, paper.Summaries)
	assert.Contains(t, paper.Tags, "ml")

	// Vectors are queryable under the paper's namespace.
	query, err := env.embedder.EmbedText(context.Background(), "attention mechanisms")
	require.NoError(t, err)
	matches, err := env.manager.Query(context.Background(), paper.Namespace(), query, 5)
	require.NoError(t, err)
	assert.NotEmpty(t, matches)
}

func TestPipeline_AcquisitionFailureIsEssential(t *testing.T) {
	env := newTestEnv(t)
	pipeline := newTestPipeline(t, env,
		WithAcquirer(&stubAcquirer{err: errors.New("connection refused")}),
	)

	paper, err := pipeline.Process(context.Background(), "https://example.org/gone.pdf", nil)
	require.Error(t, err)
	require.NotNil(t, paper)

	assert.Equal(t, core.StatusError, paper.Status)
	assert.Equal(t, core.StageSubmitted, paper.Stage)
	assert.Contains(t, paper.ErrorMessage, "connection refused")
}

func TestPipeline_NoExtractableTextIsEssential(t *testing.T) {
	env := newTestEnv(t)
	pipeline := newTestPipeline(t, env,
		WithAcquirer(&stubAcquirer{data: []byte{0xff, 0xfe, 0x00, 0x01}}),
	)

	paper, err := pipeline.Process(context.Background(), "https://example.org/binary.bin", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoExtractableText)

	// The stage stays at the last completed value and no vectors were
	// written.
	assert.Equal(t, core.StatusError, paper.Status)
	assert.Equal(t, core.StageDownloading, paper.Stage)
	assert.NotEmpty(t, paper.ErrorMessage)

	matches, err := env.manager.Query(context.Background(), paper.Namespace(),
		make([]float32, 64), 10)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestPipeline_MetadataFailureIsNonEssential(t *testing.T) {
	env := newTestEnv(t)

	extractor := mock.NewMetadataExtractor()
	extractor.ExtractMetadataFunc = func(context.Context, string) (*ai.PaperMetadata, error) {
		return nil, errors.New("model overloaded")
	}

	pipeline := newTestPipeline(t, env, WithMetadataExtractor(extractor))

	paper, err := pipeline.Process(context.Background(), "https://arxiv.org/abs/1706.03762", nil)
	require.NoError(t, err)

	assert.Equal(t, core.StatusCompleted, paper.Status)
	assert.Equal(t, core.StageCompleted, paper.Stage)
	assert.NotEqual(t, core.StageExtractingMetadata, paper.Stage,
		"paper must not be stuck at the failed stage")
	assert.Contains(t, paper.Tags, TagMetadataExtractionFailed)
	assert.Greater(t, paper.ChunkCount, 0)
}

func TestPipeline_RawTextLadderSanitizes(t *testing.T) {
	env := newTestEnv(t)

	// Verbatim persistence fails; the sanitized retry succeeds.
	dirty := testPaperText + "\x00\x01"
	repo := &flakyRepo{
		PaperRepository: env.repo,
		failUpdate: func(p *core.Paper) bool {
			return strings.Contains(p.RawText, "\x00")
		},
	}
	env.repo = repo

	pipeline := newTestPipeline(t, env,
		WithAcquirer(&stubAcquirer{data: []byte(dirty)}),
	)

	paper, err := pipeline.Process(context.Background(), "https://example.org/dirty.txt", nil)
	require.NoError(t, err)

	assert.Equal(t, core.StatusCompleted, paper.Status)
	assert.NotEmpty(t, paper.RawText)
	assert.NotContains(t, paper.RawText, "\x00")
}

func TestPipeline_RawTextLadderDropsAndMarksPartial(t *testing.T) {
	env := newTestEnv(t)

	// Any update carrying raw text fails; only the dropped step can
	// succeed.
	repo := &flakyRepo{
		PaperRepository: env.repo,
		failUpdate: func(p *core.Paper) bool {
			return p.RawText != ""
		},
	}
	env.repo = repo

	pipeline := newTestPipeline(t, env)

	paper, err := pipeline.Process(context.Background(), "https://example.org/cursed.txt", nil)
	require.NoError(t, err)

	assert.Equal(t, core.StatusPartial, paper.Status)
	assert.Equal(t, core.StageCompleted, paper.Stage)
	assert.Empty(t, paper.RawText)
	assert.Contains(t, paper.Tags, TagRawTextDropped)

	// Chunking still ran from the in-memory text.
	assert.Greater(t, paper.ChunkCount, 0)
}

func TestPipeline_EmbeddingFailureIsEssential(t *testing.T) {
	env := newTestEnv(t)
	env.embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
		return nil, errors.New("embedding provider down")
	}

	pipeline := newTestPipeline(t, env)

	paper, err := pipeline.Process(context.Background(), "https://example.org/paper.txt", nil)
	require.Error(t, err)

	var embErr *ai.EmbeddingError
	assert.ErrorAs(t, err, &embErr)
	assert.Equal(t, core.StatusError, paper.Status)
	assert.Equal(t, core.StageSummarizing, paper.Stage)
}

func TestPipeline_SubmitProcessesInBackground(t *testing.T) {
	env := newTestEnv(t)
	pipeline := newTestPipeline(t, env)

	submitted, err := pipeline.Submit(context.Background(), "https://example.org/async.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, core.StatusProcessing, submitted.Status)
	assert.Equal(t, core.StageSubmitted, submitted.Stage)

	require.Eventually(t, func() bool {
		paper, err := env.repo.GetPaper(context.Background(), submitted.Id)
		if err != nil {
			return false
		}
		return paper.Status == core.StatusCompleted
	}, 5*time.Second, 20*time.Millisecond)
}

func TestPipeline_ReingestionOverwritesVectors(t *testing.T) {
	env := newTestEnv(t)
	pipeline := newTestPipeline(t, env)

	first, err := pipeline.Process(context.Background(), "https://example.org/paper.txt", nil)
	require.NoError(t, err)

	second, err := pipeline.Process(context.Background(), "https://example.org/paper.txt", nil)
	require.NoError(t, err)

	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, first.ChunkCount, second.ChunkCount)

	// Identical chunk identity means the namespace holds one record
	// per chunk, not two.
	matches, err := env.manager.Query(context.Background(), second.Namespace(),
		mock.DeterministicVector("probe", 64), 1000)
	require.NoError(t, err)
	assert.Len(t, matches, second.ChunkCount)
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello world", SanitizeText("hello\x00 world\x07"))
	assert.Equal(t, "line\nbreak\ttab", SanitizeText("line\nbreak\ttab"))

	long := strings.Repeat("a", maxRawTextLength+100)
	assert.Len(t, SanitizeText(long), maxRawTextLength)
}

func TestSourceAcquirer_UnsupportedScheme(t *testing.T) {
	a := NewSourceAcquirer()
	_, err := a.Acquire(context.Background(), "ftp://example.org/p.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}

func TestPlainTextExtractor(t *testing.T) {
	e := NewPlainTextExtractor()

	text, err := e.Extract(context.Background(), []byte("  some text  "))
	require.NoError(t, err)
	assert.Equal(t, "some text", text)

	_, err = e.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoExtractableText)

	_, err = e.Extract(context.Background(), []byte{0xff, 0xfe})
	assert.ErrorIs(t, err, ErrNoExtractableText)
}
