// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/papyrus/ai"
	"github.com/poiesic/papyrus/core"
	"github.com/poiesic/papyrus/segment"
	"github.com/poiesic/papyrus/storage"
	"github.com/poiesic/papyrus/vector"
)

// maxErrorMessageLength caps the persisted error message.
const maxErrorMessageLength = 500

// Tags recorded when a non-essential stage fails.
const (
	TagBlobUploadFailed         = "blob_upload_failed"
	TagMetadataExtractionFailed = "metadata_extraction_failed"
	TagSummarizationFailed      = "summarization_failed"
	TagLearningGenerationFailed = "learning_generation_failed"
	TagRawTextDropped           = "raw_text_dropped"
)

// LearningGenerator produces downstream learning content for a fully
// extracted paper. Implementations are external collaborators; the
// pipeline only sequences the call.
type LearningGenerator interface {
	GenerateLearningContent(ctx context.Context, paper *core.Paper) error
}

// Pipeline orchestrates the paper ingestion state machine.
// Stage execution for a single paper is strictly sequential; papers are
// independent, so many can be ingested concurrently via Submit.
type Pipeline struct {
	papers     storage.PaperRepository
	blobs      storage.BlobStore
	acquirer   Acquirer
	extractor  TextExtractor
	chunker    *segment.Chunker
	embedder   ai.Embedder
	vectors    *vector.Manager
	metadata   ai.MetadataExtractor
	summarizer ai.Summarizer
	learning   LearningGenerator
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent ingestion.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithAcquirer overrides the default source acquirer.
func WithAcquirer(a Acquirer) Option {
	return func(p *Pipeline) error {
		if a == nil {
			return fmt.Errorf("acquirer cannot be nil")
		}
		p.acquirer = a
		return nil
	}
}

// WithExtractor overrides the default text extractor.
func WithExtractor(e TextExtractor) Option {
	return func(p *Pipeline) error {
		if e == nil {
			return fmt.Errorf("extractor cannot be nil")
		}
		p.extractor = e
		return nil
	}
}

// WithChunker overrides the default chunker.
func WithChunker(c *segment.Chunker) Option {
	return func(p *Pipeline) error {
		if c == nil {
			return fmt.Errorf("chunker cannot be nil")
		}
		p.chunker = c
		return nil
	}
}

// WithBlobStore enables archiving of acquired payloads.
func WithBlobStore(b storage.BlobStore) Option {
	return func(p *Pipeline) error {
		p.blobs = b
		return nil
	}
}

// WithMetadataExtractor enables the metadata extraction stage.
func WithMetadataExtractor(m ai.MetadataExtractor) Option {
	return func(p *Pipeline) error {
		p.metadata = m
		return nil
	}
}

// WithSummarizer enables the summarization stage.
func WithSummarizer(s ai.Summarizer) Option {
	return func(p *Pipeline) error {
		p.summarizer = s
		return nil
	}
}

// WithLearningGenerator enables the learning-content stage.
func WithLearningGenerator(g LearningGenerator) Option {
	return func(p *Pipeline) error {
		p.learning = g
		return nil
	}
}

// NewPipeline creates an ingestion pipeline. The repository, embedder,
// and vector manager are required; acquisition, extraction, and
// chunking get working defaults, and the LLM-backed stages stay
// disabled until their collaborators are provided via options.
func NewPipeline(
	papers storage.PaperRepository,
	embedder ai.Embedder,
	vectors *vector.Manager,
	opts ...Option,
) (*Pipeline, error) {
	if papers == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if vectors == nil {
		return nil, ErrVectorManagerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	chunker, err := segment.NewChunker()
	if err != nil {
		pool.Release()
		return nil, err
	}

	p := &Pipeline{
		papers:    papers,
		acquirer:  NewSourceAcquirer(),
		extractor: NewPlainTextExtractor(),
		chunker:   chunker,
		embedder:  embedder,
		vectors:   vectors,
		pool:      pool,
		logger:    slog.Default().With("component", "ingest-pipeline"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Submit queues a paper for background ingestion and returns once the
// record exists. The caller does not block on processing; a paper
// stuck in error or partial exposes its error message for resubmission
// decisions.
func (p *Pipeline) Submit(ctx context.Context, source string, tags []string) (*core.Paper, error) {
	paper, err := p.register(ctx, source, tags)
	if err != nil {
		return nil, err
	}

	id := paper.Id
	err = p.pool.Submit(func() {
		if _, runErr := p.run(context.Background(), id); runErr != nil {
			p.logger.Error("background ingestion failed", "paper", id, "err", runErr)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to queue paper %d: %w", id, err)
	}

	return paper, nil
}

// Process ingests a paper synchronously and returns its final record.
func (p *Pipeline) Process(ctx context.Context, source string, tags []string) (*core.Paper, error) {
	paper, err := p.register(ctx, source, tags)
	if err != nil {
		return nil, err
	}
	return p.run(ctx, paper.Id)
}

// register creates (or resets, for a re-submitted source) the paper
// record at the submitted stage.
func (p *Pipeline) register(ctx context.Context, source string, tags []string) (*core.Paper, error) {
	paper := &core.Paper{
		Source: source,
		Status: core.StatusProcessing,
		Stage:  core.StageSubmitted,
		Tags:   tags,
	}
	added, err := p.papers.AddPaper(ctx, paper)
	if err != nil {
		return nil, fmt.Errorf("failed to register paper: %w", err)
	}

	p.logger.Info("paper submitted", "paper", added.Id, "source", source)
	return added, nil
}

// run executes all stages for one paper. Each completed stage is
// persisted before the next begins. Essential failures stop the run
// with status=error and leave the stage at the last completed value.
func (p *Pipeline) run(ctx context.Context, id core.ID) (*core.Paper, error) {
	paper, err := p.papers.GetPaper(ctx, id)
	if err != nil {
		return nil, err
	}

	partial := false

	// downloading
	data, err := p.acquirer.Acquire(ctx, paper.Source)
	if err != nil {
		return p.failEssential(ctx, paper, err)
	}
	if p.blobs != nil {
		url, blobErr := p.blobs.Upload(ctx, data, fmt.Sprintf("papers/%d", paper.Id))
		if blobErr != nil {
			paper = p.recordStageFailure(paper, "blob upload", TagBlobUploadFailed, blobErr)
		} else {
			paper.BlobURL = url
		}
	}
	if paper, err = p.advance(ctx, paper, core.StageDownloading); err != nil {
		return nil, err
	}

	// extracting_text
	text, err := p.extractor.Extract(ctx, data)
	if err != nil {
		return p.failEssential(ctx, paper, err)
	}
	paper, text, partial, err = p.persistRawText(ctx, paper, text)
	if err != nil {
		return p.failEssential(ctx, paper, err)
	}
	if paper, err = p.advance(ctx, paper, core.StageExtractingText); err != nil {
		return nil, err
	}

	// extracting_metadata (non-essential)
	if p.metadata != nil {
		meta, metaErr := p.metadata.ExtractMetadata(ctx, text)
		if metaErr != nil {
			paper = p.recordStageFailure(paper, "metadata extraction", TagMetadataExtractionFailed, metaErr)
		} else {
			if meta.Title != "" {
				paper.Title = meta.Title
			}
			if len(meta.Authors) > 0 {
				paper.Authors = meta.Authors
			}
			if meta.Abstract != "" {
				paper.Abstract = meta.Abstract
			}
		}
	}
	if paper, err = p.advance(ctx, paper, core.StageExtractingMetadata); err != nil {
		return nil, err
	}

	// summarizing (non-essential)
	if p.summarizer != nil {
		summaries, sumErr := p.summarizer.Summarize(ctx, text, ai.SummaryLevels)
		if sumErr != nil {
			paper = p.recordStageFailure(paper, "summarization", TagSummarizationFailed, sumErr)
		} else {
			paper.Summaries = summaries
		}
	}
	if paper, err = p.advance(ctx, paper, core.StageSummarizing); err != nil {
		return nil, err
	}

	// text_extracted: segment, embed, and index. Failures here are
	// essential; a paper without vectors cannot be retrieved.
	chunkCount, err := p.embedAndIndex(ctx, paper, text)
	if err != nil {
		return p.failEssential(ctx, paper, err)
	}
	paper.ChunkCount = chunkCount
	if paper, err = p.advance(ctx, paper, core.StageTextExtracted); err != nil {
		return nil, err
	}

	// learning_generated (non-essential)
	if p.learning != nil {
		if learnErr := p.learning.GenerateLearningContent(ctx, paper); learnErr != nil {
			paper = p.recordStageFailure(paper, "learning generation", TagLearningGenerationFailed, learnErr)
		}
	}
	if paper, err = p.advance(ctx, paper, core.StageLearningGenerated); err != nil {
		return nil, err
	}

	// completed
	paper.Stage = core.StageCompleted
	if partial {
		paper.Status = core.StatusPartial
	} else {
		paper.Status = core.StatusCompleted
	}
	paper, err = p.papers.UpdatePaper(ctx, paper)
	if err != nil {
		return nil, err
	}

	p.logger.Info("paper ingested",
		"paper", paper.Id,
		"status", paper.Status.String(),
		"chunks", paper.ChunkCount)
	return paper, nil
}

// persistRawText saves the extracted text using the degradation
// ladder: verbatim, then sanitized and truncated, then dropped with a
// partial marker. The text the rest of the run should use is returned,
// which is the sanitized copy once the ladder degrades past verbatim.
func (p *Pipeline) persistRawText(ctx context.Context, paper *core.Paper, text string) (*core.Paper, string, bool, error) {
	working := text
	partial := false

	step, err := runWithFallbacks(ctx, p.logger, "persist raw text", []Fallback{
		{
			Name: "verbatim",
			Run: func(ctx context.Context) error {
				attempt := *paper
				attempt.RawText = text
				updated, err := p.papers.UpdatePaper(ctx, &attempt)
				if err != nil {
					return err
				}
				paper = updated
				return nil
			},
		},
		{
			Name: "sanitized",
			Run: func(ctx context.Context) error {
				sanitized := SanitizeText(text)
				attempt := *paper
				attempt.RawText = sanitized
				updated, err := p.papers.UpdatePaper(ctx, &attempt)
				if err != nil {
					return err
				}
				paper = updated
				working = sanitized
				return nil
			},
		},
		{
			Name: "dropped",
			Run: func(ctx context.Context) error {
				attempt := *paper
				attempt.RawText = ""
				attempt.Status = core.StatusPartial
				attempt.Tags = appendTag(attempt.Tags, TagRawTextDropped)
				updated, err := p.papers.UpdatePaper(ctx, &attempt)
				if err != nil {
					return err
				}
				paper = updated
				return nil
			},
		},
	})
	if err != nil {
		return paper, working, false, err
	}
	if step == 2 {
		partial = true
	}
	return paper, working, partial, nil
}

// embedAndIndex chunks the text, embeds every chunk, and upserts the
// records under the paper's namespace. Chunk ids are stable, so
// re-runs overwrite instead of duplicating.
func (p *Pipeline) embedAndIndex(ctx context.Context, paper *core.Paper, text string) (int, error) {
	chunks, err := p.chunker.ChunkText(text, paper.Id)
	if err != nil {
		return 0, fmt.Errorf("segmentation failed: %w", err)
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding failed: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embedding returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	records := make([]core.VectorRecord, len(chunks))
	for i := range chunks {
		records[i] = core.VectorRecord{
			Id:       chunks[i].VectorID(),
			Vector:   vectors[i],
			Metadata: chunks[i].Metadata(),
		}
	}

	if err := p.vectors.Upsert(ctx, paper.Namespace(), records); err != nil {
		return 0, fmt.Errorf("vector store write failed: %w", err)
	}
	return len(chunks), nil
}

// advance persists a completed stage.
func (p *Pipeline) advance(ctx context.Context, paper *core.Paper, stage core.ProcessingStage) (*core.Paper, error) {
	paper.Stage = stage
	updated, err := p.papers.UpdatePaper(ctx, paper)
	if err != nil {
		return nil, fmt.Errorf("failed to persist stage %s for paper %d: %w", stage, paper.Id, err)
	}
	p.logger.Debug("stage completed", "paper", paper.Id, "stage", stage.String())
	return updated, nil
}

// failEssential marks the paper failed. The stage field keeps its last
// successfully persisted value so the failure point is observable.
func (p *Pipeline) failEssential(ctx context.Context, paper *core.Paper, cause error) (*core.Paper, error) {
	p.logger.Error("essential stage failed",
		"paper", paper.Id,
		"stage", paper.Stage.String(),
		"err", cause)

	paper.Status = core.StatusError
	paper.ErrorMessage = capMessage(cause.Error())
	updated, err := p.papers.UpdatePaper(ctx, paper)
	if err != nil {
		return nil, fmt.Errorf("failed to persist error state for paper %d: %w", paper.Id, err)
	}
	return updated, cause
}

// recordStageFailure logs a non-essential failure and tags the paper.
func (p *Pipeline) recordStageFailure(paper *core.Paper, stage, tag string, cause error) *core.Paper {
	p.logger.Warn("non-essential stage failed, continuing",
		"paper", paper.Id,
		"stage", stage,
		"err", cause)
	paper.Tags = appendTag(paper.Tags, tag)
	return paper
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

func appendTag(tags []string, tag string) []string {
	if slices.Contains(tags, tag) {
		return tags
	}
	return append(tags, tag)
}

func capMessage(msg string) string {
	if len(msg) > maxErrorMessageLength {
		return msg[:maxErrorMessageLength]
	}
	return msg
}
