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


// Package papyrus is an embedded ingestion and retrieval engine for
// academic papers. It segments papers into section-aware chunks,
// embeds them through an OpenAI-compatible provider, and serves
// similarity queries over a local or remote vector index.
package papyrus

import (
	"context"
	"log/slog"

	"github.com/poiesic/papyrus/ai"
	"github.com/poiesic/papyrus/ai/openai"
	"github.com/poiesic/papyrus/cache"
	"github.com/poiesic/papyrus/core"
	"github.com/poiesic/papyrus/ingest"
	"github.com/poiesic/papyrus/retrieval"
	"github.com/poiesic/papyrus/storage"
	"github.com/poiesic/papyrus/storage/badger"
	"github.com/poiesic/papyrus/storage/fsblob"
	"github.com/poiesic/papyrus/vector"
	"github.com/poiesic/papyrus/vector/local"
	"github.com/poiesic/papyrus/vector/qdrant"
)

// defaultIndexName is the primary vector index.
const defaultIndexName = "papers"

// Library is the top-level handle wiring storage, AI services, and the
// vector store together.
type Library struct {
	backend   *badger.Backend
	paperRepo storage.PaperRepository
	blobs     storage.BlobStore
	provider  ai.Provider
	vectors   *vector.Manager
	queries   *cache.QueryCache
	logger    *slog.Logger
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	aiConfig  *ai.Config
	blobDir   string
	dimension int
	qdrant    *qdrant.Config
}

// WithAIConfig overrides the default AI service configuration.
func WithAIConfig(cfg *ai.Config) LibraryOption {
	return func(o *libraryOptions) {
		o.aiConfig = cfg
	}
}

// WithBlobDir enables filesystem blob archiving of acquired payloads.
func WithBlobDir(dir string) LibraryOption {
	return func(o *libraryOptions) {
		o.blobDir = dir
	}
}

// WithIndexDimension sets the primary vector index dimension.
func WithIndexDimension(dim int) LibraryOption {
	return func(o *libraryOptions) {
		o.dimension = dim
	}
}

// WithQdrant stores vectors in a Qdrant server instead of the embedded
// local index.
func WithQdrant(cfg qdrant.Config) LibraryOption {
	return func(o *libraryOptions) {
		o.qdrant = &cfg
	}
}

// Open creates a Library rooted at filePath.
func Open(filePath string, opts ...LibraryOption) (*Library, error) {
	options := &libraryOptions{
		aiConfig:  ai.DefaultConfig(),
		dimension: vector.DefaultDimension,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	paperRepo, err := badger.NewPaperRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	var blobs storage.BlobStore
	if options.blobDir != "" {
		blobs, err = fsblob.NewStore(options.blobDir)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		backend.Close()
		return nil, err
	}

	var vectorProvider vector.Provider
	if options.qdrant != nil {
		vectorProvider, err = qdrant.NewProvider(*options.qdrant)
	} else {
		vectorProvider, err = local.NewProvider(backend)
	}
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	vectors, err := vector.NewManager(context.Background(), vectorProvider, defaultIndexName,
		vector.WithDimension(options.dimension))
	if err != nil {
		vectorProvider.Close()
		provider.Close()
		backend.Close()
		return nil, err
	}

	queries, err := cache.NewQueryCache()
	if err != nil {
		vectors.Close()
		provider.Close()
		backend.Close()
		return nil, err
	}

	return &Library{
		backend:   backend,
		paperRepo: paperRepo,
		blobs:     blobs,
		provider:  provider,
		vectors:   vectors,
		queries:   queries,
		logger:    slog.Default(),
	}, nil
}

// Close releases everything the library holds.
func (l *Library) Close() error {
	l.queries.Close()

	if err := l.provider.Close(); err != nil {
		l.logger.Error("error closing AI provider", "err", err)
	}
	if err := l.vectors.Close(); err != nil {
		l.logger.Error("error closing vector manager", "err", err)
	}
	if err := l.paperRepo.Close(); err != nil {
		l.logger.Error("error closing paper repository", "err", err)
		return err
	}
	if err := l.backend.Close(); err != nil {
		l.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// PaperRepository returns the paper store.
func (l *Library) PaperRepository() storage.PaperRepository {
	return l.paperRepo
}

// VectorManager returns the vector store manager.
func (l *Library) VectorManager() *vector.Manager {
	return l.vectors
}

// QueryCache returns the retrieval result cache.
func (l *Library) QueryCache() *cache.QueryCache {
	return l.queries
}

// NewIngestPipeline creates an ingestion pipeline wired to the
// library's storage, embedder, and vector index. The embedder is
// wrapped for batching; metadata extraction and summarization are
// enabled by default and further options may override any collaborator.
func (l *Library) NewIngestPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	batched, err := ai.NewBatchEmbedder(l.provider.Embedder())
	if err != nil {
		return nil, err
	}

	defaults := []ingest.Option{
		ingest.WithMetadataExtractor(l.provider.MetadataExtractor()),
		ingest.WithSummarizer(l.provider.Summarizer()),
	}
	if l.blobs != nil {
		defaults = append(defaults, ingest.WithBlobStore(l.blobs))
	}

	return ingest.NewPipeline(l.paperRepo, batched, l.vectors, append(defaults, opts...)...)
}

// NewRetriever creates a retriever over the library's embedder and
// vector index.
func (l *Library) NewRetriever() (*retrieval.Retriever, error) {
	return retrieval.NewRetriever(l.provider.Embedder(), l.vectors)
}

// Retrieve answers a text query, scoped to namespace when one is
// supplied, consulting the query cache first.
func (l *Library) Retrieve(ctx context.Context, query, namespace string, topK int) ([]core.QueryMatch, error) {
	if matches, ok := l.queries.Get(namespace, query, topK); ok {
		return matches, nil
	}

	retriever, err := l.NewRetriever()
	if err != nil {
		return nil, err
	}

	matches, err := retriever.Retrieve(ctx, query, namespace, topK)
	if err != nil {
		return nil, err
	}

	l.queries.Set(namespace, query, topK, matches)
	return matches, nil
}
