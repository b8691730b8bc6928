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


// Package retrieval queries embedded paper chunks by text or vector.
package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/papyrus/ai"
	"github.com/poiesic/papyrus/core"
	"github.com/poiesic/papyrus/vector"
)

// DefaultTopK is the result count used when the caller passes a
// non-positive topK.
const DefaultTopK = 10

// Retriever embeds query text and searches the vector store.
type Retriever struct {
	embedder ai.Embedder
	manager  *vector.Manager
	logger   *slog.Logger
}

// NewRetriever creates a retriever over an embedder and a vector
// manager.
func NewRetriever(embedder ai.Embedder, manager *vector.Manager) (*Retriever, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder cannot be nil")
	}
	if manager == nil {
		return nil, fmt.Errorf("vector manager cannot be nil")
	}
	return &Retriever{
		embedder: embedder,
		manager:  manager,
		logger:   slog.Default().With("component", "retriever"),
	}, nil
}

// Retrieve embeds the query text and returns the topK nearest chunks,
// scoped to namespace when one is supplied.
func (r *Retriever) Retrieve(ctx context.Context, query, namespace string, topK int) ([]core.QueryMatch, error) {
	if query == "" {
		return nil, fmt.Errorf("query text cannot be empty")
	}

	vec, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	return r.RetrieveVector(ctx, vec, namespace, topK)
}

// RetrieveVector returns the topK nearest chunks for an
// already-embedded query vector, scoped to namespace when one is
// supplied. A vector whose dimension does not match the active index
// is padded with zeros or truncated to fit before querying. This is a
// best-effort compatibility shim and likely degrades ranking quality,
// which is why the mismatch is logged at warning level.
func (r *Retriever) RetrieveVector(ctx context.Context, vec []float32, namespace string, topK int) ([]core.QueryMatch, error) {
	if len(vec) == 0 {
		return nil, vector.ErrEmptyVector
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	vec = r.fitDimension(vec)

	matches, err := r.manager.Query(ctx, namespace, vec, topK)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("retrieved matches",
		"namespace", namespace,
		"top_k", topK,
		"count", len(matches))
	return matches, nil
}

// fitDimension pads or truncates the vector to the active index's
// dimension.
func (r *Retriever) fitDimension(vec []float32) []float32 {
	want := r.manager.ActiveIndex().Dimension
	if len(vec) == want {
		return vec
	}

	r.logger.Warn("query vector dimension does not match active index, adjusting",
		"vector_dimension", len(vec),
		"index_dimension", want)

	fitted := make([]float32, want)
	copy(fitted, vec)
	return fitted
}
