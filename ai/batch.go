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


package ai

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultBatchSize is the number of texts sent per provider call.
	DefaultBatchSize = 10

	// DefaultBatchDelay is the pause inserted between provider calls.
	DefaultBatchDelay = 200 * time.Millisecond
)

// BatchEmbedder wraps an Embedder with batching and throttling.
// Input texts are split into fixed-size batches with a delay between
// provider calls. Output order matches input order and the result has
// the same length as the input. Empty strings are substituted with a
// single space since providers reject empty input.
//
// BatchEmbedder does not retry; failures propagate as *EmbeddingError
// and the caller decides on retry policy.
type BatchEmbedder struct {
	inner     Embedder
	batchSize int
	delay     time.Duration
}

// BatchOption configures a BatchEmbedder.
type BatchOption func(*BatchEmbedder) error

// WithBatchSize sets the number of texts per provider call.
func WithBatchSize(size int) BatchOption {
	return func(b *BatchEmbedder) error {
		if size <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidBatchSize, size)
		}
		b.batchSize = size
		return nil
	}
}

// WithBatchDelay sets the pause between provider calls.
func WithBatchDelay(delay time.Duration) BatchOption {
	return func(b *BatchEmbedder) error {
		if delay < 0 {
			return fmt.Errorf("batch delay cannot be negative: %v", delay)
		}
		b.delay = delay
		return nil
	}
}

// NewBatchEmbedder wraps inner with the default batching policy,
// applying any options.
func NewBatchEmbedder(inner Embedder, opts ...BatchOption) (*BatchEmbedder, error) {
	if inner == nil {
		return nil, fmt.Errorf("inner embedder cannot be nil")
	}
	b := &BatchEmbedder{
		inner:     inner,
		batchSize: DefaultBatchSize,
		delay:     DefaultBatchDelay,
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

var _ Embedder = (*BatchEmbedder)(nil)

// EmbedText embeds a single text without batching overhead.
func (b *BatchEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		text = " "
	}
	vec, err := b.inner.EmbedText(ctx, text)
	if err != nil {
		return nil, &EmbeddingError{Batch: 0, Err: err}
	}
	return vec, nil
}

// EmbedTexts embeds texts in batches, pausing between provider calls.
// The context is honored during the inter-batch delay.
func (b *BatchEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	prepared := make([]string, len(texts))
	for i, t := range texts {
		if t == "" {
			t = " "
		}
		prepared[i] = t
	}

	vectors := make([][]float32, 0, len(prepared))
	batchNum := 0
	for start := 0; start < len(prepared); start += b.batchSize {
		if batchNum > 0 && b.delay > 0 {
			timer := time.NewTimer(b.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		end := start + b.batchSize
		if end > len(prepared) {
			end = len(prepared)
		}

		batch, err := b.inner.EmbedTexts(ctx, prepared[start:end])
		if err != nil {
			return nil, &EmbeddingError{Batch: batchNum, Err: err}
		}
		if len(batch) != end-start {
			return nil, &EmbeddingError{
				Batch: batchNum,
				Err:   fmt.Errorf("provider returned %d vectors for %d texts", len(batch), end-start),
			}
		}

		vectors = append(vectors, batch...)
		batchNum++
	}

	return vectors, nil
}
