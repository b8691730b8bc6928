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
	"errors"
	"fmt"
)

var (
	// ErrInvalidBatchSize indicates a non-positive embedding batch size.
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrExtractionFailed indicates the model's response could not be
	// parsed into metadata even after repair attempts.
	ErrExtractionFailed = errors.New("metadata extraction failed")

	// ErrSummarizationFailed indicates the model failed to produce a
	// summary after the simplified retry.
	ErrSummarizationFailed = errors.New("summarization failed")
)

// EmbeddingError wraps a provider failure during embedding generation.
// Batch identifies which batch failed when the error occurred inside a
// batched call.
type EmbeddingError struct {
	Batch int
	Err   error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding batch %d failed: %v", e.Batch, e.Err)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}
