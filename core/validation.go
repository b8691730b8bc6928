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


package core

import "fmt"

// ValidatePaper validates a Paper according to domain rules.
//
// Validation rules:
//   - Source must not be empty
//   - Status must be a known value
//   - Stage must be a known value
//
// NOT validated (populated during processing):
//   - RawText, Title, Summaries (empty until their stages run)
//   - ErrorMessage, Tags (empty unless something failed)
func ValidatePaper(paper *Paper) error {
	if paper == nil {
		return fmt.Errorf("%w: paper is nil", ErrInvalidPaper)
	}

	if paper.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPaper, ErrEmptySource)
	}

	if err := ValidateStatus(paper.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPaper, err)
	}

	if err := ValidateStage(paper.Stage); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPaper, err)
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - SectionIndex and ChunkIndex must not be negative
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChunkText)
	}

	if chunk.SectionIndex < 0 || chunk.ChunkIndex < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrNegativeChunkIndex)
	}

	return nil
}

// ValidateStatus validates that a PaperStatus has a valid value.
func ValidateStatus(status PaperStatus) error {
	switch status {
	case StatusProcessing, StatusCompleted, StatusError, StatusPartial:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidStatus, status)
}

// ValidateStage validates that a ProcessingStage has a valid value.
func ValidateStage(stage ProcessingStage) error {
	if _, ok := stageNames[stage]; !ok {
		return fmt.Errorf("%w: value %d", ErrInvalidStage, stage)
	}
	return nil
}

// ValidateIndexDescriptor validates an IndexDescriptor.
func ValidateIndexDescriptor(desc IndexDescriptor) error {
	if desc.Name == "" {
		return fmt.Errorf("index name cannot be empty")
	}
	if desc.Dimension <= 0 {
		return ErrInvalidDimension
	}
	return nil
}
