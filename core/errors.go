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

import "errors"

// Domain validation errors
var (
	// ErrInvalidPaper indicates a Paper failed validation.
	ErrInvalidPaper = errors.New("invalid paper")

	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptySource indicates the Source field is empty.
	ErrEmptySource = errors.New("source cannot be empty")

	// ErrInvalidStatus indicates an invalid PaperStatus value.
	ErrInvalidStatus = errors.New("invalid paper status")

	// ErrInvalidStage indicates an invalid ProcessingStage value.
	ErrInvalidStage = errors.New("invalid processing stage")

	// ErrEmptyChunkText indicates the chunk Text field is empty.
	ErrEmptyChunkText = errors.New("chunk text cannot be empty")

	// ErrNegativeChunkIndex indicates a negative section or chunk index.
	ErrNegativeChunkIndex = errors.New("chunk indices cannot be negative")

	// ErrInvalidDimension indicates a non-positive index dimension.
	ErrInvalidDimension = errors.New("index dimension must be positive")
)
