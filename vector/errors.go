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


package vector

import "errors"

var (
	// ErrIndexNotFound indicates the named index does not exist.
	ErrIndexNotFound = errors.New("vector index not found")

	// ErrDimensionUnresolved indicates an upsert or query could not be
	// served even after the fallback-index protocol ran.
	ErrDimensionUnresolved = errors.New("vector dimension mismatch could not be resolved")

	// ErrEmptyVector indicates a zero-length vector was supplied.
	ErrEmptyVector = errors.New("vector is empty")

	// ErrNoRecords indicates an upsert was called with no records.
	ErrNoRecords = errors.New("no records to upsert")
)
