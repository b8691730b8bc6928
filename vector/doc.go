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


// Package vector manages named vector indices and the per-paper
// namespace write/query path.
//
// The Provider interface abstracts a vector database; implementations
// live in sub-packages:
//
//   - vector/local: embedded provider backed by Badger, no external service
//   - vector/qdrant: provider backed by a Qdrant server
//
// Manager sits above a Provider and adds the policies the ingestion
// pipeline relies on: batched upserts, unit-length normalization before
// writes, and the dimension-mismatch fallback protocol. When an
// embedding's dimension does not match the active index, the manager
// finds or creates a fallback index sized to the actual dimension,
// adopts it for all subsequent traffic in the process, and retries the
// operation once.
package vector
