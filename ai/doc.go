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


// Package ai provides abstractions for the AI services Papyrus relies
// on: text embedding, paper metadata extraction, and summarization.
//
// The package defines interfaces only; concrete implementations live in
// sub-packages:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors in the implementation packages return interface
// types to enforce abstraction. Mock constructors return concrete types
// so tests can inject behavior through function fields and inspect call
// counts.
//
// BatchEmbedder wraps any Embedder with the batching and throttling
// policy embedding providers expect: requests are grouped into small
// batches with a configurable delay between them, and empty inputs are
// substituted with a single space rather than failing the whole batch.
package ai
