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


// Package ingest orchestrates the paper ingestion state machine.
//
// A paper moves through the stages submitted, downloading,
// extracting_text, extracting_metadata, summarizing, text_extracted,
// learning_generated, completed. Each completed stage is persisted as
// (status, processing_stage) before the next stage begins, so progress
// is observable and ingestion can be re-invoked for a partially
// processed paper. Chunk identity is stable across runs, so
// re-ingestion overwrites vectors instead of duplicating them.
//
// Failures split into two classes. Essential failures (no extractable
// text, an unresolvable vector-store failure) set status=error with a
// message and halt the paper; the persisted stage stays at the last
// completed one. Non-essential failures (metadata extraction,
// summarization, learning generation) are logged, recorded as tags on
// the paper, and processing continues.
package ingest
