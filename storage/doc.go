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


// Package storage provides the storage abstraction layer for papyrus.
//
// This package defines repository interfaces that decouple storage
// implementation from the ingestion pipeline. It allows different backends
// (BadgerDB, in-memory, a managed relational store) to be used
// interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors return interface types to enforce abstraction and
// enable multiple backend implementations:
//
//	repo, err := badger.NewPaperRepository(backend)  // returns storage.PaperRepository
//
// Internal package constructors may return concrete types since they're only
// used within the implementation package.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines; many papers are ingested concurrently and
// each transition persists through the same repository.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific timeout
// requirements.
package storage
