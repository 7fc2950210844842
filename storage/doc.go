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


// Package storage provides the storage abstraction layer for the librarian.
//
// This package defines repository interfaces that decouple storage from the
// recommendation workflow and the math demo. Two repositories exist:
//
//   - BookRepository: the catalog (titles in corpus order, short summaries
//     and the summary embeddings forming the vector index)
//   - RequestLogRepository: the append-only math request log
//
// Records are encoded as JSON by the helpers in serialization.go; IDs are
// encoded as 8 big-endian bytes so they sort numerically inside key space.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	books, err := badger.NewBookRepository(backend)
//	all, err := books.ListBooks(ctx)
//
// Use in tests with in-memory storage:
//
//	books, requests, backend, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
