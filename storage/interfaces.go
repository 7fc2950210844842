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


package storage

import (
	"context"

	"github.com/poiesic/librarian/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close releases resources held by the repository.
	Close() error
}

// BookRepository stores the catalog: titles in corpus order, their short
// summaries and the summary embeddings that make up the vector index.
type BookRepository interface {
	Repository

	// ReplaceBooks removes every stored book and stores the given books in
	// order. Each book's Position is set to its index in the argument list
	// and its ID is derived from its title.
	// Returns ErrDuplicateKey if two books share a title.
	ReplaceBooks(ctx context.Context, books ...*core.Book) ([]*core.Book, error)

	// UpdateBooks updates existing books, typically to attach vectors.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any book doesn't exist.
	UpdateBooks(ctx context.Context, books ...*core.Book) ([]*core.Book, error)

	// GetBook retrieves a single book by ID.
	// Returns ErrNotFound if the book doesn't exist.
	GetBook(ctx context.Context, id core.ID) (*core.Book, error)

	// FindBookByTitle retrieves a book by its exact title.
	// Returns ErrNotFound if no book has that title.
	FindBookByTitle(ctx context.Context, title string) (*core.Book, error)

	// ListBooks returns every book ordered by Position.
	ListBooks(ctx context.Context) ([]*core.Book, error)

	// CountBooks returns the number of stored books.
	CountBooks(ctx context.Context) (int, error)
}

// RequestLogRepository is the append-only sink for math operation requests.
type RequestLogRepository interface {
	Repository

	// AppendRequest stores a new entry, assigning its ID from a sequence and
	// setting CreatedAt if it is zero.
	AppendRequest(ctx context.Context, entry *core.RequestLogEntry) (*core.RequestLogEntry, error)

	// RecentRequests returns up to limit entries, most recent first.
	RecentRequests(ctx context.Context, limit int) ([]*core.RequestLogEntry, error)
}
