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


package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/librarian/core"
	"github.com/poiesic/librarian/storage"
)

// BookRepository implements storage.BookRepository for BadgerDB.
type BookRepository struct {
	backend *Backend
}

var _ storage.BookRepository = (*BookRepository)(nil)

// NewBookRepository creates a new BookRepository.
func NewBookRepository(backend *Backend) (*BookRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &BookRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *BookRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *BookRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// ReplaceBooks drops the stored catalog and writes books in argument order.
func (r *BookRepository) ReplaceBooks(ctx context.Context, books ...*core.Book) ([]*core.Book, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	seen := make(map[string]struct{}, len(books))
	for i, book := range books {
		if err := core.ValidateBook(book); err != nil {
			return nil, err
		}
		book.Position = i
		if _, dup := seen[book.Title]; dup {
			return nil, storage.ErrDuplicateKey
		}
		seen[book.Title] = struct{}{}
		book.Id = core.BookID(book.Title)
	}

	now := time.Now().UTC()
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, key := range collectKeys(tx, []byte(bookPrefix)) {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}

		for _, book := range books {
			if book.InsertedAt.IsZero() {
				book.InsertedAt = now
			}
			book.UpdatedAt = now

			value, err := storage.MarshalBook(book)
			if err != nil {
				return err
			}
			if err := tx.Set(makeBookKey(book.Id), value); err != nil {
				return err
			}
			if err := tx.Set(makeBookPositionKey(book.Position), storage.MarshalID(book.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBooks updates existing books.
func (r *BookRepository) UpdateBooks(ctx context.Context, books ...*core.Book) ([]*core.Book, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, book := range books {
			key := makeBookKey(book.Id)

			old, err := r.readBook(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Title and position are fixed by ReplaceBooks
			book.Title = old.Title
			book.Position = old.Position
			book.InsertedAt = old.InsertedAt
			book.UpdatedAt = time.Now().UTC()

			value, err := storage.MarshalBook(book)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook retrieves a single book by ID.
func (r *BookRepository) GetBook(ctx context.Context, id core.ID) (*core.Book, error) {
	var result *core.Book
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readBook(tx, makeBookKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// FindBookByTitle looks a book up by its exact title.
func (r *BookRepository) FindBookByTitle(ctx context.Context, title string) (*core.Book, error) {
	book, err := r.GetBook(ctx, core.BookID(title))
	if err != nil {
		return nil, err
	}
	// Guard against a 64-bit hash collision
	if book.Title != title {
		return nil, storage.ErrNotFound
	}
	return book, nil
}

// ListBooks walks the position index and returns books in corpus order.
func (r *BookRepository) ListBooks(ctx context.Context) ([]*core.Book, error) {
	var results []*core.Book
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(bookPositionPrefix + ":")
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var id core.ID
			err := it.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}
			book, err := r.readBook(tx, makeBookKey(id))
			if err != nil {
				return err
			}
			if book == nil {
				// Dangling index entry
				continue
			}
			results = append(results, book)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// CountBooks counts entries in the position index.
func (r *BookRepository) CountBooks(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(bookPositionPrefix + ":")
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

func (r *BookRepository) readBook(tx *badger.Txn, key []byte) (*core.Book, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var book *core.Book
	err = item.Value(func(val []byte) error {
		var err error
		book, err = storage.UnmarshalBook(val)
		return err
	})
	return book, err
}

// collectKeys copies every key under prefix. Covers both the book records and
// the position index since they share the "book" prefix.
func collectKeys(tx *badger.Txn, prefix []byte) [][]byte {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix
	it := tx.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys
}
