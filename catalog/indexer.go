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


package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/librarian/ai"
	"github.com/poiesic/librarian/core"
	"github.com/poiesic/librarian/storage"
)

const (
	DefaultBatchSize      = 16
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = 1 * time.Second
	DefaultReportInterval = 16
)

// Indexer embeds short summaries and persists the catalog.
type Indexer struct {
	repo           storage.BookRepository
	embedder       ai.Embedder
	pool           *ants.Pool
	batchSize      int
	maxRetries     int
	retryDelay     time.Duration
	progress       io.Writer
	reportInterval int
	logger         *slog.Logger
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer) error

// WithPoolSize sets the number of concurrent embedding workers.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) IndexerOption {
	return func(ix *Indexer) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if ix.pool != nil {
			ix.pool.Release()
		}
		ix.pool = pool
		return nil
	}
}

// WithBatchSize sets how many summaries go into one embedding call.
func WithBatchSize(size int) IndexerOption {
	return func(ix *Indexer) error {
		if size < 1 {
			size = DefaultBatchSize
		}
		ix.batchSize = size
		return nil
	}
}

// WithRetry sets the attempt count and base backoff delay per batch.
func WithRetry(maxAttempts int, baseDelay time.Duration) IndexerOption {
	return func(ix *Indexer) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		ix.maxRetries = maxAttempts
		ix.retryDelay = baseDelay
		return nil
	}
}

// WithProgress reports progress to w every interval books.
func WithProgress(w io.Writer, interval int) IndexerOption {
	return func(ix *Indexer) error {
		ix.progress = w
		ix.reportInterval = interval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) IndexerOption {
	return func(ix *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// NewIndexer creates an indexer. A nil embedder stores books without vectors.
// Callers must Release the indexer when done.
func NewIndexer(repo storage.BookRepository, embedder ai.Embedder, opts ...IndexerOption) (*Indexer, error) {
	if repo == nil {
		return nil, ErrBookRepositoryRequired
	}

	poolSize := max(runtime.NumCPU()/2, 1)
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	ix := &Indexer{
		repo:           repo,
		embedder:       embedder,
		pool:           pool,
		batchSize:      DefaultBatchSize,
		maxRetries:     DefaultMaxRetries,
		retryDelay:     DefaultRetryDelay,
		reportInterval: DefaultReportInterval,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(ix); err != nil {
			ix.Release()
			return nil, err
		}
	}
	ix.logger = ix.logger.With("component", "indexer")

	return ix, nil
}

// Release stops the worker pool.
func (ix *Indexer) Release() {
	if ix.pool != nil {
		ix.pool.Release()
	}
}

// Index replaces the stored catalog with books, embeds their summaries and
// returns the resulting snapshot.
func (ix *Indexer) Index(ctx context.Context, books []*core.Book) (*Catalog, error) {
	stored, err := ix.repo.ReplaceBooks(ctx, books...)
	if err != nil {
		return nil, fmt.Errorf("failed to store books: %w", err)
	}
	ix.logger.Info("stored catalog", "books", len(stored))

	if ix.embedder == nil {
		ix.logger.Info("no embedder configured, skipping embeddings")
		return Load(ctx, ix.repo)
	}

	if err := ix.embed(ctx, stored); err != nil {
		return nil, err
	}
	return Load(ctx, ix.repo)
}

// embed splits books into batches and runs them on the pool. The first
// batch error wins.
func (ix *Indexer) embed(ctx context.Context, books []*core.Book) error {
	tracker := NewProgressTracker(ix.progress, len(books), ix.reportInterval)
	tracker.Start()
	defer tracker.Finish()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for start := 0; start < len(books); start += ix.batchSize {
		batch := books[start:min(start+ix.batchSize, len(books))]
		wg.Add(1)
		err := ix.pool.Submit(func() {
			defer wg.Done()
			if err := ix.processBatch(ctx, batch); err != nil {
				fail(err)
				return
			}
			tracker.Increment(len(batch))
		})
		if err != nil {
			wg.Done()
			fail(fmt.Errorf("failed to submit batch: %w", err))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		ix.logger.Error("indexing failed", "err", firstErr, "embedded", tracker.Current())
		return firstErr
	}
	ix.logger.Info("embedded summaries", "books", len(books), "elapsed", tracker.Elapsed())
	return nil
}

func (ix *Indexer) processBatch(ctx context.Context, books []*core.Book) error {
	texts := make([]string, len(books))
	for i, book := range books {
		texts[i] = book.Summary
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = ix.embedder.EmbedTexts(ctx, texts)
		return err
	}, ix.maxRetries, ix.retryDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", ix.maxRetries, err)
	}
	if len(embeddings) != len(books) {
		return fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCountMismatch, len(books), len(embeddings))
	}

	for i, book := range books {
		book.Vector = NormalizeVector(embeddings[i])
	}
	if _, err := ix.repo.UpdateBooks(ctx, books...); err != nil {
		return fmt.Errorf("failed to update books: %w", err)
	}
	return nil
}
