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


package librarian

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/librarian/ai"
	"github.com/poiesic/librarian/ai/openai"
	"github.com/poiesic/librarian/catalog"
	"github.com/poiesic/librarian/core"
	"github.com/poiesic/librarian/mathops"
	"github.com/poiesic/librarian/recommend"
	"github.com/poiesic/librarian/search"
	"github.com/poiesic/librarian/storage"
	"github.com/poiesic/librarian/storage/badger"
)

// Library is the process-wide context: storage, the loaded catalog, the AI
// provider and the workflow components built on them. Construct it once with
// Open, share it read-only, and Close it on exit.
type Library struct {
	backend      *badger.Backend
	bookRepo     storage.BookRepository
	requestRepo  storage.RequestLogRepository
	provider     ai.AIProvider
	ownsProvider bool
	catalog      *catalog.Catalog
	matcher      *search.Matcher
	recommender  *recommend.Recommender
	calculator   *mathops.Calculator
	logger       *slog.Logger
}

// Option configures a Library.
type Option func(*options)

type options struct {
	aiConfig  *ai.Config
	provider  ai.AIProvider
	inMemory  bool
	cacheSize int
	cacheTTL  time.Duration
	topK      int
	seed      []*core.Book
	logger    *slog.Logger
}

// WithAIConfig sets the configuration for the OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) Option {
	return func(o *options) {
		o.aiConfig = config
	}
}

// WithProvider uses an existing provider instead of building one from the
// AI config. The caller keeps ownership and must close it.
func WithProvider(provider ai.AIProvider) Option {
	return func(o *options) {
		o.provider = provider
	}
}

// WithInMemory keeps all data in memory. The path passed to Open is ignored.
func WithInMemory() Option {
	return func(o *options) {
		o.inMemory = true
	}
}

// WithCacheSize bounds the summary and synthesis caches.
func WithCacheSize(size int) Option {
	return func(o *options) {
		o.cacheSize = size
	}
}

// WithCacheTTL sets how long cached generations live.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.cacheTTL = ttl
	}
}

// WithTopK caps the number of matched titles.
func WithTopK(k int) Option {
	return func(o *options) {
		o.topK = k
	}
}

// WithSeed replaces the built-in books stored when the database is empty.
func WithSeed(books []*core.Book) Option {
	return func(o *options) {
		o.seed = books
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Open opens or creates the library database at path, seeds it when empty,
// loads the catalog and wires the recommendation and math components.
func Open(path string, opts ...Option) (*Library, error) {
	o := &options{
		aiConfig:  ai.DefaultConfig(),
		cacheSize: recommend.DefaultCacheSize,
		cacheTTL:  recommend.DefaultCacheTTL,
		topK:      search.DefaultLimit,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.aiConfig == nil {
		o.aiConfig = ai.DefaultConfig()
	}

	if o.inMemory {
		path = ""
	}
	backend, err := badger.OpenBackend(path, o.inMemory)
	if err != nil {
		return nil, err
	}

	lib := &Library{
		backend: backend,
		logger:  o.logger.With("component", "library"),
	}
	if err := lib.init(o); err != nil {
		lib.Close()
		return nil, err
	}
	return lib, nil
}

func (lib *Library) init(o *options) error {
	bookRepo, err := badger.NewBookRepository(lib.backend)
	if err != nil {
		return err
	}
	lib.bookRepo = bookRepo
	requestRepo, err := badger.NewRequestLogRepository(lib.backend)
	if err != nil {
		return err
	}
	lib.requestRepo = requestRepo

	if o.provider != nil {
		lib.provider = o.provider
	} else {
		if lib.provider, err = openai.NewProvider(o.aiConfig); err != nil {
			return err
		}
		lib.ownsProvider = true
	}

	ctx := context.Background()
	if err := lib.seedIfEmpty(ctx, o); err != nil {
		return err
	}
	if lib.catalog, err = catalog.Load(ctx, lib.bookRepo); err != nil {
		return err
	}
	lib.logger.Info("catalog loaded", "books", lib.catalog.Len(), "dimensions", lib.catalog.Dimensions())

	if lib.matcher, err = search.NewMatcher(lib.catalog,
		search.WithLimit(o.topK),
		search.WithLogger(o.logger),
	); err != nil {
		return err
	}

	generator := lib.provider.Generator()
	expander, err := recommend.NewExpander(generator, lib.catalog, recommend.WithExpanderLogger(o.logger))
	if err != nil {
		return err
	}
	synthesizer, err := recommend.NewSynthesizer(generator, recommend.WithSynthesizerLogger(o.logger))
	if err != nil {
		return err
	}
	if lib.recommender, err = recommend.NewRecommender(lib.matcher, expander, synthesizer,
		recommend.WithCacheSize(o.cacheSize),
		recommend.WithCacheTTL(o.cacheTTL),
		recommend.WithLogger(o.logger),
	); err != nil {
		return err
	}

	lib.calculator, err = mathops.NewCalculator(lib.requestRepo, mathops.WithLogger(o.logger))
	return err
}

// seedIfEmpty stores the seed books without vectors. Run the indexer to
// attach embeddings.
func (lib *Library) seedIfEmpty(ctx context.Context, o *options) error {
	count, err := lib.bookRepo.CountBooks(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	books := o.seed
	if books == nil {
		books = catalog.DefaultBooks()
	}
	if _, err := lib.bookRepo.ReplaceBooks(ctx, books...); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	lib.logger.Info("seeded empty catalog", "books", len(books))
	return nil
}

// Close releases the provider, repositories and backend in that order.
func (lib *Library) Close() error {
	if lib.provider != nil && lib.ownsProvider {
		if err := lib.provider.Close(); err != nil {
			lib.logger.Error("error closing AI provider", "err", err)
		}
	}

	if lib.requestRepo != nil {
		if err := lib.requestRepo.Close(); err != nil {
			lib.logger.Error("error closing request log repository", "err", err)
			return err
		}
	}
	if lib.bookRepo != nil {
		if err := lib.bookRepo.Close(); err != nil {
			lib.logger.Error("error closing book repository", "err", err)
			return err
		}
	}

	if err := lib.backend.Close(); err != nil {
		lib.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Catalog returns the snapshot loaded at Open.
func (lib *Library) Catalog() *catalog.Catalog {
	return lib.catalog
}

// Titles returns the title corpus in corpus order.
func (lib *Library) Titles() []string {
	return lib.catalog.Titles()
}

// Recommend runs the match-else-synthesize workflow for query.
func (lib *Library) Recommend(ctx context.Context, query string) (*recommend.Result, error) {
	return lib.recommender.Recommend(ctx, query)
}

// Summary returns the long-form summary for title.
func (lib *Library) Summary(ctx context.Context, title string) string {
	return lib.recommender.Summary(ctx, title)
}

// Compute runs a math operation.
func (lib *Library) Compute(ctx context.Context, req mathops.Request) (*mathops.Outcome, error) {
	return lib.calculator.Compute(ctx, req)
}

// History returns the most recent logged math requests.
func (lib *Library) History(ctx context.Context, limit int) ([]*core.RequestLogEntry, error) {
	return lib.calculator.History(ctx, limit)
}

// CacheStats reports the summary and synthesized book cache counters.
func (lib *Library) CacheStats() recommend.CacheReport {
	return lib.recommender.CacheStats()
}

// Recommender exposes the workflow.
func (lib *Library) Recommender() *recommend.Recommender {
	return lib.recommender
}

// BookRepository returns the catalog store.
func (lib *Library) BookRepository() storage.BookRepository {
	return lib.bookRepo
}

// RequestLogRepository returns the math request log.
func (lib *Library) RequestLogRepository() storage.RequestLogRepository {
	return lib.requestRepo
}

// NewIndexer returns an indexer that writes to this library's store using the
// provider's embedder. The loaded catalog is not refreshed; reopen the
// library to serve the new one.
func (lib *Library) NewIndexer(opts ...catalog.IndexerOption) (*catalog.Indexer, error) {
	return catalog.NewIndexer(lib.bookRepo, lib.provider.Embedder(), opts...)
}
