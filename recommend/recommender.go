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


package recommend

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/librarian/core"
)

// State is a step of the recommendation workflow.
type State string

const (
	StateQueryReceived State = "query_received"
	StateMatched       State = "matched"
	StateUnmatched     State = "unmatched"
	StateSynthesized   State = "synthesized"
)

// Matcher returns the corpus titles that match a query.
type Matcher interface {
	Match(query string) []string
}

// Result is the terminal outcome of one recommendation request. Titles is
// set when State is StateMatched, Synthesized when it is StateSynthesized.
type Result struct {
	Query       string       `json:"query"`
	State       State        `json:"state"`
	Titles      []string     `json:"titles,omitempty"`
	Synthesized *Synthesized `json:"synthesized,omitempty"`
}

// Recommender drives the match-else-synthesize workflow.
type Recommender struct {
	matcher     Matcher
	expander    *Expander
	synthesizer *Synthesizer
	summaries   *Cache[string]
	books       *Cache[Synthesized]
	cacheSize   int
	cacheTTL    time.Duration
	logger      *slog.Logger
}

// Option configures a Recommender.
type Option func(*Recommender) error

// WithCacheSize bounds each cache to size entries.
func WithCacheSize(size int) Option {
	return func(r *Recommender) error {
		r.cacheSize = size
		return nil
	}
}

// WithCacheTTL sets how long cached results live.
func WithCacheTTL(ttl time.Duration) Option {
	return func(r *Recommender) error {
		r.cacheTTL = ttl
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recommender) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRecommender wires the workflow components together.
func NewRecommender(matcher Matcher, expander *Expander, synthesizer *Synthesizer, opts ...Option) (*Recommender, error) {
	if matcher == nil {
		return nil, ErrMatcherRequired
	}
	if expander == nil {
		return nil, ErrExpanderRequired
	}
	if synthesizer == nil {
		return nil, ErrSynthesizerRequired
	}

	r := &Recommender{
		matcher:     matcher,
		expander:    expander,
		synthesizer: synthesizer,
		cacheSize:   DefaultCacheSize,
		cacheTTL:    DefaultCacheTTL,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "recommender")
	// Titles select a short summary by exact match, so their keys are not folded.
	r.summaries = NewCache[string](r.cacheSize, r.cacheTTL, WithExactKeys())
	r.books = NewCache[Synthesized](r.cacheSize, r.cacheTTL)

	return r, nil
}

// Recommend matches query against the corpus and, when nothing matches,
// synthesizes a fictional book. Matched titles are not expanded here; call
// Summary for each one on demand. The only error is core.ErrEmptyQuery.
func (r *Recommender) Recommend(ctx context.Context, query string) (*Result, error) {
	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}
	r.transition(query, StateQueryReceived)

	if titles := r.matcher.Match(query); len(titles) > 0 {
		r.transition(query, StateMatched)
		return &Result{Query: query, State: StateMatched, Titles: titles}, nil
	}
	r.transition(query, StateUnmatched)

	book := r.synthesize(ctx, query)
	r.transition(query, StateSynthesized)
	return &Result{Query: query, State: StateSynthesized, Synthesized: &book}, nil
}

// Summary returns the long-form summary for a title, from cache when an
// earlier call succeeded. Failure text is returned but never cached.
func (r *Recommender) Summary(ctx context.Context, title string) string {
	if cached, ok := r.summaries.Get(title); ok {
		return cached
	}

	summary, err := r.expander.expand(ctx, title)
	if err != nil {
		return expansionFailure(title, err)
	}
	r.summaries.Add(title, summary)
	return summary
}

// SummaryCacheStats reports the long-form summary cache counters.
func (r *Recommender) SummaryCacheStats() CacheStats {
	return r.summaries.Stats()
}

// BookCacheStats reports the synthesized book cache counters.
func (r *Recommender) BookCacheStats() CacheStats {
	return r.books.Stats()
}

// CacheReport groups the counters of both caches.
type CacheReport struct {
	Summaries CacheStats `json:"summaries"`
	Books     CacheStats `json:"books"`
}

// CacheStats reports the counters of both caches.
func (r *Recommender) CacheStats() CacheReport {
	return CacheReport{
		Summaries: r.SummaryCacheStats(),
		Books:     r.BookCacheStats(),
	}
}

// PurgeCaches drops every memoized result.
func (r *Recommender) PurgeCaches() {
	r.summaries.Purge()
	r.books.Purge()
}

func (r *Recommender) synthesize(ctx context.Context, query string) Synthesized {
	if cached, ok := r.books.Get(query); ok {
		return cached
	}

	book := r.synthesizer.Synthesize(ctx, query)
	if book.Status != ParseFailed {
		r.books.Add(query, book)
	}
	return book
}

func (r *Recommender) transition(query string, state State) {
	r.logger.Debug("recommendation state", "query", query, "state", state)
}
