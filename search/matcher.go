package search

import (
	"log/slog"
	"strings"
)

// DefaultLimit is the result cap used when none is configured.
const DefaultLimit = 3

// Corpus is the ordered title list a Matcher searches.
type Corpus interface {
	Titles() []string
}

// Matcher finds corpus titles that share a token with a query.
// The corpus is captured at construction and never changes.
type Matcher struct {
	titles []string
	folded []string
	limit  int
	logger *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithLimit sets the result cap. A limit <= 0 falls back to DefaultLimit.
func WithLimit(limit int) Option {
	return func(m *Matcher) error {
		if limit <= 0 {
			limit = DefaultLimit
		}
		m.limit = limit
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewMatcher creates a matcher over the corpus titles.
func NewMatcher(corpus Corpus, opts ...Option) (*Matcher, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}

	titles := corpus.Titles()
	m := &Matcher{
		titles: titles,
		folded: make([]string, len(titles)),
		limit:  DefaultLimit,
		logger: slog.Default(),
	}
	for i, title := range titles {
		m.folded[i] = strings.ToLower(title)
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	m.logger = m.logger.With("component", "matcher")

	return m, nil
}

// Limit returns the result cap.
func (m *Matcher) Limit() int {
	return m.limit
}

// Match returns up to Limit titles, in corpus order, whose lower-cased text
// contains any lower-cased query token. A query without tokens matches
// nothing.
func (m *Matcher) Match(query string) []string {
	return m.MatchWithMonitor(query, nil)
}

// MatchWithMonitor is Match with callbacks at each stage.
func (m *Matcher) MatchWithMonitor(query string, monitor MatchMonitor) []string {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	tokens := tokenize(query)
	monitor.Start(query, tokens)

	matches := make([]string, 0, m.limit)
	if len(tokens) == 0 {
		monitor.Finish(matches)
		return matches
	}

	total := 0
	for i, title := range m.folded {
		token, ok := matchingToken(title, tokens)
		if !ok {
			continue
		}
		total++
		if len(matches) < m.limit {
			monitor.Hit(m.titles[i], token)
			matches = append(matches, m.titles[i])
		}
	}
	if total > len(matches) {
		monitor.Truncated(total - len(matches))
	}

	m.logger.Debug("matched titles", "tokens", len(tokens), "matches", len(matches), "total", total)
	monitor.Finish(matches)
	return matches
}
