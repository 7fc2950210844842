package recommend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/librarian/ai"
)

// SummaryTable looks up the short summary stored for a title.
type SummaryTable interface {
	Summary(title string) (string, bool)
}

// Expander turns a title into a four-part long-form summary.
type Expander struct {
	generator ai.Generator
	summaries SummaryTable
	logger    *slog.Logger
}

// ExpanderOption configures an Expander.
type ExpanderOption func(*Expander) error

// WithExpanderLogger sets a custom logger.
// Default is slog.Default().
func WithExpanderLogger(logger *slog.Logger) ExpanderOption {
	return func(e *Expander) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExpander creates an expander backed by the short-summary table.
func NewExpander(generator ai.Generator, summaries SummaryTable, opts ...ExpanderOption) (*Expander, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	if summaries == nil {
		return nil, ErrSummaryTableRequired
	}

	e := &Expander{
		generator: generator,
		summaries: summaries,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.logger = e.logger.With("component", "expander")

	return e, nil
}

// Expand returns the long-form summary for title. It never fails: a failed
// generative call yields a "Failed to generate summary" message instead.
func (e *Expander) Expand(ctx context.Context, title string) string {
	summary, err := e.expand(ctx, title)
	if err != nil {
		return expansionFailure(title, err)
	}
	return summary
}

// expand issues exactly one generative call. Expanding a stored short
// summary is preferred; titles without one are written from scratch.
func (e *Expander) expand(ctx context.Context, title string) (string, error) {
	req := ai.GenerationRequest{
		System:      expanderSystemPrompt,
		MaxTokens:   expanderMaxTokens,
		Temperature: expanderTemperature,
	}
	if short, ok := e.summaries.Summary(title); ok {
		req.User = buildExpandPrompt(title, short)
	} else {
		e.logger.Debug("no short summary, authoring from scratch", "title", title)
		req.User = buildAuthorPrompt(title)
	}

	text, err := e.generator.Generate(ctx, req)
	if err != nil {
		e.logger.Error("summary generation failed", "title", title, "err", err)
		return "", err
	}
	return text, nil
}

func expansionFailure(title string, err error) string {
	return fmt.Sprintf("Failed to generate summary for '%s': %v", title, err)
}
