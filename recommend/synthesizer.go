package recommend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/librarian/ai"
)

// PlaceholderTitle is the title reported when synthesis fails outright.
const PlaceholderTitle = "Generated Book"

// Synthesizer invents a book recommendation for a query with no matches.
type Synthesizer struct {
	generator ai.Generator
	logger    *slog.Logger
}

// SynthesizerOption configures a Synthesizer.
type SynthesizerOption func(*Synthesizer) error

// WithSynthesizerLogger sets a custom logger.
// Default is slog.Default().
func WithSynthesizerLogger(logger *slog.Logger) SynthesizerOption {
	return func(s *Synthesizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSynthesizer creates a synthesizer.
func NewSynthesizer(generator ai.Generator, opts ...SynthesizerOption) (*Synthesizer, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	s := &Synthesizer{
		generator: generator,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "synthesizer")

	return s, nil
}

// Synthesize issues one generative call and parses the labeled response.
// A failed call yields PlaceholderTitle, an error summary and ParseFailed.
func (s *Synthesizer) Synthesize(ctx context.Context, query string) Synthesized {
	text, err := s.generator.Generate(ctx, ai.GenerationRequest{
		System:      synthesizerSystemPrompt,
		User:        buildSynthesizePrompt(query),
		MaxTokens:   synthesizerMaxTokens,
		Temperature: synthesizerTemperature,
	})
	if err != nil {
		s.logger.Error("synthesis failed", "err", err)
		return Synthesized{
			Title:   PlaceholderTitle,
			Summary: fmt.Sprintf("Failed to generate fictional book: %v", err),
			Status:  ParseFailed,
		}
	}

	result := ParseSynthesized(text)
	if result.Status != ParseComplete {
		s.logger.Warn("synthesized response missing labels", "status", result.Status)
	}
	return result
}
