package recommend

import "errors"

var (
	// ErrGeneratorRequired is returned when a text generator is not provided.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrSummaryTableRequired is returned when a short-summary table is not provided.
	ErrSummaryTableRequired = errors.New("summary table required")

	// ErrMatcherRequired is returned when a matcher is not provided.
	ErrMatcherRequired = errors.New("matcher required")

	// ErrExpanderRequired is returned when an expander is not provided.
	ErrExpanderRequired = errors.New("expander required")

	// ErrSynthesizerRequired is returned when a synthesizer is not provided.
	ErrSynthesizerRequired = errors.New("synthesizer required")
)
