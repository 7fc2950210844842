package ai

import "errors"

// ErrEmptyResponse is returned when a model answers without any choices.
var ErrEmptyResponse = errors.New("empty response from model")

// GenerationRequest describes a single completion call.
type GenerationRequest struct {
	// System is the system role message that frames the model's persona.
	System string

	// User is the user role message carrying the actual instruction.
	User string

	// MaxTokens caps the length of the generated output. Zero leaves the
	// provider default in place.
	MaxTokens int

	// Temperature is the sampling temperature.
	Temperature float64
}
