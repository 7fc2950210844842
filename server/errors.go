package server

import "errors"

var (
	// ErrServiceRequired is returned when no backing service is provided.
	ErrServiceRequired = errors.New("service required")
)

// Error codes carried in error responses.
const (
	CodeEmptyQuery       = "EMPTY_QUERY"
	CodeInvalidJSON      = "INVALID_JSON"
	CodeValidation       = "VALIDATION_ERROR"
	CodeOutOfRange       = "INPUT_OUT_OF_RANGE"
	CodeUnknownOperation = "UNKNOWN_OPERATION"
	CodeInternal         = "INTERNAL_ERROR"
)
