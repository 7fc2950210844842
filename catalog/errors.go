package catalog

import "errors"

var (
	// ErrBookRepositoryRequired is returned when a nil book repository is provided.
	ErrBookRepositoryRequired = errors.New("book repository is required")

	// ErrDuplicateTitle is returned when a title appears more than once.
	ErrDuplicateTitle = errors.New("duplicate title")

	// ErrInvalidFormat is returned when an import file is neither a title to
	// summary object nor an array of books.
	ErrInvalidFormat = errors.New("invalid catalog format")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrEmbeddingCountMismatch is returned when the embedder returns a
	// different number of vectors than texts it was given.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")
)
