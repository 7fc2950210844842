package core

import (
	"fmt"
	"strings"
	"time"
)

func ValidateBook(book *Book) error {
	if book == nil {
		return fmt.Errorf("%w: book is nil", ErrInvalidBook)
	}

	if strings.TrimSpace(book.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidBook, ErrEmptyTitle)
	}

	if book.Position < 0 {
		return fmt.Errorf("%w: negative position %d", ErrInvalidBook, book.Position)
	}

	return nil
}

// ValidateQuery rejects queries that contain no non-whitespace text.
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	return nil
}

func ValidateRequestLogEntry(entry *RequestLogEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidRequestLogEntry)
	}

	if entry.Operation == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRequestLogEntry, ErrEmptyOperation)
	}

	if !IsValidTimestamp(entry.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidRequestLogEntry, ErrInvalidTimestamp)
	}

	return nil
}

func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
