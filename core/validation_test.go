package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateBook(t *testing.T) {
	tests := []struct {
		name    string
		book    *Book
		wantErr error
	}{
		{
			name:    "valid book",
			book:    &Book{Title: "1984", Summary: "Big Brother is watching."},
			wantErr: nil,
		},
		{
			name:    "valid book without summary",
			book:    &Book{Title: "Dune"},
			wantErr: nil,
		},
		{
			name:    "nil book",
			book:    nil,
			wantErr: ErrInvalidBook,
		},
		{
			name:    "empty title",
			book:    &Book{Title: ""},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "whitespace title",
			book:    &Book{Title: "   "},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "negative position",
			book:    &Book{Title: "1984", Position: -1},
			wantErr: ErrInvalidBook,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBook(tt.book)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateBook() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateBook() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{name: "plain query", query: "rebellion and freedom", wantErr: false},
		{name: "empty", query: "", wantErr: true},
		{name: "whitespace only", query: "  \t ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.query)
			if tt.wantErr && !errors.Is(err, ErrEmptyQuery) {
				t.Errorf("ValidateQuery(%q) error = %v, want %v", tt.query, err, ErrEmptyQuery)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateQuery(%q) error = %v, want nil", tt.query, err)
			}
		})
	}
}

func TestValidateRequestLogEntry(t *testing.T) {
	past := time.Now().Add(-1 * time.Minute)

	tests := []struct {
		name    string
		entry   *RequestLogEntry
		wantErr error
	}{
		{
			name:    "valid entry",
			entry:   &RequestLogEntry{Operation: "power", Input: "2^3", Result: "8", CreatedAt: past},
			wantErr: nil,
		},
		{
			name:    "zero timestamp",
			entry:   &RequestLogEntry{Operation: "factorial", Input: "5!", Result: "120"},
			wantErr: nil,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrInvalidRequestLogEntry,
		},
		{
			name:    "empty operation",
			entry:   &RequestLogEntry{Input: "2^3", Result: "8", CreatedAt: past},
			wantErr: ErrEmptyOperation,
		},
		{
			name:    "future timestamp",
			entry:   &RequestLogEntry{Operation: "power", CreatedAt: time.Now().Add(time.Hour)},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequestLogEntry(tt.entry)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateRequestLogEntry() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRequestLogEntry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsValidTimestamp(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{name: "past timestamp", ts: time.Now().Add(-1 * time.Hour), want: true},
		{name: "future timestamp", ts: time.Now().Add(1 * time.Hour), want: false},
		{name: "zero time", ts: time.Time{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidTimestamp(tt.ts)
			if got != tt.want {
				t.Errorf("IsValidTimestamp() = %v, want %v", got, tt.want)
			}
		})
	}
}
