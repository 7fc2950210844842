package core

import (
	"encoding/binary"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

type ID uint64

func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Book is a catalog entry. Position is the book's index in the title corpus
// and the row of its vector in the vector index.
type Book struct {
	Id         ID        `json:"id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Position   int       `json:"position"`
	Vector     []float32 `json:"vector,omitempty"` // Embedding of Summary (populated by the indexer)
	InsertedAt time.Time `json:"inserted_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BookID returns the content-derived ID for a title.
func BookID(title string) ID {
	return IDFromContent(title)
}

// RequestLogEntry records one math operation request.
type RequestLogEntry struct {
	Id        ID        `json:"id"`
	Operation string    `json:"operation"`
	Input     string    `json:"input"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeQuery trims the query, collapses internal whitespace and lower-cases it.
// Two queries with the same normalized form are treated as the same request.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}
