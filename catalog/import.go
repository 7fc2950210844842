package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/poiesic/librarian/core"
)

// bookEntry is the array form of an import file.
type bookEntry struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// ReadFile reads a catalog import file. See Decode for the accepted formats.
func ReadFile(path string) ([]*core.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(data))
}

// Decode parses either a JSON object mapping title to summary, kept in file
// order, or a JSON array of {"title", "summary"} objects.
func Decode(r io.Reader) ([]*core.Book, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidFormat)
	}

	var books []*core.Book
	switch data[0] {
	case '[':
		books, err = decodeArray(data)
	case '{':
		books, err = decodeObject(data)
	default:
		return nil, fmt.Errorf("%w: expected object or array", ErrInvalidFormat)
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(books))
	for i, book := range books {
		book.Position = i
		if err := core.ValidateBook(book); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if _, dup := seen[book.Title]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, book.Title)
		}
		seen[book.Title] = struct{}{}
	}
	return books, nil
}

func decodeArray(data []byte) ([]*core.Book, error) {
	var entries []bookEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	books := make([]*core.Book, len(entries))
	for i, e := range entries {
		books[i] = &core.Book{Title: e.Title, Summary: e.Summary}
	}
	return books, nil
}

// decodeObject walks the object token by token since a map would lose the
// key order that defines the corpus order.
func decodeObject(data []byte) ([]*core.Book, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	var books []*core.Book
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
		}
		title, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", ErrInvalidFormat, tok)
		}
		var summary string
		if err := dec.Decode(&summary); err != nil {
			return nil, fmt.Errorf("%w: summary for %q: %w", ErrInvalidFormat, title, err)
		}
		books = append(books, &core.Book{Title: title, Summary: summary})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return books, nil
}
