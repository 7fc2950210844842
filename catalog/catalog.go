package catalog

import (
	"context"
	"fmt"
	"slices"

	"github.com/poiesic/librarian/core"
	"github.com/poiesic/librarian/storage"
)

// Catalog is a read-only snapshot of the title corpus, the short-summary
// table and the vector index. Vector i belongs to title i.
type Catalog struct {
	titles    []string
	summaries map[string]string
	vectors   [][]float32
}

// New builds a catalog from books in corpus order.
func New(books []*core.Book) (*Catalog, error) {
	c := &Catalog{
		titles:    make([]string, 0, len(books)),
		summaries: make(map[string]string, len(books)),
		vectors:   make([][]float32, 0, len(books)),
	}
	for _, book := range books {
		if err := core.ValidateBook(book); err != nil {
			return nil, err
		}
		if _, exists := c.summaries[book.Title]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, book.Title)
		}
		c.titles = append(c.titles, book.Title)
		c.summaries[book.Title] = book.Summary
		c.vectors = append(c.vectors, slices.Clone(book.Vector))
	}
	return c, nil
}

// Load reads every stored book in position order and builds a catalog.
func Load(ctx context.Context, repo storage.BookRepository) (*Catalog, error) {
	if repo == nil {
		return nil, ErrBookRepositoryRequired
	}
	books, err := repo.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return New(books)
}

// Titles returns a copy of the title corpus in corpus order.
func (c *Catalog) Titles() []string {
	return slices.Clone(c.titles)
}

// Summary returns the short summary for title, if the table has one.
func (c *Catalog) Summary(title string) (string, bool) {
	summary, ok := c.summaries[title]
	return summary, ok
}

// Contains reports whether title is in the corpus.
func (c *Catalog) Contains(title string) bool {
	_, ok := c.summaries[title]
	return ok
}

// Vector returns the embedding stored for the title at position i.
// Books indexed without an embedder have an empty vector.
func (c *Catalog) Vector(i int) []float32 {
	if i < 0 || i >= len(c.vectors) {
		return nil
	}
	return c.vectors[i]
}

// Dimensions returns the vector length of the first embedded book, or 0
// when nothing has been embedded.
func (c *Catalog) Dimensions() int {
	for _, v := range c.vectors {
		if len(v) > 0 {
			return len(v)
		}
	}
	return 0
}

// Len returns the number of titles.
func (c *Catalog) Len() int {
	return len(c.titles)
}
