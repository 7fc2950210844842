package badger

import (
	"context"
	"testing"

	"github.com/poiesic/librarian/core"
	"github.com/poiesic/librarian/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBookRepo(t *testing.T) storage.BookRepository {
	t.Helper()
	bookRepo, requestRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		requestRepo.Close()
		bookRepo.Close()
		backend.Close()
	})
	return bookRepo
}

func sampleBooks() []*core.Book {
	return []*core.Book{
		{Title: "1984", Summary: "A dystopian novel about surveillance."},
		{Title: "The Hobbit", Summary: "Bilbo goes on an unexpected journey."},
		{Title: "Dune", Summary: "Politics and spice on a desert planet."},
	}
}

func TestReplaceBooks(t *testing.T) {
	repo := setupBookRepo(t)
	ctx := context.Background()

	stored, err := repo.ReplaceBooks(ctx, sampleBooks()...)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	for i, book := range stored {
		assert.Equal(t, i, book.Position)
		assert.Equal(t, core.BookID(book.Title), book.Id)
		assert.False(t, book.InsertedAt.IsZero())
		assert.Equal(t, book.InsertedAt, book.UpdatedAt)
	}

	count, err := repo.CountBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestReplaceBooks_ReplacesPreviousCatalog(t *testing.T) {
	repo := setupBookRepo(t)
	ctx := context.Background()

	_, err := repo.ReplaceBooks(ctx, sampleBooks()...)
	require.NoError(t, err)

	_, err = repo.ReplaceBooks(ctx,
		&core.Book{Title: "Pride and Prejudice", Summary: "Manners and marriage."},
	)
	require.NoError(t, err)

	books, err := repo.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Pride and Prejudice", books[0].Title)

	_, err = repo.FindBookByTitle(ctx, "Dune")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReplaceBooks_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		books   []*core.Book
		wantErr error
	}{
		{
			name:    "duplicate title",
			books:   []*core.Book{{Title: "Dune"}, {Title: "Dune"}},
			wantErr: storage.ErrDuplicateKey,
		},
		{
			name:    "blank title",
			books:   []*core.Book{{Title: "  "}},
			wantErr: core.ErrInvalidBook,
		},
		{
			name:    "nil book",
			books:   []*core.Book{nil},
			wantErr: core.ErrInvalidBook,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := setupBookRepo(t)
			_, err := repo.ReplaceBooks(context.Background(), tt.books...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListBooks_CorpusOrder(t *testing.T) {
	repo := setupBookRepo(t)
	ctx := context.Background()

	books := make([]*core.Book, 0, 12)
	for i := 0; i < 12; i++ {
		books = append(books, &core.Book{Title: string(rune('a'+11-i)) + " title"})
	}
	_, err := repo.ReplaceBooks(ctx, books...)
	require.NoError(t, err)

	listed, err := repo.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 12)
	for i, book := range listed {
		assert.Equal(t, i, book.Position)
		assert.Equal(t, books[i].Title, book.Title)
	}
}

func TestListBooks_Empty(t *testing.T) {
	repo := setupBookRepo(t)

	books, err := repo.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)

	count, err := repo.CountBooks(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFindBookByTitle(t *testing.T) {
	repo := setupBookRepo(t)
	ctx := context.Background()

	_, err := repo.ReplaceBooks(ctx, sampleBooks()...)
	require.NoError(t, err)

	book, err := repo.FindBookByTitle(ctx, "The Hobbit")
	require.NoError(t, err)
	assert.Equal(t, "Bilbo goes on an unexpected journey.", book.Summary)
	assert.Equal(t, 1, book.Position)

	_, err = repo.FindBookByTitle(ctx, "the hobbit")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateBooks(t *testing.T) {
	repo := setupBookRepo(t)
	ctx := context.Background()

	stored, err := repo.ReplaceBooks(ctx, sampleBooks()...)
	require.NoError(t, err)

	update := *stored[2]
	update.Vector = []float32{0.1, 0.2, 0.3}
	update.Position = 99
	_, err = repo.UpdateBooks(ctx, &update)
	require.NoError(t, err)

	got, err := repo.GetBook(ctx, stored[2].Id)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, got.Vector)
	assert.Equal(t, 2, got.Position, "position is fixed by ReplaceBooks")
	assert.False(t, got.UpdatedAt.Before(got.InsertedAt))
}

func TestUpdateBooks_NotFound(t *testing.T) {
	repo := setupBookRepo(t)

	_, err := repo.UpdateBooks(context.Background(), &core.Book{Id: 42, Title: "Missing"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetBook_NotFound(t *testing.T) {
	repo := setupBookRepo(t)

	_, err := repo.GetBook(context.Background(), 12345)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
