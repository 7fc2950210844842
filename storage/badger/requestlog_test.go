package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/librarian/core"
	"github.com/poiesic/librarian/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRequestRepo(t *testing.T) storage.RequestLogRepository {
	t.Helper()
	bookRepo, requestRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		requestRepo.Close()
		bookRepo.Close()
		backend.Close()
	})
	return requestRepo
}

func TestAppendRequest(t *testing.T) {
	repo := setupRequestRepo(t)
	ctx := context.Background()

	entry, err := repo.AppendRequest(ctx, &core.RequestLogEntry{
		Operation: "power",
		Input:     "2^10",
		Result:    "1024",
	})
	require.NoError(t, err)
	assert.NotZero(t, entry.Id)
	assert.False(t, entry.CreatedAt.IsZero())

	second, err := repo.AppendRequest(ctx, &core.RequestLogEntry{Operation: "factorial", Input: "5!", Result: "120"})
	require.NoError(t, err)
	assert.Greater(t, second.Id, entry.Id)
}

func TestAppendRequest_Invalid(t *testing.T) {
	repo := setupRequestRepo(t)

	_, err := repo.AppendRequest(context.Background(), &core.RequestLogEntry{Input: "2^10"})
	assert.ErrorIs(t, err, core.ErrInvalidRequestLogEntry)

	_, err = repo.AppendRequest(context.Background(), nil)
	assert.ErrorIs(t, err, core.ErrInvalidRequestLogEntry)
}

func TestRecentRequests(t *testing.T) {
	repo := setupRequestRepo(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := repo.AppendRequest(ctx, &core.RequestLogEntry{
			Operation: "fibonacci",
			Input:     fmt.Sprintf("fib(%d)", i),
			Result:    "x",
		})
		require.NoError(t, err)
	}

	t.Run("newest first", func(t *testing.T) {
		entries, err := repo.RecentRequests(ctx, 3)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "fib(5)", entries[0].Input)
		assert.Equal(t, "fib(4)", entries[1].Input)
		assert.Equal(t, "fib(3)", entries[2].Input)
	})

	t.Run("limit larger than log", func(t *testing.T) {
		entries, err := repo.RecentRequests(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, entries, 5)
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, err := repo.RecentRequests(ctx, 0)
		assert.ErrorIs(t, err, storage.ErrInvalidQuery)
	})
}

func TestRecentRequests_Empty(t *testing.T) {
	repo := setupRequestRepo(t)

	entries, err := repo.RecentRequests(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
