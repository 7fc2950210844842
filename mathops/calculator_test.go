package mathops

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/librarian/core"
	"github.com/poiesic/librarian/storage"
	"github.com/poiesic/librarian/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCalculator(t *testing.T) (*Calculator, storage.RequestLogRepository) {
	t.Helper()
	bookRepo, requestRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		requestRepo.Close()
		bookRepo.Close()
		backend.Close()
	})

	calc, err := NewCalculator(requestRepo)
	require.NoError(t, err)
	return calc, requestRepo
}

// failingLog rejects every append.
type failingLog struct {
	storage.RequestLogRepository
}

func (failingLog) AppendRequest(ctx context.Context, entry *core.RequestLogEntry) (*core.RequestLogEntry, error) {
	return nil, errors.New("disk full")
}

func TestCompute(t *testing.T) {
	calc, _ := setupCalculator(t)

	tests := []struct {
		name      string
		req       Request
		wantInput string
		want      string
	}{
		{"power", Request{Operation: OpPower, Base: 2, Exponent: 3}, "2^3", "8"},
		{"fibonacci", Request{Operation: OpFibonacci, N: 10}, "fib(10)", "55"},
		{"factorial", Request{Operation: OpFactorial, N: 5}, "5!", "120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := calc.Compute(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantInput, out.Input)
			assert.Equal(t, tt.want, out.Result)
			assert.False(t, out.Logged)
		})
	}
}

func TestCompute_Errors(t *testing.T) {
	calc, requests := setupCalculator(t)
	ctx := context.Background()

	_, err := calc.Compute(ctx, Request{Operation: OpFactorial, N: 6000, Log: true})
	assert.ErrorIs(t, err, ErrInputTooLarge)

	_, err = calc.Compute(ctx, Request{Operation: "sqrt", N: 4})
	assert.ErrorIs(t, err, ErrUnknownOperation)

	entries, err := requests.RecentRequests(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed computations are not logged")
}

func TestCompute_Logs(t *testing.T) {
	calc, requests := setupCalculator(t)
	ctx := context.Background()

	out, err := calc.Compute(ctx, Request{Operation: OpPower, Base: 2, Exponent: 10, Log: true})
	require.NoError(t, err)
	assert.True(t, out.Logged)

	_, err = calc.Compute(ctx, Request{Operation: OpFibonacci, N: 7, Log: true})
	require.NoError(t, err)

	entries, err := requests.RecentRequests(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "fibonacci", entries[0].Operation)
	assert.Equal(t, "fib(7)", entries[0].Input)
	assert.Equal(t, "13", entries[0].Result)
	assert.Equal(t, "power", entries[1].Operation)
	assert.Equal(t, "2^10", entries[1].Input)
	assert.Equal(t, "1024", entries[1].Result)

	history, err := calc.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "fib(7)", history[0].Input)
}

func TestCompute_LoggingFailureDoesNotFail(t *testing.T) {
	calc, err := NewCalculator(failingLog{})
	require.NoError(t, err)

	out, err := calc.Compute(context.Background(), Request{Operation: OpFactorial, N: 3, Log: true})
	require.NoError(t, err)
	assert.Equal(t, "6", out.Result)
	assert.False(t, out.Logged)
}

func TestCalculator_WithoutRequestLog(t *testing.T) {
	calc, err := NewCalculator(nil, WithLogger(nil))
	require.NoError(t, err)

	out, err := calc.Compute(context.Background(), Request{Operation: OpPower, Base: 3, Exponent: 2, Log: true})
	require.NoError(t, err)
	assert.Equal(t, "9", out.Result)
	assert.False(t, out.Logged)

	_, err = calc.History(context.Background(), 5)
	assert.ErrorIs(t, err, ErrRequestLogRequired)
}
