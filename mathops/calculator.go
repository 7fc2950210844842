package mathops

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/poiesic/librarian/core"
	"github.com/poiesic/librarian/storage"
)

// Request is one computation. Base and Exponent apply to power, N to
// fibonacci and factorial.
type Request struct {
	Operation Operation
	Base      int64
	Exponent  int64
	N         int64
	// Log appends the request to the request log.
	Log bool
}

// Outcome is the result of a computation.
type Outcome struct {
	Operation Operation `json:"operation"`
	Input     string    `json:"input"`
	Result    string    `json:"result"`
	Logged    bool      `json:"logged"`
}

// Calculator runs math operations and records them in a request log.
type Calculator struct {
	requests storage.RequestLogRepository
	logger   *slog.Logger
}

// Option configures a Calculator.
type Option func(*Calculator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewCalculator creates a calculator. A nil request log disables logging.
func NewCalculator(requests storage.RequestLogRepository, opts ...Option) (*Calculator, error) {
	c := &Calculator{
		requests: requests,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.logger = c.logger.With("component", "calculator")
	return c, nil
}

// Compute runs the request. Limit violations are returned as errors. A
// logging failure is not: the outcome reports Logged=false instead.
func (c *Calculator) Compute(ctx context.Context, req Request) (*Outcome, error) {
	var (
		result *big.Int
		input  string
		err    error
	)
	switch req.Operation {
	case OpPower:
		result, err = Power(req.Base, req.Exponent)
		input = fmt.Sprintf("%d^%d", req.Base, req.Exponent)
	case OpFibonacci:
		result, err = Fibonacci(req.N)
		input = fmt.Sprintf("fib(%d)", req.N)
	case OpFactorial:
		result, err = Factorial(req.N)
		input = fmt.Sprintf("%d!", req.N)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, req.Operation)
	}
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Operation: req.Operation,
		Input:     input,
		Result:    result.String(),
	}
	if req.Log {
		outcome.Logged = c.record(ctx, outcome)
	}
	return outcome, nil
}

// History returns up to limit logged requests, newest first.
func (c *Calculator) History(ctx context.Context, limit int) ([]*core.RequestLogEntry, error) {
	if c.requests == nil {
		return nil, ErrRequestLogRequired
	}
	return c.requests.RecentRequests(ctx, limit)
}

func (c *Calculator) record(ctx context.Context, outcome *Outcome) bool {
	if c.requests == nil {
		c.logger.Warn("logging requested without a request log", "operation", outcome.Operation)
		return false
	}
	_, err := c.requests.AppendRequest(ctx, &core.RequestLogEntry{
		Operation: string(outcome.Operation),
		Input:     outcome.Input,
		Result:    outcome.Result,
	})
	if err != nil {
		c.logger.Error("failed to log request", "operation", outcome.Operation, "err", err)
		return false
	}
	return true
}
