package mathops

import (
	"fmt"
	"math/big"
	"strings"
)

// Limits on operands.
const (
	MaxPowerBase     = 1_000_000
	MaxPowerExponent = 1000
	MaxFibonacci     = 100_000
	MaxFactorial     = 5000
)

// Operation names a supported computation.
type Operation string

const (
	OpPower     Operation = "power"
	OpFibonacci Operation = "fibonacci"
	OpFactorial Operation = "factorial"
)

// Operations lists the supported operations in display order.
var Operations = []Operation{OpPower, OpFibonacci, OpFactorial}

// ParseOperation maps a case-insensitive name to an Operation.
func ParseOperation(name string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(name)))
	switch op {
	case OpPower, OpFibonacci, OpFactorial:
		return op, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// Power returns base raised to exponent.
func Power(base, exponent int64) (*big.Int, error) {
	if base < 0 || exponent < 0 {
		return nil, fmt.Errorf("%w: power requires base >= 0 and exponent >= 0", ErrNegativeInput)
	}
	if base > MaxPowerBase || exponent > MaxPowerExponent {
		return nil, fmt.Errorf("%w: limit is base <= 1,000,000 and exponent <= 1000", ErrInputTooLarge)
	}
	return new(big.Int).Exp(big.NewInt(base), big.NewInt(exponent), nil), nil
}

// Fibonacci returns the n-th Fibonacci number with fib(0) = 0 and fib(1) = 1.
func Fibonacci(n int64) (*big.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: fibonacci is not defined for negative numbers", ErrNegativeInput)
	}
	if n > MaxFibonacci {
		return nil, fmt.Errorf("%w: max allowed input is 100,000", ErrInputTooLarge)
	}

	first, second := big.NewInt(0), big.NewInt(1)
	if n == 0 {
		return first, nil
	}
	for i := int64(2); i <= n; i++ {
		first.Add(first, second)
		first, second = second, first
	}
	return second, nil
}

// Factorial returns n! with 0! = 1.
func Factorial(n int64) (*big.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: factorial is not defined for negative numbers", ErrNegativeInput)
	}
	if n > MaxFactorial {
		return nil, fmt.Errorf("%w: max allowed input is 5000", ErrInputTooLarge)
	}

	result := big.NewInt(1)
	for i := int64(2); i <= n; i++ {
		result.Mul(result, big.NewInt(i))
	}
	return result, nil
}
