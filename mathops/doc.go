// Package mathops implements the math demo: power, Fibonacci and factorial
// over arbitrary-precision integers, with optional request logging.
package mathops
