// Package errors provides the structured error type used across the resolver
// library. Errors carry a machine-readable code, a human-readable message,
// optional details, and an optional cause, and participate in the standard
// errors.Is/As/Unwrap chains.
package errors
