package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3 // order finders returned different orders
	ExitErrorConfig   = 4
	ExitErrorCanceled = 130 // SIGINT
)

// ConfigError is an invalid flag, flag combination or environment override.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// FactoringError records which base failed while factoring a modulus.
type FactoringError struct {
	K, N  uint64
	Cause error
}

// NewFactoringError wraps cause with the operands it failed on. A nil cause
// yields nil.
func NewFactoringError(k, n uint64, cause error) error {
	if cause == nil {
		return nil
	}
	return FactoringError{K: k, N: n, Cause: cause}
}

func (e FactoringError) Error() string {
	return fmt.Sprintf("base %d mod %d: %v", e.K, e.N, e.Cause)
}

func (e FactoringError) Unwrap() error { return e.Cause }

// TimeoutError is an operation that exceeded its deadline.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError is a request field that cannot be used as an operand.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError prefixes err with a formatted message, keeping it in the chain.
// It returns nil when err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err comes from a canceled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
