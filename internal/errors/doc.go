// Package apperrors holds the exit codes of shorcalc and the error types that
// select them: configuration mistakes, invalid request fields, timeouts and
// failures of the factoring step for one base. Every type that carries a
// cause implements Unwrap so errors.Is sees through it.
package apperrors
