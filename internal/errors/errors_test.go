package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

var errNotCoprime = errors.New("base is not coprime to modulus")

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config", NewConfigError("invalid value %d for flag %s", 42, "--limit"), "invalid value 42 for flag --limit"},
		{"factoring", NewFactoringError(59, 7493, errNotCoprime), "base 59 mod 7493: base is not coprime to modulus"},
		{"timeout", TimeoutError{Operation: "order finding", Limit: 500 * time.Millisecond}, `operation "order finding" timed out after 500ms`},
		{"timeout seconds", TimeoutError{Operation: "base sweep", Limit: 10 * time.Second}, `operation "base sweep" timed out after 10s`},
		{"validation", ValidationError{Field: "n", Message: "must be at least 2"}, `validation error for "n": must be at least 2`},
		{"wrapped", WrapError(errNotCoprime, "order of %d", 59), "order of 59: base is not coprime to modulus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNilCauses(t *testing.T) {
	t.Parallel()
	if err := NewFactoringError(11, 7493, nil); err != nil {
		t.Errorf("NewFactoringError(nil) = %v, want nil", err)
	}
	if err := WrapError(nil, "context"); err != nil {
		t.Errorf("WrapError(nil) = %v, want nil", err)
	}
}

func TestErrorChains(t *testing.T) {
	t.Parallel()

	t.Run("factoring error unwraps to its cause", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("sweep: %w", NewFactoringError(59, 7493, errNotCoprime))
		if !errors.Is(err, errNotCoprime) {
			t.Error("errors.Is did not reach the cause")
		}
		var fe FactoringError
		if !errors.As(err, &fe) || fe.K != 59 || fe.N != 7493 {
			t.Errorf("errors.As = %+v", fe)
		}
	})

	t.Run("validation error behind WrapError", func(t *testing.T) {
		t.Parallel()
		err := WrapError(ValidationError{Field: "limit", Message: "exceeds maximum of 10000"}, "scan request")
		var ve ValidationError
		if !errors.As(err, &ve) || ve.Field != "limit" {
			t.Errorf("errors.As = %+v", ve)
		}
	})

	t.Run("timeout behind factoring error", func(t *testing.T) {
		t.Parallel()
		err := NewFactoringError(2, 999999937, TimeoutError{Operation: "order finding", Limit: time.Second})
		var te TimeoutError
		if !errors.As(err, &te) || te.Limit != time.Second {
			t.Errorf("errors.As = %+v", te)
		}
	})

	t.Run("config error", func(t *testing.T) {
		t.Parallel()
		var ce ConfigError
		if !errors.As(NewConfigError("bad"), &ce) || ce.Message != "bad" {
			t.Errorf("errors.As = %+v", ce)
		}
	})
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped deadline", NewFactoringError(11, 7493, context.DeadlineExceeded), true},
		{"domain error", errNotCoprime, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.want {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := []int{ExitSuccess, ExitErrorGeneric, ExitErrorTimeout, ExitErrorMismatch, ExitErrorConfig, ExitErrorCanceled}
	seen := make(map[int]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("exit code %d used twice", c)
		}
		seen[c] = true
	}
	if ExitSuccess != 0 || ExitErrorCanceled != 130 {
		t.Errorf("ExitSuccess = %d, ExitErrorCanceled = %d", ExitSuccess, ExitErrorCanceled)
	}
}
