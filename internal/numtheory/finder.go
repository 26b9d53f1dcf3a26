package numtheory

import (
	"context"
	"errors"
	"fmt"

	"github.com/agbru/shorcalc/internal/progress"
)

var (
	// ErrInvalidModulus is returned when the modulus is smaller than 2.
	ErrInvalidModulus = errors.New("modulus must be at least 2")
	// ErrNotCoprime is returned when the base shares a factor with the
	// modulus. Such a base has no multiplicative order: repeated
	// multiplication never reaches 1.
	ErrNotCoprime = errors.New("base is not coprime to modulus")
)

// contextCheckInterval is the number of loop iterations between two
// cancellation checks (and progress reports) in the iterative finders.
const contextCheckInterval = 1 << 12

// OrderFinder computes the multiplicative order of k modulo n: the smallest
// r > 0 with k^r ≡ 1 (mod n).
type OrderFinder interface {
	// FindOrder returns the order of k modulo n. Progress updates tagged
	// with calcIndex are sent on progressChan without blocking; the channel
	// may be nil.
	FindOrder(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, k, n uint64) (uint64, error)
	// Name returns a human-readable description of the strategy.
	Name() string
}

// checkOperands validates a (k, n) pair before order finding.
func checkOperands(k, n uint64) error {
	if n < 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidModulus, n)
	}
	if g := GCD(k, n); g != 1 {
		return fmt.Errorf("%w: gcd(%d, %d) = %d", ErrNotCoprime, k, n, g)
	}
	return nil
}
