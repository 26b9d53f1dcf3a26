package numtheory

import (
	"context"

	"github.com/agbru/shorcalc/internal/progress"
)

// RepeatedMultiplication finds the order by multiplying k into an
// accumulator modulo n until it returns to 1, counting the steps. It works on
// machine words, with 128-bit intermediate products.
type RepeatedMultiplication struct{}

// Name returns the strategy description.
func (RepeatedMultiplication) Name() string {
	return "Repeated Multiplication (uint64)"
}

// FindOrder implements OrderFinder. The loop is bounded by n because the
// order of a unit never exceeds φ(n) < n.
func (RepeatedMultiplication) FindOrder(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, k, n uint64) (uint64, error) {
	if err := checkOperands(k, n); err != nil {
		return 0, err
	}
	report := progress.NewChannelCallback(progressChan, calcIndex)

	k %= n
	q := uint64(1)
	for i := uint64(1); i < n; i++ {
		q = MulMod(k, q, n)
		if q == 1 {
			report(1.0)
			return i, nil
		}
		if i%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			progress.ReportStepProgress(report, i, n)
		}
	}
	// Unreachable for coprime operands.
	return 0, ErrNotCoprime
}
