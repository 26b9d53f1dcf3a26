package numtheory

import (
	"context"
	"math/big"

	"github.com/agbru/shorcalc/internal/progress"
)

// BigRepeatedMultiplication is RepeatedMultiplication carried out on
// math/big integers. It is slower but independent of the machine-word
// arithmetic, which makes it a useful cross-check.
type BigRepeatedMultiplication struct{}

// Name returns the strategy description.
func (BigRepeatedMultiplication) Name() string {
	return "Repeated Multiplication (math/big)"
}

// FindOrder implements OrderFinder.
func (BigRepeatedMultiplication) FindOrder(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, k, n uint64) (uint64, error) {
	if err := checkOperands(k, n); err != nil {
		return 0, err
	}
	report := progress.NewChannelCallback(progressChan, calcIndex)

	bn := new(big.Int).SetUint64(n)
	bk := new(big.Int).SetUint64(k)
	bk.Mod(bk, bn)
	q := big.NewInt(1)
	one := big.NewInt(1)

	for i := uint64(1); i < n; i++ {
		q.Mul(q, bk)
		q.Mod(q, bn)
		if q.Cmp(one) == 0 {
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
	return 0, ErrNotCoprime
}
