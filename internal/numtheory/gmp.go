//go:build gmp

package numtheory

import (
	"context"

	"github.com/agbru/shorcalc/internal/progress"
	"github.com/ncw/gmp"
)

func init() {
	extraFinders["gmp"] = GMPRepeatedMultiplication{}
}

// GMPRepeatedMultiplication is RepeatedMultiplication on GMP integers.
// It is only built with the "gmp" build tag because it requires cgo and
// libgmp.
type GMPRepeatedMultiplication struct{}

// Name returns the strategy description.
func (GMPRepeatedMultiplication) Name() string {
	return "Repeated Multiplication (GMP)"
}

// FindOrder implements OrderFinder.
func (GMPRepeatedMultiplication) FindOrder(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, k, n uint64) (uint64, error) {
	if err := checkOperands(k, n); err != nil {
		return 0, err
	}
	report := progress.NewChannelCallback(progressChan, calcIndex)

	gn := new(gmp.Int).SetUint64(n)
	gk := new(gmp.Int).SetUint64(k)
	gk.Mod(gk, gn)
	q := gmp.NewInt(1)
	one := gmp.NewInt(1)

	for i := uint64(1); i < n; i++ {
		q.Mul(q, gk)
		q.Mod(q, gn)
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
