package numtheory

import (
	"context"

	"github.com/agbru/shorcalc/internal/progress"
)

// CarmichaelReduction finds the order by starting from λ(n), which every
// order divides, and stripping prime factors p of the candidate for as long
// as k^(r/p) ≡ 1 (mod n) still holds. The work is dominated by factoring n
// and λ(n) by trial division.
type CarmichaelReduction struct{}

// Name returns the strategy description.
func (CarmichaelReduction) Name() string {
	return "Carmichael Reduction"
}

// FindOrder implements OrderFinder.
func (CarmichaelReduction) FindOrder(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, k, n uint64) (uint64, error) {
	if err := checkOperands(k, n); err != nil {
		return 0, err
	}
	report := progress.NewChannelCallback(progressChan, calcIndex)

	r := Carmichael(n)
	factors := Factorize(r)
	for i, pp := range factors {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		for r%pp.Prime == 0 && PowMod(k, r/pp.Prime, n) == 1 {
			r /= pp.Prime
		}
		progress.ReportStepProgress(report, uint64(i+1), uint64(len(factors)))
	}
	report(1.0)
	return r, nil
}
