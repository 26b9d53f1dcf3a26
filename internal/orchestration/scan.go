package orchestration

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/shorcalc/internal/errors"
	"github.com/agbru/shorcalc/internal/numtheory"
	"github.com/agbru/shorcalc/internal/progress"
)

// ScanResult is the factoring outcome for one base of a sweep.
type ScanResult struct {
	Base     uint64
	Outcome  numtheory.Outcome
	Duration time.Duration
	Err      error
}

// ScanResults holds the results of a sweep in the order of the bases.
type ScanResults []ScanResult

// Eligible returns the results whose base leads to a factor, either shared
// with the modulus or found through order finding.
func (s ScanResults) Eligible() ScanResults {
	var out ScanResults
	for _, r := range s {
		if r.Err == nil && r.Outcome.Found() {
			out = append(out, r)
		}
	}
	return out
}

// SharedFactors returns the results whose base divides the modulus.
func (s ScanResults) SharedFactors() ScanResults {
	var out ScanResults
	for _, r := range s {
		if r.Err == nil && r.Outcome.Kind == numtheory.SharedFactor {
			out = append(out, r)
		}
	}
	return out
}

// ScanOptions tunes a sweep.
type ScanOptions struct {
	// Concurrency bounds the number of bases factored in parallel.
	// Values below 1 mean 1.
	Concurrency int
	// Progress receives the completed fraction of the sweep.
	Progress progress.ProgressCallback
	// OnResult is called once per base as soon as its result is known.
	// Calls are serialized.
	OnResult func(ScanResult)
}

// Scan runs the factoring step of n for every base with finder. Per-base
// failures are recorded in the results as apperrors.FactoringError; only cancellation of ctx aborts
// the sweep, in which case the context error is returned.
func Scan(ctx context.Context, finder numtheory.OrderFinder, n uint64, bases []uint64, opts ScanOptions) (ScanResults, error) {
	ctx, span := startSpan(ctx, "Scan", attribute.Int64("shor.modulus", int64(n)), attribute.Int("shor.bases", len(bases)))
	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	results := make(ScanResults, len(bases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var (
		mu   sync.Mutex
		done uint64
	)
	total := uint64(len(bases))

	for i, k := range bases {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fctx, fspan := startSpan(gctx, "Factor", operandAttrs(k, n)...)
			start := time.Now()
			outcome, err := numtheory.Factor(fctx, finder, k, n)
			endSpan(fspan, err)
			if apperrors.IsContextError(err) && gctx.Err() != nil {
				return gctx.Err()
			}
			res := ScanResult{Base: k, Outcome: outcome, Duration: time.Since(start), Err: apperrors.NewFactoringError(k, n, err)}
			results[i] = res

			mu.Lock()
			defer mu.Unlock()
			done++
			if opts.OnResult != nil {
				opts.OnResult(res)
			}
			progress.ReportStepProgress(opts.Progress, done, total)
			return nil
		})
	}

	err := g.Wait()
	endSpan(span, err)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// PrimeBases lists the prime bases below limit, the candidates swept by the
// primes slide.
func PrimeBases(limit uint64) []uint64 {
	return numtheory.Primes(2, limit)
}
