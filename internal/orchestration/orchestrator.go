package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/shorcalc/internal/errors"
	"github.com/agbru/shorcalc/internal/numtheory"
	"github.com/agbru/shorcalc/internal/progress"
)

// ProgressBufferMultiplier sizes the progress channel per finder so that a
// slow display rarely causes dropped updates.
const ProgressBufferMultiplier = 5

// ExecuteOrderFinding runs every finder concurrently on (k, n) and returns
// one result per finder, in the order of finders. Failures are recorded in
// the results rather than cancelling the other finders.
func ExecuteOrderFinding(ctx context.Context, finders []numtheory.OrderFinder, k, n uint64, reporter ProgressReporter, out io.Writer) []OrderResult {
	ctx, span := startSpan(ctx, "ExecuteOrderFinding", operandAttrs(k, n)...)
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]OrderResult, len(finders))
	progressChan := make(chan progress.ProgressUpdate, len(finders)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(finders), out)

	for i, f := range finders {
		g.Go(func() error {
			fctx, fspan := startSpan(ctx, "FindOrder", attribute.String("shor.finder", f.Name()))
			start := time.Now()
			r, err := f.FindOrder(fctx, progressChan, i, k, n)
			results[i] = OrderResult{Name: f.Name(), Order: r, Duration: time.Since(start), Err: err}
			endSpan(fspan, err)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults sorts results (successes first, fastest first),
// presents the comparison table, verifies that all successful finders agree
// and presents the final result.
//
// Returns:
//   - int: ExitSuccess, ExitErrorMismatch when finders disagree, or the code
//     chosen by the presenter's error handler when every finder failed.
func AnalyzeComparisonResults(results []OrderResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var first *OrderResult
	var firstErr error
	for i := range results {
		if results[i].Err != nil {
			if firstErr == nil {
				firstErr = results[i].Err
			}
			continue
		}
		if first == nil {
			first = &results[i]
		}
	}

	if len(results) > 1 {
		presenter.PresentComparisonTable(results, out)
	}

	if first == nil {
		if len(results) > 1 {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No order finder completed.\n")
		}
		return presenter.HandleError(firstErr, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && res.Order != first.Order {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Order finders disagree (%s: %d, %s: %d).\n",
				first.Name, first.Order, res.Name, res.Order)
			return apperrors.ExitErrorMismatch
		}
	}
	if len(results) > 1 {
		fmt.Fprintf(out, "\nGlobal Status: Success. All orders agree.\n")
	}

	if opts.OrderOnly {
		presenter.PresentOrder(*first, opts, out)
	} else {
		presenter.PresentOutcome(numtheory.FactorFromOrder(opts.Base, opts.N, first.Order), opts, out)
	}
	return apperrors.ExitSuccess
}
