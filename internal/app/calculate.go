package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/agbru/shorcalc/internal/cli"
	"github.com/agbru/shorcalc/internal/deck"
	apperrors "github.com/agbru/shorcalc/internal/errors"
	"github.com/agbru/shorcalc/internal/metrics"
	"github.com/agbru/shorcalc/internal/numtheory"
	"github.com/agbru/shorcalc/internal/orchestration"
	"github.com/agbru/shorcalc/internal/progress"
	"github.com/agbru/shorcalc/internal/ui"
)

func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
}

// reporter returns the progress reporter and its writer for the current
// verbosity.
func (a *Application) reporter(out io.Writer) (orchestration.ProgressReporter, io.Writer) {
	if a.Config.Quiet {
		return orchestration.NullProgressReporter{}, io.Discard
	}
	return cli.CLIProgressReporter{}, out
}

// runFactor runs the factoring step of N with the configured base, or only
// its order finding with --order. Every selected finder computes the order
// and the results are cross-checked before the step is completed.
func (a *Application) runFactor(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.withLifecycle(ctx)
	defer cancel()

	k, n := a.Config.Base, a.Config.N
	outputCfg := a.outputConfig()

	if !a.Config.Order {
		if outcome, decided := numtheory.Precheck(k, n); decided {
			if err := cli.DisplayResultWithConfig(out, outcome, 0, "none", outputCfg); err != nil {
				fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
				return apperrors.ExitErrorGeneric
			}
			return apperrors.ExitSuccess
		}
	}

	finders := orchestration.GetFindersToRun(a.Config.Algo, a.Factory)
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(finders, out)
	}

	names := make([]string, len(finders))
	for i, f := range finders {
		names[i] = f.Name()
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	start := time.Now()
	reporter, progressOut := a.reporter(out)
	results := orchestration.ExecuteOrderFinding(ctx, finders, k, n, reporter, progressOut)

	presenter := &cli.CLIResultPresenter{
		Output:     outputCfg,
		Duration:   time.Since(start),
		FinderName: strings.Join(names, ", "),
	}
	opts := orchestration.PresentationOptions{
		N:         n,
		Base:      k,
		OrderOnly: a.Config.Order,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
	}
	code := orchestration.AnalyzeComparisonResults(results, opts, presenter, out)

	if a.Config.Details && !a.Config.Quiet {
		a.printDetails(collector.Snapshot().Since(before), out)
	}
	return code
}

// runScan factors N with every prime base below the scan limit.
func (a *Application) runScan(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.withLifecycle(ctx)
	defer cancel()

	finder := orchestration.GetFindersToRun(a.Config.Algo, a.Factory)[0]
	bases := orchestration.PrimeBases(a.Config.ScanLimit)
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		fmt.Fprintf(out, "Sweeping %d prime bases below %d with %s (%d in parallel).\n",
			len(bases), a.Config.ScanLimit, finder.Name(), a.Config.Concurrency)
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()

	reporter, progressOut := a.reporter(out)
	progressChan := make(chan progress.ProgressUpdate, len(bases)+1)
	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, progressChan, 1, progressOut)

	start := time.Now()
	results, err := orchestration.Scan(ctx, finder, a.Config.N, bases, orchestration.ScanOptions{
		Concurrency: a.Config.Concurrency,
		Progress:    progress.NewChannelCallback(progressChan, 0),
	})
	elapsed := time.Since(start)
	close(progressChan)
	wg.Wait()

	if err != nil {
		return apperrors.HandleCalculationError(err, elapsed, a.ErrWriter, ui.ThemeColors{})
	}

	if a.Config.Quiet {
		cli.DisplayQuietScan(results, out)
		return apperrors.ExitSuccess
	}
	cli.DisplayScan(results, a.Config.N, a.Config.Verbose, out)
	if a.Config.Details {
		fmt.Fprintf(out, "Sweep time: %s\n", elapsed)
		a.printDetails(collector.Snapshot().Since(before), out)
	}
	return apperrors.ExitSuccess
}

// runDeck prints the content of every slide for N and the configured base.
func (a *Application) runDeck(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.withLifecycle(ctx)
	defer cancel()

	slides, err := deck.Build(ctx, deck.Params{
		N:           a.Config.N,
		Base:        a.Config.Base,
		Limit:       a.Config.ScanLimit,
		Finder:      orchestration.GetFindersToRun(a.Config.Algo, a.Factory)[0],
		Concurrency: a.Config.Concurrency,
	})
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, ui.ThemeColors{})
	}
	cli.DisplayDeck(slides, out)
	return apperrors.ExitSuccess
}

func (a *Application) printDetails(stats metrics.RunStats, out io.Writer) {
	cli.DisplayMemoryStats(stats.HeapAlloc, stats.Allocated, stats.NumGC, stats.PauseTotalNs, out)
}
