package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/shorcalc/internal/errors"
	"github.com/agbru/shorcalc/internal/format"
	"github.com/agbru/shorcalc/internal/numtheory"
	"github.com/agbru/shorcalc/internal/orchestration"
	"github.com/agbru/shorcalc/internal/progress"
	"github.com/agbru/shorcalc/internal/ui"
)

// CLIProgressReporter shows a spinner while order finders run.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numCalculators, out)
}

// CLIResultPresenter renders results as colorized terminal text.
type CLIResultPresenter struct {
	// Output controls quiet mode and the optional report file.
	Output OutputConfig
	// Duration is the wall time of the run, shown with the result.
	Duration time.Duration
	// FinderName is recorded in the report file.
	FinderName string
}

var _ orchestration.ResultPresenter = (*CLIResultPresenter)(nil)

// PresentComparisonTable lists each finder with its order, time and status.
// Padding is computed on visible text so ANSI sequences do not break the
// alignment.
func (p *CLIResultPresenter) PresentComparisonTable(results []orchestration.OrderResult, out io.Writer) {
	if p.Output.Quiet {
		return
	}
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameW, durW := len("Order finder"), len("Duration")
	for _, r := range results {
		nameW = max(nameW, len(r.Name))
		durW = max(durW, len(formatDuration(r.Duration)))
	}

	fmt.Fprintf(out, "%sOrder finder%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", nameW-len("Order finder")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", durW-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, r := range results {
		status := fmt.Sprintf("%s✅ r = %s%s", ui.ColorSuccess(), format.FormatUint(r.Order), ui.ColorReset())
		if r.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorError(), r.Err, ui.ColorReset())
		}
		d := formatDuration(r.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorPrimary(), r.Name, ui.ColorReset(), padRight("", nameW-len(r.Name)),
			ui.ColorWarning(), d, ui.ColorReset(), padRight("", durW-len(d)),
			status)
	}
}

// PresentOrder prints the agreed order.
func (p *CLIResultPresenter) PresentOrder(result orchestration.OrderResult, opts orchestration.PresentationOptions, out io.Writer) {
	if p.Output.Quiet {
		fmt.Fprintln(out, result.Order)
		return
	}
	DisplayOrder(opts.Base, opts.N, result.Order, p.Duration, out)
}

// PresentOutcome prints the factoring step and writes the report file.
func (p *CLIResultPresenter) PresentOutcome(outcome numtheory.Outcome, _ orchestration.PresentationOptions, out io.Writer) {
	if err := DisplayResultWithConfig(out, outcome, p.Duration, p.FinderName, p.Output); err != nil {
		fmt.Fprintf(out, "%sWarning: %v%s\n", ui.ColorWarning(), err, ui.ColorReset())
	}
}

// HandleError reports err and returns the matching exit code.
func (p *CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, ui.ThemeColors{})
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// DisplayMemoryStats prints runtime memory statistics in --details mode.
func DisplayMemoryStats(heapAlloc, totalAlloc uint64, numGC uint32, pauseTotalNs uint64, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(heapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(totalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", numGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(pauseTotalNs)/1e6)
}
