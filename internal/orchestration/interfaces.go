package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/shorcalc/internal/numtheory"
	"github.com/agbru/shorcalc/internal/progress"
)

// OrderResult is the outcome of one order finder on one (k, N) pair.
type OrderResult struct {
	// Name is the finder's display name.
	Name string
	// Order is the computed multiplicative order; zero on error.
	Order uint64
	// Duration is the wall time of the computation.
	Duration time.Duration
	Err      error
}

// PresentationOptions configures how results are presented.
type PresentationOptions struct {
	N    uint64
	Base uint64
	// OrderOnly presents the order without completing the factoring step.
	OrderOnly bool
	Verbose   bool
	Details   bool
}

// ProgressReporter displays progress while finders run.
type ProgressReporter interface {
	// DisplayProgress consumes progressChan until it is closed, then calls
	// wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, progressChan, numCalculators, out)
}

// NullProgressReporter drains the channel without output. Used in quiet
// mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains progressChan.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ErrorHandler maps an error to an exit code after reporting it.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// ResultPresenter renders the results of a run.
type ResultPresenter interface {
	ErrorHandler
	// PresentComparisonTable lists every finder with its order and timing.
	PresentComparisonTable(results []OrderResult, out io.Writer)
	// PresentOrder shows the agreed order in --order mode.
	PresentOrder(result OrderResult, opts PresentationOptions, out io.Writer)
	// PresentOutcome shows the result of the factoring step.
	PresentOutcome(outcome numtheory.Outcome, opts PresentationOptions, out io.Writer)
}
