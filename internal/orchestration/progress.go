package orchestration

import (
	"fmt"
	"time"

	"github.com/agbru/shorcalc/internal/format"
	"github.com/agbru/shorcalc/internal/progress"
)

// ProgressTracker averages the progress of concurrent order finders and
// renders it as a labelled bar with an ETA.
type ProgressTracker struct {
	state   *format.ProgressWithETA
	finders int
}

// NewProgressTracker returns nil when there is no finder to track.
func NewProgressTracker(finders int) *ProgressTracker {
	if finders <= 0 {
		return nil
	}
	return &ProgressTracker{state: format.NewProgressWithETA(finders), finders: finders}
}

// Observe records one update and returns the new mean progress.
func (t *ProgressTracker) Observe(update progress.ProgressUpdate) float64 {
	avg, _ := t.state.UpdateWithETA(update.CalculatorIndex, update.Value)
	return avg
}

// Fraction is the mean progress of all finders in [0, 1].
func (t *ProgressTracker) Fraction() float64 { return t.state.CalculateAverage() }

// Remaining is the estimated time left, 0 while unknown.
func (t *ProgressTracker) Remaining() time.Duration { return t.state.GetETA() }

// Label names what is being tracked.
func (t *ProgressTracker) Label() string {
	if t.finders > 1 {
		return fmt.Sprintf("Finding order (%d finders)", t.finders)
	}
	return "Finding order"
}

// Status renders the label followed by a bar of width cells and the ETA.
func (t *ProgressTracker) Status(width int) string {
	return t.Label() + " " + format.FormatProgressBarWithETA(t.Fraction(), t.Remaining(), width)
}

// Final renders the completed bar.
func (t *ProgressTracker) Final(width int) string {
	return t.Label() + " " + format.FormatProgressBarWithETA(1, 0, width)
}

// DrainChannel discards updates until progressChan is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
