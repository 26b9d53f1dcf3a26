// Package progress defines the progress update types shared by the order
// finders, the orchestration layer and the presentation layers.
package progress

// ProgressUpdate is a single progress notification emitted by a running
// computation. Value is normalized to the range 0.0 .. 1.0.
type ProgressUpdate struct {
	// CalculatorIndex identifies the emitting computation when several run
	// concurrently.
	CalculatorIndex int
	// Value is the completed fraction of the computation.
	Value float64
}

// ProgressCallback receives normalized progress values.
type ProgressCallback func(progress float64)

// ReportThreshold is the minimum progress delta between two reports.
// Smaller changes are swallowed to keep the channel quiet.
const ReportThreshold = 0.01

// NewChannelCallback returns a callback that forwards progress values to ch,
// tagged with index. Sends never block: when the consumer lags behind, the
// update is dropped. A nil channel yields a no-op callback.
func NewChannelCallback(ch chan<- ProgressUpdate, index int) ProgressCallback {
	if ch == nil {
		return func(float64) {}
	}
	last := -1.0
	return func(v float64) {
		if v < 1.0 && v-last < ReportThreshold {
			return
		}
		last = v
		select {
		case ch <- ProgressUpdate{CalculatorIndex: index, Value: v}:
		default:
		}
	}
}

// ReportStepProgress converts a step counter into a normalized value and
// forwards it to cb. total of zero reports completion.
func ReportStepProgress(cb ProgressCallback, step, total uint64) {
	if cb == nil {
		return
	}
	if total == 0 || step >= total {
		cb(1.0)
		return
	}
	cb(float64(step) / float64(total))
}
