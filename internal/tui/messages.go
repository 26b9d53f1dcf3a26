package tui

import (
	"time"

	"github.com/agbru/shorcalc/internal/metrics"
	"github.com/agbru/shorcalc/internal/orchestration"
	"github.com/agbru/shorcalc/internal/sysmon"
)

// TickMsg drives the periodic sampling of runtime and system stats.
type TickMsg time.Time

// ScanResultMsg carries the outcome of one base as soon as it is known.
type ScanResultMsg struct {
	Result     orchestration.ScanResult
	Generation uint64
}

// ScanProgressMsg carries the completed fraction of the sweep.
type ScanProgressMsg struct {
	Fraction   float64
	Generation uint64
}

// ScanCompleteMsg is sent once the sweep has returned.
type ScanCompleteMsg struct {
	Results    orchestration.ScanResults
	Err        error
	Duration   time.Duration
	Generation uint64
}

// MemStatsMsg carries a runtime memory snapshot.
type MemStatsMsg struct {
	Snapshot     metrics.MemorySnapshot
	NumGoroutine int
}

// SysStatsMsg carries a system-wide usage sample.
type SysStatsMsg struct {
	Stats sysmon.Stats
}

// ContextCancelledMsg is sent when the parent context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
