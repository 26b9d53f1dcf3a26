package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/shorcalc/internal/format"
	"github.com/agbru/shorcalc/internal/metrics"
	"github.com/agbru/shorcalc/internal/numtheory"
	"github.com/agbru/shorcalc/internal/orchestration"
)

// MetricsModel shows sweep counters next to runtime memory statistics.
type MetricsModel struct {
	mem          metrics.MemorySnapshot
	numGoroutine int
	logicalCPUs  int
	total        int
	scanned      int
	eligible     int
	shared       int
	failed       int
	start        time.Time
	width        int
	height       int
}

// NewMetricsModel returns a panel for a sweep over total bases.
func NewMetricsModel(total int) MetricsModel {
	return MetricsModel{total: total, start: time.Now()}
}

func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Record counts one base outcome.
func (m *MetricsModel) Record(res orchestration.ScanResult) {
	m.scanned++
	switch {
	case res.Err != nil:
		m.failed++
	case res.Outcome.Found():
		m.eligible++
		if res.Outcome.Kind == numtheory.SharedFactor {
			m.shared++
		}
	}
}

func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.mem = msg.Snapshot
	m.numGoroutine = msg.NumGoroutine
}

func (m *MetricsModel) SetLogicalCPUs(n int) {
	m.logicalCPUs = n
}

// rate returns the bases scanned per second since the panel was created.
func (m MetricsModel) rate() float64 {
	secs := time.Since(m.start).Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(m.scanned) / secs
}

func (m MetricsModel) View() string {
	colWidth := max((m.width-6)/2, 1)
	left := []string{
		metricCell("Scanned:", fmt.Sprintf("%d / %d", m.scanned, m.total), colWidth),
		metricCell("Eligible:", fmt.Sprintf("%d (%d shared)", m.eligible, m.shared), colWidth),
		metricCell("Rate:", fmt.Sprintf("%.1f bases/s", m.rate()), colWidth),
	}
	right := []string{
		metricCell("Heap:", format.FormatBytes(m.mem.HeapAlloc)+" / "+format.FormatBytes(m.mem.Sys), colWidth),
		metricCell("GC:", fmt.Sprintf("%d (%.1fms)", m.mem.NumGC, float64(m.mem.PauseTotalNs)/1e6), colWidth),
		metricCell("Goroutines:", fmt.Sprintf("%d / %d CPUs", m.numGoroutine, m.logicalCPUs), colWidth),
	}
	if m.failed > 0 {
		left = append(left, metricCell("Errors:", errorStyle.Render(fmt.Sprint(m.failed)), colWidth))
		right = append(right, "")
	}

	rows := make([]string, len(left))
	for i := range left {
		rows[i] = left[i] + right[i]
	}
	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(strings.Join(rows, "\n"))
}

// metricCell renders "label value" padded to width visible cells.
func metricCell(label, value string, width int) string {
	cell := fmt.Sprintf(" %s %s", metricLabelStyle.Render(fmt.Sprintf("%-11s", label)), metricValueStyle.Render(value))
	if pad := width - lipgloss.Width(cell); pad > 0 {
		cell += strings.Repeat(" ", pad)
	}
	return cell
}
