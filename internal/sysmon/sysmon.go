// Package sysmon samples system-wide CPU and memory usage for the
// dashboard header.
package sysmon

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one snapshot of system-wide resource usage. Percentages are in
// [0, 100]; a field whose probe failed is left at zero.
type Stats struct {
	CPUPercent float64
	MemPercent float64
	// MemUsed and MemTotal are in bytes.
	MemUsed  uint64
	MemTotal uint64
	// LogicalCPUs is zero when unknown.
	LogicalCPUs int
}

// Sample takes a snapshot. The CPU figure is the usage since the previous
// call (interval 0), so the first call of a process may read 0.
func Sample(ctx context.Context) Stats {
	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
		s.MemUsed = vm.Used
		s.MemTotal = vm.Total
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		s.LogicalCPUs = n
	}
	return s
}

// String renders the snapshot as "CPU 12.5% MEM 43.0%".
func (s Stats) String() string {
	return fmt.Sprintf("CPU %.1f%% MEM %.1f%%", s.CPUPercent, s.MemPercent)
}
