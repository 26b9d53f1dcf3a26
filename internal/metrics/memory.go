// Package metrics reads Go runtime memory statistics for the --details
// report and the dashboard.
package metrics

import "runtime"

// MemorySnapshot is a point-in-time reading of the runtime allocator.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes of live heap objects
	TotalAlloc   uint64 // cumulative bytes allocated
	Sys          uint64 // bytes obtained from the OS
	NumGC        uint32
	PauseTotalNs uint64
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads the current statistics. It briefly stops the world.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// RunStats is the allocator activity between two snapshots.
type RunStats struct {
	// HeapAlloc is the live heap at the end of the run.
	HeapAlloc uint64
	// Allocated is the number of bytes allocated during the run.
	Allocated    uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// Since returns the activity from before to s.
func (s MemorySnapshot) Since(before MemorySnapshot) RunStats {
	return RunStats{
		HeapAlloc:    s.HeapAlloc,
		Allocated:    s.TotalAlloc - before.TotalAlloc,
		NumGC:        s.NumGC - before.NumGC,
		PauseTotalNs: s.PauseTotalNs - before.PauseTotalNs,
	}
}
