package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/shorcalc/internal/numtheory"
	"github.com/agbru/shorcalc/internal/orchestration"
)

// programRef is a shared reference to the tea.Program. bubbletea copies the
// model on every Update, so the scan goroutines need a pointer that
// survives the copies.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program; it is a no-op until SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// scanJob describes one sweep launched by the dashboard.
type scanJob struct {
	finder      numtheory.OrderFinder
	n           uint64
	bases       []uint64
	concurrency int
	generation  uint64
}

// startScanCmd runs the sweep and streams per-base results and progress
// through send. The returned command resolves to a ScanCompleteMsg.
func startScanCmd(ctx context.Context, send func(tea.Msg), job scanJob) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		results, err := orchestration.Scan(ctx, job.finder, job.n, job.bases, orchestration.ScanOptions{
			Concurrency: job.concurrency,
			Progress: func(p float64) {
				send(ScanProgressMsg{Fraction: p, Generation: job.generation})
			},
			OnResult: func(r orchestration.ScanResult) {
				send(ScanResultMsg{Result: r, Generation: job.generation})
			},
		})
		return ScanCompleteMsg{
			Results:    results,
			Err:        err,
			Duration:   time.Since(start),
			Generation: job.generation,
		}
	}
}

// watchContextCmd resolves once ctx is done.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
