// Package tui implements the interactive dashboard that sweeps the prime
// bases of a modulus and shows each factoring outcome as it arrives.
package tui

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/shorcalc/internal/config"
	apperrors "github.com/agbru/shorcalc/internal/errors"
	"github.com/agbru/shorcalc/internal/format"
	"github.com/agbru/shorcalc/internal/metrics"
	"github.com/agbru/shorcalc/internal/numtheory"
	"github.com/agbru/shorcalc/internal/orchestration"
	"github.com/agbru/shorcalc/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	headerHeight             = 1
	footerHeight             = 1
	minBodyHeight            = 6
	ResultsPanelWidthPercent = 50
	MetricsPanelHeight       = 6
	tickInterval             = 500 * time.Millisecond
)

// ExecutionState holds the fields of the running sweep.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager holds the terminal size and derives the panel sizes.
type LayoutManager struct {
	width  int
	height int
}

func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

func (l LayoutManager) resultsWidth() int {
	return l.width * ResultsPanelWidthPercent / 100
}

func (l LayoutManager) rightWidth() int {
	return l.width - l.resultsWidth()
}

func (l LayoutManager) metricsHeight() int {
	return min(MetricsPanelHeight, l.bodyHeight()/2)
}

func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.metricsHeight()
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header  HeaderModel
	results ResultsModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel
	keymap  KeyMap
	eta     *format.ProgressWithETA

	ExecutionState
	LayoutManager

	parentCtx context.Context
	finder    numtheory.OrderFinder
	config    config.AppConfig
	bases     []uint64
	send      func(tea.Msg)
	paused    bool
}

// NewModel builds a dashboard sweeping the prime bases below
// cfg.ScanLimit of cfg.N with finder. Messages from the sweep are delivered
// through send.
func NewModel(parentCtx context.Context, finder numtheory.OrderFinder, cfg config.AppConfig, version string, send func(tea.Msg)) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	bases := orchestration.PrimeBases(cfg.ScanLimit)
	km := DefaultKeyMap()
	return Model{
		header:  NewHeaderModel(version, cfg.N, finder.Name()),
		results: NewResultsModel(),
		metrics: NewMetricsModel(len(bases)),
		chart:   NewChartModel(cfg.N),
		footer:  NewFooterModel(km),
		keymap:  km,
		eta:     format.NewProgressWithETA(1),
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		finder:    finder,
		config:    cfg,
		bases:     bases,
		send:      send,
	}
}

func (m Model) job() scanJob {
	return scanJob{
		finder:      m.finder,
		n:           m.config.N,
		bases:       m.bases,
		concurrency: m.config.Concurrency,
		generation:  m.generation,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		sampleSysStatsCmd(m.ctx),
		startScanCmd(m.ctx, m.send, m.job()),
		watchContextCmd(m.ctx, m.generation),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ScanResultMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.results.Add(msg.Result)
		m.metrics.Record(msg.Result)
		m.chart.AddOrder(msg.Result.Outcome.Order)
		return m, nil

	case ScanProgressMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		fraction, eta := m.eta.UpdateWithETA(0, msg.Fraction)
		m.chart.SetProgress(fraction, eta)
		return m, nil

	case ScanCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		if msg.Err != nil {
			m.footer.SetError(true)
			m.exitCode = apperrors.HandleCalculationError(msg.Err, msg.Duration, io.Discard, nil)
			return m, nil
		}
		m.chart.SetDone(msg.Duration)
		return m, nil

	case TickMsg:
		if m.done || m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(m.ctx), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.Stats.CPUPercent, msg.Stats.MemPercent)
		m.metrics.SetLogicalCPUs(msg.Stats.LogicalCPUs)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.cancel()
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)

		m.header.Reset()
		m.results.Reset()
		m.chart.Reset()
		m.metrics = NewMetricsModel(len(m.bases))
		m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
		m.eta = format.NewProgressWithETA(1)
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.done = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess

		return m, tea.Batch(
			startScanCmd(m.ctx, m.send, m.job()),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Filter):
		m.results.ToggleEligible()
		return m, nil

	case key.Matches(msg, m.keymap.Up):
		m.results.Scroll(-1)
	case key.Matches(msg, m.keymap.Down):
		m.results.Scroll(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.results.Scroll(-m.results.pageSize())
	case key.Matches(msg, m.keymap.PageDown):
		m.results.Scroll(m.results.pageSize())
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	right := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.results.View(), right)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.results.SetSize(m.resultsWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// Run starts the dashboard and blocks until the user quits or ctx ends.
// It returns the process exit code.
func Run(ctx context.Context, finder numtheory.OrderFinder, cfg config.AppConfig, version string) int {
	initTUIStyles()

	ref := &programRef{}
	model := NewModel(ctx, finder, cfg, version, ref.Send)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	ref.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := final.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg{
			Snapshot:     metrics.NewMemoryCollector().Snapshot(),
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

func sampleSysStatsCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg{Stats: sysmon.Sample(ctx)}
	}
}
