package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/shorcalc/internal/format"
)

// HeaderModel renders the top bar: title, modulus, finder and elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	n         uint64
	finder    string
	width     int
}

func NewHeaderModel(version string, n uint64, finder string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		n:         n,
		finder:    finder,
	}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

func (h HeaderModel) elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

func (h HeaderModel) View() string {
	title := "Shor Scan"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	sep := dimStyle.Render(" | ")
	row := titleStyle.Render(title) + sep +
		accentStyle.Render(fmt.Sprintf("N = %s", format.FormatUint(h.n))) + sep +
		dimStyle.Render(h.finder) + sep +
		accentStyle.Render("Elapsed: "+format.FormatExecutionDuration(h.elapsed()))

	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += strings.Repeat(" ", gap)
	}
	return headerStyle.Width(h.width).Render(row)
}

// FooterModel renders the key hints and the run status.
type FooterModel struct {
	keymap KeyMap
	paused bool
	done   bool
	failed bool
	width  int
}

func NewFooterModel(km KeyMap) FooterModel {
	return FooterModel{keymap: km}
}

func (f *FooterModel) SetPaused(p bool) { f.paused = p }
func (f *FooterModel) SetDone(d bool)   { f.done = d }
func (f *FooterModel) SetError(e bool)  { f.failed = e }
func (f *FooterModel) SetWidth(w int)   { f.width = w }

func (f FooterModel) status() string {
	switch {
	case f.failed:
		return statusErrorStyle.Render("ERROR")
	case f.done:
		return statusDoneStyle.Render("DONE")
	case f.paused:
		return statusPausedStyle.Render("PAUSED")
	default:
		return statusRunningStyle.Render("SCANNING")
	}
}

func (f FooterModel) View() string {
	hints := make([]string, 0, len(f.keymap.footerBindings()))
	for _, b := range f.keymap.footerBindings() {
		h := b.Help()
		hints = append(hints, footerKeyStyle.Render(h.Key)+" "+dimStyle.Render(h.Desc))
	}
	left := strings.Join(hints, "  ")
	right := f.status()
	gap := f.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(left + strings.Repeat(" ", gap) + right)
}
