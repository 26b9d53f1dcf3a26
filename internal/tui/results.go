package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agbru/shorcalc/internal/format"
	"github.com/agbru/shorcalc/internal/numtheory"
	"github.com/agbru/shorcalc/internal/orchestration"
)

// ResultsModel is the scrollable list of per-base outcomes, kept sorted by
// base.
type ResultsModel struct {
	rows         orchestration.ScanResults
	offset       int
	eligibleOnly bool
	width        int
	height       int
}

func NewResultsModel() ResultsModel {
	return ResultsModel{}
}

func (r *ResultsModel) SetSize(w, h int) {
	r.width = w
	r.height = h
}

// Add inserts res at its base position.
func (r *ResultsModel) Add(res orchestration.ScanResult) {
	i := sort.Search(len(r.rows), func(i int) bool { return r.rows[i].Base >= res.Base })
	r.rows = append(r.rows, orchestration.ScanResult{})
	copy(r.rows[i+1:], r.rows[i:])
	r.rows[i] = res
}

func (r *ResultsModel) Reset() {
	r.rows = nil
	r.offset = 0
}

// ToggleEligible switches between all bases and eligible bases only.
func (r *ResultsModel) ToggleEligible() {
	r.eligibleOnly = !r.eligibleOnly
	r.offset = 0
}

// Results returns every outcome received so far.
func (r ResultsModel) Results() orchestration.ScanResults {
	return r.rows
}

func (r ResultsModel) visible() orchestration.ScanResults {
	if r.eligibleOnly {
		return r.rows.Eligible()
	}
	return r.rows
}

// pageSize is the number of list lines inside the border and title.
func (r ResultsModel) pageSize() int {
	return max(r.height-3, 1)
}

// Scroll moves the window by delta lines, clamped to the list.
func (r *ResultsModel) Scroll(delta int) {
	maxOffset := max(len(r.visible())-r.pageSize(), 0)
	r.offset = min(max(r.offset+delta, 0), maxOffset)
}

// describe renders one outcome line, colored by kind.
func describe(res orchestration.ScanResult) string {
	base := fmt.Sprintf("%5d  ", res.Base)
	if res.Err != nil {
		return base + errorStyle.Render(res.Err.Error())
	}
	o := res.Outcome
	switch o.Kind {
	case numtheory.SharedFactor:
		return base + factorStyle.Render(fmt.Sprintf("shared factor %d", o.Factors[0]))
	case numtheory.FactorPair:
		return base + eligibleStyle.Render(fmt.Sprintf("r = %-8s", format.FormatUint(o.Order))) +
			factorStyle.Render(fmt.Sprintf("%d · %d", o.Factors[0], o.Factors[1]))
	default:
		line := o.Reason.String()
		if o.Order != 0 {
			line = fmt.Sprintf("r = %-8s%s", format.FormatUint(o.Order), line)
		}
		return base + dimStyle.Render(line)
	}
}

func (r ResultsModel) View() string {
	rows := r.visible()
	title := "Bases"
	if r.eligibleOnly {
		title = "Eligible bases"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", title, len(rows))))
	end := min(r.offset+r.pageSize(), len(rows))
	for _, res := range rows[min(r.offset, end):end] {
		b.WriteString("\n")
		b.WriteString(describe(res))
	}

	return panelStyle.
		Width(max(r.width-2, 0)).
		Height(max(r.height-2, 0)).
		Render(b.String())
}
