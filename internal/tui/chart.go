package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/shorcalc/internal/format"
)

// historySize bounds the CPU and memory histories.
const historySize = 60

// ChartModel plots the orders found so far and the system load.
type ChartModel struct {
	orders     []float64
	n          uint64
	progress   float64
	eta        time.Duration
	elapsed    time.Duration
	done       bool
	cpuHistory *RingBuffer
	memHistory *RingBuffer
	cpu, mem   float64
	width      int
	height     int
}

func NewChartModel(n uint64) ChartModel {
	return ChartModel{
		n:          n,
		cpuHistory: NewRingBuffer(historySize),
		memHistory: NewRingBuffer(historySize),
	}
}

func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	if w > 20 {
		c.cpuHistory.Resize(w - 20)
		c.memHistory.Resize(w - 20)
	}
}

// AddOrder records the order of one more base; bases without a computed
// order plot as zero.
func (c *ChartModel) AddOrder(order uint64) {
	c.orders = append(c.orders, float64(order))
}

// SetProgress records the completed fraction and its ETA.
func (c *ChartModel) SetProgress(fraction float64, eta time.Duration) {
	c.progress = fraction
	c.eta = eta
}

// UpdateSysStats appends one system load sample.
func (c *ChartModel) UpdateSysStats(cpu, mem float64) {
	c.cpu, c.mem = cpu, mem
	c.cpuHistory.Push(cpu)
	c.memHistory.Push(mem)
}

// SetDone freezes the chart footer on the total duration.
func (c *ChartModel) SetDone(elapsed time.Duration) {
	c.done = true
	c.elapsed = elapsed
	c.progress = 1
}

func (c *ChartModel) Reset() {
	c.orders = nil
	c.progress = 0
	c.eta = 0
	c.done = false
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

func (c ChartModel) View() string {
	inner := max(c.width-4, 10)
	var b strings.Builder
	b.WriteString(titleStyle.Render("Orders"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  (ceiling N = %s)", format.FormatUint(c.n))))

	chartRows := max(c.height-7, 1)
	for _, line := range RenderBrailleChart(c.orders, float64(c.n), inner, chartRows) {
		b.WriteString("\n")
		b.WriteString(accentStyle.Render(line))
	}

	b.WriteString("\n")
	if c.done {
		b.WriteString(format.ProgressBar(1, inner-20))
		b.WriteString(accentStyle.Render(" Done in " + format.FormatExecutionDuration(c.elapsed)))
	} else {
		b.WriteString(format.FormatProgressBarWithETA(c.progress, c.eta, inner-20))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s %5.1f%%", metricLabelStyle.Render("CPU"),
		cpuSparklineStyle.Render(RenderSparkline(c.cpuHistory.Slice(), 100)), c.cpu))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s %5.1f%%", metricLabelStyle.Render("MEM"),
		memSparklineStyle.Render(RenderSparkline(c.memHistory.Slice(), 100)), c.mem))

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}
