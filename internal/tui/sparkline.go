package tui

import "strings"

// blocks are the eight sparkline levels, lowest first.
const blocks = "▁▂▃▄▅▆▇█"

// RingBuffer keeps the most recent samples of a series.
type RingBuffer struct {
	data  []float64
	next  int
	count int
}

// NewRingBuffer returns a buffer holding up to capacity samples
// (at least one).
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{data: make([]float64, max(capacity, 1))}
}

// Push appends v, evicting the oldest sample when full.
func (r *RingBuffer) Push(v float64) {
	r.data[r.next] = v
	r.next = (r.next + 1) % len(r.data)
	r.count = min(r.count+1, len(r.data))
}

func (r *RingBuffer) Len() int { return r.count }
func (r *RingBuffer) Cap() int { return len(r.data) }

// Last returns the newest sample, or 0 when empty.
func (r *RingBuffer) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.data[(r.next-1+len(r.data))%len(r.data)]
}

// Max returns the largest held sample, or 0 when empty.
func (r *RingBuffer) Max() float64 {
	var m float64
	for _, v := range r.Slice() {
		m = max(m, v)
	}
	return m
}

// Slice returns the samples oldest first.
func (r *RingBuffer) Slice() []float64 {
	if r.count == 0 {
		return nil
	}
	out := make([]float64, 0, r.count)
	start := (r.next - r.count + len(r.data)) % len(r.data)
	for i := range r.count {
		out = append(out, r.data[(start+i)%len(r.data)])
	}
	return out
}

// Resize changes the capacity and keeps the newest samples that fit.
func (r *RingBuffer) Resize(capacity int) {
	capacity = max(capacity, 1)
	if capacity == len(r.data) {
		return
	}
	old := r.Slice()
	if len(old) > capacity {
		old = old[len(old)-capacity:]
	}
	r.data = make([]float64, capacity)
	r.next, r.count = 0, 0
	for _, v := range old {
		r.Push(v)
	}
}

func (r *RingBuffer) Reset() {
	r.next, r.count = 0, 0
}

// level maps v onto [0, 1] relative to ceiling.
func level(v, ceiling float64) float64 {
	if ceiling <= 0 || v <= 0 {
		return 0
	}
	return min(v/ceiling, 1)
}

// RenderSparkline draws one block per value, scaled so that ceiling maps to
// the full block. Values outside [0, ceiling] are clamped.
func RenderSparkline(values []float64, ceiling float64) string {
	if len(values) == 0 {
		return ""
	}
	levels := []rune(blocks)
	var b strings.Builder
	for _, v := range values {
		b.WriteRune(levels[int(level(v, ceiling)*float64(len(levels)-1))])
	}
	return b.String()
}

// brailleBits[col][row] is the dot bit of a 2x4 braille cell.
var brailleBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// RenderBrailleChart plots values as dots on a width x rows braille canvas,
// two samples per character, newest on the right. Values are scaled to
// ceiling.
func RenderBrailleChart(values []float64, ceiling float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}
	dotRows, dotCols := rows*4, width*2
	if len(values) > dotCols {
		values = values[len(values)-dotCols:]
	}
	offset := dotCols - len(values)

	canvas := make([][]rune, rows)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat("⠀", width))
	}
	for i, v := range values {
		x := offset + i
		y := dotRows - 1 - int(level(v, ceiling)*float64(dotRows-1))
		canvas[y/4][x/2] |= brailleBits[x%2][y%4]
	}

	lines := make([]string, rows)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}
