package tui

// sparklineChars maps levels 0..7 to the block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RingBuffer is a fixed-capacity circular buffer for float64 samples.
type RingBuffer struct {
	data  []float64
	head  int
	count int
}

// NewRingBuffer creates a ring buffer with the given capacity (at least 1).
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{data: make([]float64, max(capacity, 1))}
}

// Push adds a sample, overwriting the oldest if full.
func (r *RingBuffer) Push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	r.count = min(r.count+1, len(r.data))
}

// Len returns the number of valid samples.
func (r *RingBuffer) Len() int { return r.count }

// Cap returns the buffer capacity.
func (r *RingBuffer) Cap() int { return len(r.data) }

// Last returns the most recent sample, or 0 if empty.
func (r *RingBuffer) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.data[(r.head-1+len(r.data))%len(r.data)]
}

// Max returns the largest sample, or 0 if empty or all samples are negative.
func (r *RingBuffer) Max() float64 {
	return maxOf(r.Slice())
}

// Slice returns samples oldest first.
func (r *RingBuffer) Slice() []float64 {
	if r.count == 0 {
		return nil
	}
	out := make([]float64, r.count)
	start := (r.head - r.count + len(r.data)) % len(r.data)
	for i := range out {
		out[i] = r.data[(start+i)%len(r.data)]
	}
	return out
}

// Resize changes the capacity, keeping the most recent samples that fit.
func (r *RingBuffer) Resize(newCap int) {
	newCap = max(newCap, 1)
	if newCap == len(r.data) {
		return
	}
	old := r.Slice()
	if len(old) > newCap {
		old = old[len(old)-newCap:]
	}
	r.data = make([]float64, newCap)
	r.head, r.count = 0, 0
	for _, v := range old {
		r.Push(v)
	}
}

// Reset clears all samples.
func (r *RingBuffer) Reset() {
	r.head = 0
	r.count = 0
}

func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}

// RenderSparkline renders percentages (0..100) as a row of block elements.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		runes[i] = sparklineChars[int(clampPercent(v)/100*7)]
	}
	return string(runes)
}

// brailleDots[col][row] is the dot bit of a braille cell, which is 2 dots
// wide and 4 tall. Cells are offsets from U+2800.
var brailleDots = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

const brailleBlank = 0x2800

// RenderBrailleChart plots percentages (0..100) as one dot per value on a
// grid of rows lines by width cells, newest value on the right. Older values
// that do not fit are dropped.
func RenderBrailleChart(values []float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}
	dotRows := rows * 4
	dotCols := width * 2
	if len(values) > dotCols {
		values = values[len(values)-dotCols:]
	}
	offset := dotCols - len(values)

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, width)
		for c := range grid[r] {
			grid[r][c] = brailleBlank
		}
	}
	for i, v := range values {
		col := offset + i
		// Row 0 is the top of the chart.
		row := dotRows - 1 - int(clampPercent(v)/100*float64(dotRows-1))
		grid[row/4][col/2] |= brailleDots[col%2][row%4]
	}

	lines := make([]string, rows)
	for r := range grid {
		lines[r] = string(grid[r])
	}
	return lines
}

// Normalize rescales values so the largest becomes 100, for series such as
// throughput that have no fixed upper bound.
func Normalize(values []float64) []float64 {
	peak := maxOf(values)
	out := make([]float64, len(values))
	if peak <= 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / peak * 100
	}
	return out
}

func maxOf(values []float64) float64 {
	var peak float64
	for _, v := range values {
		peak = max(peak, v)
	}
	return peak
}
