package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/primescan/internal/format"
)

const (
	// sparklineWidth is the room taken by the label and value around a
	// sparkline row.
	sparklineWidth = 17
	// minSparklineHeight is the chart height from which CPU and MEM rows
	// are shown.
	minSparklineHeight = 10
	// speedSamples is the number of speed samples kept for the chart.
	speedSamples = 240
)

// ChartModel renders the progress bar, the speed history and system load.
type ChartModel struct {
	progress     float64
	eta          time.Duration
	speedHistory *RingBuffer
	cpuHistory   *RingBuffer
	memHistory   *RingBuffer
	diskFree     uint64
	done         bool
	totalTime    time.Duration
	width        int
	height       int
}

// NewChartModel creates an empty chart.
func NewChartModel() ChartModel {
	return ChartModel{
		speedHistory: NewRingBuffer(speedSamples),
		cpuHistory:   NewRingBuffer(1),
		memHistory:   NewRingBuffer(1),
	}
}

// SetSize updates dimensions and resizes the sparkline buffers to the
// available width.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	if n := w - sparklineWidth; n > 0 {
		c.cpuHistory.Resize(n)
		c.memHistory.Resize(n)
	}
}

// AddDataPoint records a progress report: fraction in [0, 1], speed in
// candidates per second and the remaining time.
func (c *ChartModel) AddDataPoint(fraction, speed float64, eta time.Duration) {
	c.progress = fraction
	c.eta = eta
	c.speedHistory.Push(speed)
}

// UpdateSysStats records a CPU and memory sample in percent.
func (c *ChartModel) UpdateSysStats(cpu, mem float64) {
	c.cpuHistory.Push(cpu)
	c.memHistory.Push(mem)
}

// SetDiskFree records the free space of the output volume.
func (c *ChartModel) SetDiskFree(b uint64) {
	c.diskFree = b
}

// SetDone freezes the chart with the total run time.
func (c *ChartModel) SetDone(total time.Duration) {
	c.done = true
	c.totalTime = total
}

// Reset clears every series.
func (c *ChartModel) Reset() {
	c.progress = 0
	c.eta = 0
	c.done = false
	c.totalTime = 0
	c.speedHistory.Reset()
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

// renderProgressBar renders "[███░░░] 42.0%" sized to the panel, or "" when
// the panel is too narrow.
func (c ChartModel) renderProgressBar() string {
	barWidth := c.width - 14
	if barWidth < 5 {
		return ""
	}
	p := min(max(c.progress, 0), 1)
	filled := int(p * float64(barWidth))
	return "[" + chartBarStyle.Render(strings.Repeat("█", filled)) +
		chartEmptyStyle.Render(strings.Repeat("░", barWidth-filled)) +
		fmt.Sprintf("] %5.1f%%", p*100)
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Scan Progress"))

	if bar := c.renderProgressBar(); bar != "" {
		b.WriteString("\n")
		b.WriteString(bar)
	}

	b.WriteString("\n")
	if c.done {
		b.WriteString(metricLabelStyle.Render("Total: ") + metricValueStyle.Render(format.FormatExecutionDuration(c.totalTime)))
	} else {
		b.WriteString(metricLabelStyle.Render("ETA: ") + metricValueStyle.Render(format.FormatETA(c.eta)))
	}
	if c.diskFree > 0 {
		b.WriteString(metricLabelStyle.Render("  Disk free: ") + metricValueStyle.Render(format.FormatBytes(c.diskFree)))
	}

	showSys := c.height >= minSparklineHeight
	reserved := 5 // borders, title, bar, ETA
	if showSys {
		reserved += 2
	}
	if rows := c.height - reserved; rows > 0 && c.speedHistory.Len() > 0 && c.width > 6 {
		b.WriteString("\n")
		b.WriteString(metricLabelStyle.Render("Speed (max " + format.FormatFloat(c.speedHistory.Max(), 0) + "/s)"))
		for _, line := range RenderBrailleChart(Normalize(c.speedHistory.Slice()), c.width-4, rows-1) {
			b.WriteString("\n")
			b.WriteString(speedChartStyle.Render(line))
		}
	}

	if showSys {
		b.WriteString("\n")
		b.WriteString(sparklineRow("CPU", c.cpuHistory, cpuSparklineStyle.Render))
		b.WriteString("\n")
		b.WriteString(sparklineRow("MEM", c.memHistory, memSparklineStyle.Render))
	}

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}

func sparklineRow(label string, r *RingBuffer, render func(...string) string) string {
	return fmt.Sprintf("%s %s %5.1f%%", metricLabelStyle.Render(label), render(RenderSparkline(r.Slice())), r.Last())
}
