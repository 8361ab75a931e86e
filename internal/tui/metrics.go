package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/primescan/internal/format"
	"github.com/agbru/primescan/internal/progress"
)

// MetricsModel displays scan counters and runtime memory metrics.
type MetricsModel struct {
	checked      uint64
	found        uint64
	current      uint64
	density      float64
	speed        float64 // smoothed candidates per second
	lastUpdate   time.Time
	alloc        uint64
	heapInuse    uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int
	width        int
	height       int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{lastUpdate: time.Now()}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapInuse = msg.HeapInuse
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateReport records the counters of a progress report. The displayed
// speed is an exponential moving average of the per-interval speeds.
func (m *MetricsModel) UpdateReport(line progress.ReportLine) {
	m.checked = line.Checked
	m.found = line.Found
	m.current = line.Current
	if line.Checked > 0 {
		m.density = float64(line.Found) / float64(line.Checked) * 100
	}
	if line.Speed > 0 {
		if m.speed > 0 {
			m.speed = 0.7*m.speed + 0.3*line.Speed
		} else {
			m.speed = line.Speed
		}
	}
	m.lastUpdate = time.Now()
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder

	heapStr := metricValueStyle.Render(format.FormatBytes(m.alloc) + " / " + format.FormatBytes(m.heapInuse))
	gcPauseStr := metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6))
	pipe := metricLabelStyle.Render(" | ")
	rows.WriteString(fmt.Sprintf("  %s %s%s%s %s%s%s %s",
		metricLabelStyle.Render("Heap:"), heapStr,
		pipe,
		metricLabelStyle.Render("GC:"), gcPauseStr,
		pipe,
		metricLabelStyle.Render("Goroutines:"), metricValueStyle.Render(fmt.Sprintf("%d", m.numGoroutine))))

	colWidth := (m.width - 6) / 2
	leftCol := []string{
		formatMetricCol("Checked:", format.FormatUint(m.checked), colWidth),
		formatMetricCol("Current:", format.FormatUint(m.current), colWidth),
	}
	rightCol := []string{
		formatMetricCol("Found:", foundValueStyle.Render(format.FormatUint(m.found)), colWidth),
		formatMetricCol("Speed:", format.FormatFloat(m.speed, 0)+"/s", colWidth),
	}
	leftCol = append(leftCol, formatMetricCol("Density:", format.FormatFloat(m.density, 4)+"%", colWidth))
	rightCol = append(rightCol, formatMetricCol("Updated:", m.lastUpdate.Format("15:04:05"), colWidth))

	for i := range leftCol {
		rows.WriteString("\n")
		rows.WriteString(leftCol[i])
		rows.WriteString(rightCol[i])
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-10s", label)),
		metricValueStyle.Render(value))
	// Pad to fixed column width using lipgloss-aware width
	visible := lipgloss.Width(cell)
	if visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
