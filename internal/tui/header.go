package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/primescan/internal/format"
	"github.com/agbru/primescan/internal/scan"
)

// HeaderModel renders the top bar: title, range, elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	rng       scan.Range
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string, rng scan.Range) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		rng:       rng,
	}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	if h.endTime.IsZero() {
		h.endTime = time.Now()
	}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the time since the scan started, frozen once done.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "primescan"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := versionStyle.Render(" | ")
	rng := versionStyle.Render(fmt.Sprintf("[%s, %s]", format.FormatUint(h.rng.Start), format.FormatUint(h.rng.End)))
	elapsed := elapsedStyle.Render("Elapsed: " + format.FormatExecutionDuration(h.Elapsed().Round(time.Second)))

	row := titleStyle.Render(titleText) + pipe + rng + pipe + elapsed
	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += strings.Repeat(" ", gap)
	}
	return headerStyle.Width(h.width).Render(row)
}
