package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/primescan/internal/format"
	"github.com/agbru/primescan/internal/progress"
	"github.com/agbru/primescan/internal/scan"
)

// maxLogEntries bounds the log history.
const maxLogEntries = 1000

// LogsModel is the scrollable event log on the left of the dashboard.
type LogsModel struct {
	entries []string
	// offset counts lines scrolled up from the bottom; 0 follows new entries.
	offset int
	keymap KeyMap
	width  int
	height int
	now    func() time.Time
}

// NewLogsModel creates an empty log panel.
func NewLogsModel() LogsModel {
	return LogsModel{keymap: DefaultKeyMap(), now: time.Now}
}

// SetSize updates dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// Len returns the number of entries.
func (l LogsModel) Len() int { return len(l.entries) }

func (l *LogsModel) add(styled string) {
	ts := logTimeStyle.Render(l.now().Format("15:04:05"))
	l.entries = append(l.entries, ts+" "+styled)
	if over := len(l.entries) - maxLogEntries; over > 0 {
		l.entries = append(l.entries[:0:0], l.entries[over:]...)
	}
	if l.offset > 0 {
		// Keep the viewed lines in place while scrolled back.
		l.offset++
	}
}

// AddRunInfo logs the scan parameters.
func (l *LogsModel) AddRunInfo(info Info) {
	l.add(fmt.Sprintf("Scanning [%s, %s] into %s",
		format.FormatUint(info.Range.Start), format.FormatUint(info.Range.End), info.OutputPath))
	if info.MaxPrimes > 0 {
		l.add(fmt.Sprintf("Stopping after %s primes", format.FormatUint(info.MaxPrimes)))
	}
}

// AddReport logs a progress report.
func (l *LogsModel) AddReport(line progress.ReportLine) {
	l.add(logProgressStyle.Render(fmt.Sprintf("%s%% at %s, %s found, %s/s",
		format.FormatFloat(line.Percent, 2), format.FormatUint(line.Current),
		format.FormatUint(line.Found), format.FormatFloat(line.Speed, 0))))
}

// AddSummary logs the outcome of the run.
func (l *LogsModel) AddSummary(s scan.Summary) {
	l.add(logSuccessStyle.Render(fmt.Sprintf("Scan %s: %s checked, %s primes in %s",
		s.Status, format.FormatUint(s.Checked), format.FormatUint(s.Found),
		format.FormatExecutionDuration(s.Elapsed))))
}

// AddError logs a failure.
func (l *LogsModel) AddError(err error) {
	l.add(logErrorStyle.Render("Error: " + err.Error()))
}

// Update scrolls the log.
func (l *LogsModel) Update(msg tea.KeyMsg) {
	page := max(l.visibleLines()-1, 1)
	switch {
	case key.Matches(msg, l.keymap.Up):
		l.scroll(1)
	case key.Matches(msg, l.keymap.Down):
		l.scroll(-1)
	case key.Matches(msg, l.keymap.PageUp):
		l.scroll(page)
	case key.Matches(msg, l.keymap.PageDown):
		l.scroll(-page)
	}
}

func (l *LogsModel) scroll(delta int) {
	l.offset += delta
	maxOffset := max(len(l.entries)-l.visibleLines(), 0)
	l.offset = min(max(l.offset, 0), maxOffset)
}

func (l LogsModel) visibleLines() int {
	return max(l.height-3, 1)
}

// View renders the panel at its configured height.
func (l LogsModel) View() string {
	return l.renderToHeight(l.height)
}

// renderToHeight renders the panel with a total height of h rows.
func (l LogsModel) renderToHeight(h int) string {
	visible := max(h-3, 1)
	end := max(len(l.entries)-l.offset, 0)
	start := max(end-visible, 0)

	line := lipgloss.NewStyle().MaxWidth(max(l.width-4, 1))
	var b strings.Builder
	b.WriteString(titleStyle.Render("Events"))
	for _, e := range l.entries[start:end] {
		b.WriteString("\n")
		b.WriteString(line.Render(e))
	}
	return panelStyle.
		Width(max(l.width-2, 0)).
		Height(max(h-2, 0)).
		Render(b.String())
}
