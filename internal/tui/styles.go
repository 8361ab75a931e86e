package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/primescan/internal/ui"
)

var (
	panelStyle   lipgloss.Style
	headerStyle  lipgloss.Style
	titleStyle   lipgloss.Style
	versionStyle lipgloss.Style
	elapsedStyle lipgloss.Style

	logTimeStyle     lipgloss.Style
	logProgressStyle lipgloss.Style
	logSuccessStyle  lipgloss.Style
	logErrorStyle    lipgloss.Style

	metricLabelStyle lipgloss.Style
	metricValueStyle lipgloss.Style
	foundValueStyle  lipgloss.Style

	chartBarStyle     lipgloss.Style
	chartEmptyStyle   lipgloss.Style
	cpuSparklineStyle lipgloss.Style
	memSparklineStyle lipgloss.Style
	speedChartStyle   lipgloss.Style

	footerKeyStyle     lipgloss.Style
	footerDescStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
)

func init() {
	initTUIStyles()
}

func fg(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func strong(c lipgloss.TerminalColor) lipgloss.Style {
	return fg(c).Bold(true)
}

// initTUIStyles derives every style from the active palette. Run calls it
// again once the theme has been chosen from flags and environment.
func initTUIStyles() {
	p := ui.GetCurrentTUITheme()

	panelStyle = fg(p.Text).
		Background(p.Bg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border)
	headerStyle = strong(p.Accent).Background(p.Bg).Padding(0, 1)
	titleStyle = strong(p.Accent)
	versionStyle = fg(p.Dim)
	elapsedStyle = fg(p.Accent)

	logTimeStyle = fg(p.Dim)
	logProgressStyle = fg(p.Accent)
	logSuccessStyle = fg(p.Success)
	logErrorStyle = fg(p.Error)

	metricLabelStyle = fg(p.Dim)
	metricValueStyle = strong(p.Accent)
	foundValueStyle = strong(p.Success)

	chartBarStyle = fg(p.Accent)
	chartEmptyStyle = fg(p.Dim)
	cpuSparklineStyle = fg(p.Accent)
	memSparklineStyle = fg(p.Warning)
	speedChartStyle = fg(p.Info)

	footerKeyStyle = strong(p.Accent)
	footerDescStyle = fg(p.Dim)
	statusRunningStyle = strong(p.Success)
	statusPausedStyle = strong(p.Warning)
	statusDoneStyle = strong(p.Accent)
	statusErrorStyle = strong(p.Error)
}
