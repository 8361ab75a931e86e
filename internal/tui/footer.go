package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders key hints and the run status.
type FooterModel struct {
	paused bool
	done   bool
	err    bool
	width  int
}

// NewFooterModel creates a footer in the running state.
func NewFooterModel() FooterModel { return FooterModel{} }

func (f *FooterModel) SetWidth(w int)   { f.width = w }
func (f *FooterModel) SetPaused(p bool) { f.paused = p }
func (f *FooterModel) SetDone(d bool)   { f.done = d }
func (f *FooterModel) SetError(e bool)  { f.err = e }

// status renders the status label.
func (f FooterModel) status() string {
	switch {
	case f.err:
		return statusErrorStyle.Render("ERROR")
	case f.done:
		return statusDoneStyle.Render("DONE")
	case f.paused:
		return statusPausedStyle.Render("PAUSED")
	default:
		return statusRunningStyle.Render("SCANNING")
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	quit := "stop & quit"
	if f.done {
		quit = "quit"
	}
	hints := []string{
		footerKeyStyle.Render("q") + " " + footerDescStyle.Render(quit),
		footerKeyStyle.Render("p") + " " + footerDescStyle.Render("pause display"),
		footerKeyStyle.Render("↑/↓") + " " + footerDescStyle.Render("scroll"),
	}
	row := " " + f.status() + "  " + strings.Join(hints, "  ")
	if f.width > 0 {
		row = lipgloss.NewStyle().MaxWidth(f.width).Render(row)
	}
	return row
}
