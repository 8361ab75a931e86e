package ui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ThemeEnv selects a named theme when neither --no-color nor NO_COLOR apply.
const ThemeEnv = "PRIMESCAN_THEME"

// Theme holds the ANSI sequences used by the line-oriented output.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string

	// TUI is the dashboard palette paired with this theme.
	TUI TUITheme
}

// TUITheme is the lipgloss palette of the dashboard.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

func ansi256(code string) string { return "\033[38;5;" + code + "m" }

var (
	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#000000"),
		Text:    lipgloss.Color("#DADADA"),
		Border:  lipgloss.Color("#2E8B57"),
		Accent:  lipgloss.Color("#3CB371"),
		Success: lipgloss.Color("#7FD962"),
		Warning: lipgloss.Color("#F2C14E"),
		Error:   lipgloss.Color("#F25C54"),
		Dim:     lipgloss.Color("#6C6C6C"),
		Info:    lipgloss.Color("#5FA8D3"),
	}

	LightTUITheme = TUITheme{
		Bg:      lipgloss.Color("#FFFFFF"),
		Text:    lipgloss.Color("#202020"),
		Border:  lipgloss.Color("#1B6B3A"),
		Accent:  lipgloss.Color("#14532D"),
		Success: lipgloss.Color("#2F7D1F"),
		Warning: lipgloss.Color("#9A6700"),
		Error:   lipgloss.Color("#B42318"),
		Dim:     lipgloss.Color("#8A8A8A"),
		Info:    lipgloss.Color("#1F5F8B"),
	}

	// NoColorTUITheme renders with the terminal defaults.
	NoColorTUITheme = TUITheme{
		Bg: lipgloss.NoColor{}, Text: lipgloss.NoColor{}, Border: lipgloss.NoColor{},
		Accent: lipgloss.NoColor{}, Success: lipgloss.NoColor{}, Warning: lipgloss.NoColor{},
		Error: lipgloss.NoColor{}, Dim: lipgloss.NoColor{}, Info: lipgloss.NoColor{},
	}

	DarkTheme = Theme{
		Name:      "dark",
		Primary:   ansi256("36"),
		Secondary: ansi256("245"),
		Success:   ansi256("77"),
		Warning:   ansi256("221"),
		Error:     ansi256("203"),
		Info:      ansi256("74"),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		TUI:       DarkTUITheme,
	}

	LightTheme = Theme{
		Name:      "light",
		Primary:   ansi256("23"),
		Secondary: ansi256("240"),
		Success:   ansi256("28"),
		Warning:   ansi256("130"),
		Error:     ansi256("124"),
		Info:      ansi256("25"),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		TUI:       LightTUITheme,
	}

	// NoColorTheme is selected by --no-color or NO_COLOR (https://no-color.org/).
	NoColorTheme = Theme{Name: "none", TUI: NoColorTUITheme}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	themeMu      sync.RWMutex
	currentTheme = DarkTheme
)

// LookupTheme returns the theme registered under name.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// GetCurrentTUITheme returns the dashboard palette of the active theme.
func GetCurrentTUITheme() TUITheme {
	return GetCurrentTheme().TUI
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name, falling back to dark.
func SetTheme(name string) {
	t, ok := LookupTheme(name)
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme picks the theme for this process. noColor and NO_COLOR win over
// PRIMESCAN_THEME.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(os.Getenv(ThemeEnv))
}
