package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		msgs    []tea.KeyMsg
	}{
		{"Quit", km.Quit, []tea.KeyMsg{
			{Type: tea.KeyRunes, Runes: []rune{'q'}},
			{Type: tea.KeyCtrlC},
			{Type: tea.KeyEsc},
		}},
		{"Pause", km.Pause, []tea.KeyMsg{
			{Type: tea.KeyRunes, Runes: []rune{'p'}},
			{Type: tea.KeySpace},
		}},
		{"Up", km.Up, []tea.KeyMsg{{Type: tea.KeyUp}, {Type: tea.KeyRunes, Runes: []rune{'k'}}}},
		{"Down", km.Down, []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyRunes, Runes: []rune{'j'}}}},
		{"PageUp", km.PageUp, []tea.KeyMsg{{Type: tea.KeyPgUp}}},
		{"PageDown", km.PageDown, []tea.KeyMsg{{Type: tea.KeyPgDown}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !tt.binding.Enabled() {
				t.Fatalf("%s binding is disabled", tt.name)
			}
			if tt.binding.Help().Key == "" {
				t.Errorf("%s binding has no help text", tt.name)
			}
			for _, msg := range tt.msgs {
				if !key.Matches(msg, tt.binding) {
					t.Errorf("%s binding does not match %q", tt.name, msg.String())
				}
			}
		})
	}
}

func TestDefaultKeyMap_NoOverlap(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	seen := make(map[string]string)
	for name, b := range map[string]key.Binding{
		"Quit": km.Quit, "Pause": km.Pause, "Up": km.Up,
		"Down": km.Down, "PageUp": km.PageUp, "PageDown": km.PageDown,
	} {
		for _, k := range b.Keys() {
			if other, dup := seen[k]; dup {
				t.Errorf("key %q bound to both %s and %s", k, other, name)
			}
			seen[k] = name
		}
	}
}
