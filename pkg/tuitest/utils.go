// Package tuitest provides testing utilities for TUI components.
package tuitest

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes and trailing whitespace so rendered
// views can be compared as plain text.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// KeyPress creates a key press message for a single rune.
func KeyPress(key rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: key})
}

// Type returns one key press message per rune of s, with Text populated the
// way a terminal reports printable input.
func Type(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyPressMsg(tea.Key{Code: r, Text: string(r)}))
	}
	return msgs
}

// KeyCtrl creates a ctrl+<key> press message.
func KeyCtrl(key rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: key, Mod: tea.ModCtrl})
}

func KeyDown() tea.Msg  { return tea.KeyPressMsg(tea.Key{Code: tea.KeyDown}) }
func KeyUp() tea.Msg    { return tea.KeyPressMsg(tea.Key{Code: tea.KeyUp}) }
func KeyLeft() tea.Msg  { return tea.KeyPressMsg(tea.Key{Code: tea.KeyLeft}) }
func KeyRight() tea.Msg { return tea.KeyPressMsg(tea.Key{Code: tea.KeyRight}) }
func KeyEnter() tea.Msg { return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}) }
func KeyEsc() tea.Msg   { return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}) }
func KeyTab() tea.Msg   { return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}) }
func KeySpace() tea.Msg { return tea.KeyPressMsg(tea.Key{Code: tea.KeySpace}) }

// KeyShiftTab creates a shift+tab press message.
func KeyShiftTab() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift})
}

// Click creates a left mouse click at the given cell.
func Click(x, y int) tea.Msg {
	return tea.MouseClickMsg(tea.Mouse{X: x, Y: y, Button: tea.MouseLeft})
}

// Motion creates a mouse motion event with no button held.
func Motion(x, y int) tea.Msg {
	return tea.MouseMotionMsg(tea.Mouse{X: x, Y: y})
}

// Wheel creates a wheel event; up scrolls towards the top.
func Wheel(x, y int, up bool) tea.Msg {
	button := tea.MouseWheelDown
	if up {
		button = tea.MouseWheelUp
	}
	return tea.MouseWheelMsg(tea.Mouse{X: x, Y: y, Button: button})
}

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}
