package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hark/internal/core/notify"
	"github.com/colonyops/hark/internal/core/styles"
	"github.com/colonyops/hark/pkg/tuitest"
)

func TestToastView_View_empty(t *testing.T) {
	v := NewToastView(NewToastController())
	assert.Empty(t, v.View())
}

func TestToastView_View_renders_each_level(t *testing.T) {
	tests := []struct {
		level notify.Level
		icon  string
	}{
		{notify.LevelError, styles.IconNotifyError},
		{notify.LevelWarning, styles.IconNotifyWarning},
		{notify.LevelInfo, styles.IconNotifyInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			c := NewToastController()
			c.Push(notify.Notification{Level: tt.level, Message: "test msg"})

			out := NewToastView(c).View()
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "test msg")
		})
	}
}

func TestToastView_View_shows_repeat_count(t *testing.T) {
	c := NewToastController()
	n := notify.Notification{Level: notify.LevelWarning, Message: "retrying"}
	c.Push(n)
	c.Push(n)
	c.Push(n)

	assert.Contains(t, tuitest.StripANSI(NewToastView(c).View()), "×3")
}

func TestToastView_View_stacks_oldest_first(t *testing.T) {
	c := NewToastController()
	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "first"})
	c.Push(notify.Notification{Level: notify.LevelError, Message: "second"})

	out := NewToastView(c).View()
	first := strings.Index(out, "first")
	second := strings.Index(out, "second")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestToastView_Overlay_empty_returns_background(t *testing.T) {
	v := NewToastView(NewToastController())
	assert.Equal(t, "background", v.Overlay("background", 80, 24, 1))
}

func TestToastView_Overlay_sits_above_reserved_rows(t *testing.T) {
	c := NewToastController()
	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "positioned"})

	width, height := 100, 30
	rows := make([]string, height)
	for i := range rows {
		rows[i] = strings.Repeat(" ", width)
	}

	out := tuitest.StripANSI(NewToastView(c).Overlay(strings.Join(rows, "\n"), width, height, 1))
	lines := strings.Split(out, "\n")

	toastLine := -1
	for i, line := range lines {
		if strings.Contains(line, "positioned") {
			toastLine = i
		}
	}
	require.NotEqual(t, -1, toastLine)
	assert.Greater(t, toastLine, height/2)
	// Bordered toast is three rows tall and ends one row above the bottom.
	assert.Equal(t, height-3, toastLine)
}
