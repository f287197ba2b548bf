package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/hark/internal/core/notify"
	"github.com/colonyops/hark/internal/core/styles"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders toast notifications and composites them as an overlay.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View renders the toast stack, oldest at top.
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t))
	}
	return strings.Join(rendered, "\n")
}

func renderToast(t toast) string {
	icon, style := toastLook(t.notification.Level)

	content := icon + " " + t.notification.Message
	if t.repeats > 1 {
		content += styles.TextMutedStyle.Render(fmt.Sprintf(" ×%d", t.repeats))
	}
	return style.Width(toastWidth).Render(content)
}

func toastLook(level notify.Level) (string, lipgloss.Style) {
	switch level {
	case notify.LevelError:
		return styles.IconNotifyError, styles.ToastErrorStyle
	case notify.LevelWarning:
		return styles.IconNotifyWarning, styles.ToastWarningStyle
	default:
		return styles.IconNotifyInfo, styles.ToastInfoStyle
	}
}

// Overlay composites the toast stack over background in the lower-right
// corner, keeping the bottom reserved rows (the status line) visible.
func (v *ToastView) Overlay(background string, width, height, reserved int) string {
	content := v.View()
	if content == "" {
		return background
	}

	x := max(width-lipgloss.Width(content)-1, 0)
	y := max(height-reserved-lipgloss.Height(content), 0)

	bgLayer := lipgloss.NewLayer(background)
	toastLayer := lipgloss.NewLayer(content).X(x).Y(y).Z(2)
	return lipgloss.NewCompositor(bgLayer, toastLayer).Render()
}
