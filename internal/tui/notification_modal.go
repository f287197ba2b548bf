package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/hark/internal/core/notify"
	"github.com/colonyops/hark/internal/core/styles"
)

const (
	notifyModalWidthPct  = 65
	notifyModalMinWidth  = 60
	notifyModalMaxHeight = 24
	notifyModalMargin    = 4
	notifyModalChrome    = 7 // title, divider, help and modal padding
)

// NotificationModal displays a scrollable history of the session's
// notifications.
type NotificationModal struct {
	store    notify.Store
	viewport viewport.Model
	width    int
	height   int
}

func NewNotificationModal(store notify.Store, width, height int) *NotificationModal {
	modalWidth := notificationModalWidth(width)
	contentHeight := max(min(height-notifyModalMargin, notifyModalMaxHeight)-notifyModalChrome, 1)

	m := &NotificationModal{
		store: store,
		viewport: viewport.New(
			viewport.WithWidth(modalWidth-6),
			viewport.WithHeight(contentHeight),
		),
		width:  width,
		height: height,
	}
	m.refresh()
	return m
}

func (m *NotificationModal) refresh() {
	if m.store == nil {
		m.viewport.SetContent(styles.TextMutedStyle.Render("No notifications"))
		return
	}

	history, err := m.store.List(context.Background())
	if err != nil {
		m.viewport.SetContent(styles.TextErrorStyle.Render(fmt.Sprintf("failed to load notifications: %v", err)))
		return
	}
	if len(history) == 0 {
		m.viewport.SetContent(styles.TextMutedStyle.Render("No notifications"))
		return
	}

	lines := make([]string, 0, len(history))
	for _, n := range history {
		lines = append(lines, formatNotification(n))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func formatNotification(n notify.Notification) string {
	ts := styles.TextMutedStyle.Render(n.CreatedAt.Format("15:04:05"))

	icon, _ := toastLook(n.Level)
	msgStyle := styles.TextStyle
	switch n.Level {
	case notify.LevelError:
		msgStyle = styles.TextErrorStyle
	case notify.LevelWarning:
		msgStyle = styles.TextWarningStyle
	}

	return fmt.Sprintf("%s %s %s", ts, icon, msgStyle.Render(n.Message))
}

func (m *NotificationModal) ScrollUp()   { m.viewport.ScrollUp(1) }
func (m *NotificationModal) ScrollDown() { m.viewport.ScrollDown(1) }

// Clear empties the history and refreshes the view.
func (m *NotificationModal) Clear() error {
	if m.store == nil {
		return nil
	}
	if err := m.store.Clear(context.Background()); err != nil {
		return err
	}
	m.refresh()
	return nil
}

// Overlay renders the modal centered over background.
func (m *NotificationModal) Overlay(background string, width, height int) string {
	modalWidth := notificationModalWidth(width)

	title := "Notifications"
	if m.viewport.TotalLineCount() > m.viewport.VisibleLineCount() {
		title += styles.TextMutedStyle.Render(fmt.Sprintf(" (%.0f%%)", m.viewport.ScrollPercent()*100))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(title),
		styles.TextSurfaceStyle.Render(strings.Repeat("─", max(modalWidth-6, 1))),
		m.viewport.View(),
		styles.ModalHelpStyle.Render("[j/k] scroll  [D] clear  [esc] close"),
	)
	modal := styles.ModalStyle.Width(modalWidth).Render(content)

	x := max((width-lipgloss.Width(modal))/2, 0)
	y := max((height-lipgloss.Height(modal))/2, 0)
	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal).X(x).Y(y).Z(1)
	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}

func notificationModalWidth(termWidth int) int {
	available := max(termWidth-notifyModalMargin, 1)
	target := termWidth * notifyModalWidthPct / 100
	return min(max(target, notifyModalMinWidth), available)
}
