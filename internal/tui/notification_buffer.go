package tui

import (
	"fmt"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/hark/internal/core/notify"
)

type drainNotificationsMsg struct{}

// NotificationBuffer carries notifications raised on adapter goroutines (the
// mpv reader, the bridge server, the file watcher) into the Update loop. Pushes
// coalesce into a single drain signal.
type NotificationBuffer struct {
	mu            sync.Mutex
	notifications []notify.Notification
	signal        chan struct{}
}

func NewNotificationBuffer() *NotificationBuffer {
	return &NotificationBuffer{
		signal: make(chan struct{}, 1),
	}
}

// Push appends a notification and emits a non-blocking drain signal.
func (b *NotificationBuffer) Push(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.mu.Lock()
	b.notifications = append(b.notifications, n)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Warnf is a convenience for Push at warning level.
func (b *NotificationBuffer) Warnf(format string, args ...any) {
	b.Push(notify.Notification{Level: notify.LevelWarning, Message: fmt.Sprintf(format, args...)})
}

// Errorf is a convenience for Push at error level.
func (b *NotificationBuffer) Errorf(format string, args ...any) {
	b.Push(notify.Notification{Level: notify.LevelError, Message: fmt.Sprintf(format, args...)})
}

// Drain returns all buffered notifications and clears the buffer.
func (b *NotificationBuffer) Drain() []notify.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.notifications) == 0 {
		return nil
	}

	out := b.notifications
	b.notifications = nil
	return out
}

// WaitForSignal blocks until there are notifications ready to drain.
func (b *NotificationBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return drainNotificationsMsg{}
	}
}
