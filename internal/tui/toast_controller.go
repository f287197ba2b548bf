package tui

import (
	"time"

	"github.com/colonyops/hark/internal/core/notify"
)

const (
	infoToastTTL      = 4 * time.Second
	errorToastTTL     = 8 * time.Second
	maxToasts         = 4
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 48
)

type toast struct {
	notification notify.Notification
	remaining    time.Duration
	repeats      int
}

func toastTTL(level notify.Level) time.Duration {
	if level == notify.LevelError {
		return errorToastTTL
	}
	return infoToastTTL
}

// ToastController manages the lifecycle of active toast notifications.
// Player adapters tend to repeat the same failure, so a notification equal to
// the newest toast refreshes it instead of stacking a copy.
type ToastController struct {
	toasts  []toast
	ticking bool
}

func NewToastController() *ToastController {
	return &ToastController{}
}

// Push adds a notification to the toast stack, evicting the oldest toast
// beyond maxToasts.
func (c *ToastController) Push(n notify.Notification) {
	if last := len(c.toasts) - 1; last >= 0 {
		newest := &c.toasts[last]
		if newest.notification.Level == n.Level && newest.notification.Message == n.Message {
			newest.repeats++
			newest.remaining = toastTTL(n.Level)
			return
		}
	}

	c.toasts = append(c.toasts, toast{
		notification: n,
		remaining:    toastTTL(n.Level),
		repeats:      1,
	})
	if len(c.toasts) > maxToasts {
		c.toasts = c.toasts[len(c.toasts)-maxToasts:]
	}
}

// Tick decrements the remaining TTL on all toasts by d and removes
// any that have expired.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

func (c *ToastController) Toasts() []toast {
	return c.toasts
}

// Ticking reports whether a tick command is already scheduled.
func (c *ToastController) Ticking() bool {
	return c.ticking
}

func (c *ToastController) SetTicking(v bool) {
	c.ticking = v
}
