package logging

import "github.com/rs/zerolog"

// NotifyHook forwards log events at or above MinLevel to Notify. The view
// attaches it to the player and watcher loggers so their warnings surface as
// toasts. Attach it only to loggers whose output does not feed back into
// Notify.
type NotifyHook struct {
	MinLevel zerolog.Level
	Notify   func(level zerolog.Level, msg string)
}

// Run implements zerolog.Hook.
func (h NotifyHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	if h.Notify == nil || level < h.MinLevel || level == zerolog.NoLevel || msg == "" {
		return
	}
	h.Notify(level, msg)
}
