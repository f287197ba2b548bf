package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies post_id and player from the event context onto log
// events.
type ContextHook struct{}

// Run implements zerolog.Hook.
func (h ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if id := PostID(ctx); id != "" {
		e.Str("post_id", id)
	}
	if p := Player(ctx); p != "" {
		e.Str("player", p)
	}
}
