package logging

import "context"

type contextKey string

const (
	postIDKey contextKey = "post_id"
	playerKey contextKey = "player"
)

// WithPostID tags the context with the post being viewed.
func WithPostID(ctx context.Context, postID string) context.Context {
	return context.WithValue(ctx, postIDKey, postID)
}

// WithPlayer tags the context with the active player adapter name.
func WithPlayer(ctx context.Context, player string) context.Context {
	return context.WithValue(ctx, playerKey, player)
}

// PostID returns the post id stored in ctx, or "".
func PostID(ctx context.Context) string {
	if id, ok := ctx.Value(postIDKey).(string); ok {
		return id
	}
	return ""
}

// Player returns the player name stored in ctx, or "".
func Player(ctx context.Context) string {
	if p, ok := ctx.Value(playerKey).(string); ok {
		return p
	}
	return ""
}
