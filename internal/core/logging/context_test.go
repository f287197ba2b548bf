package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextValues(t *testing.T) {
	ctx := WithPlayer(WithPostID(context.Background(), "post-1"), "mpv")

	assert.Equal(t, "post-1", PostID(ctx))
	assert.Equal(t, "mpv", Player(ctx))
}

func TestContextValues_Missing(t *testing.T) {
	assert.Empty(t, PostID(context.Background()))
	assert.Empty(t, Player(context.Background()))
}
