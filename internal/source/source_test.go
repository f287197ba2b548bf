package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hark/internal/core/transcript"
)

type enricherFunc func(ctx context.Context, post *transcript.Post) error

func (f enricherFunc) Enrich(ctx context.Context, post *transcript.Post) error { return f(ctx, post) }

func TestChain(t *testing.T) {
	base := LoaderFunc(func(context.Context) (transcript.Post, error) {
		return transcript.Post{ID: "p1"}, nil
	})

	setAudio := enricherFunc(func(_ context.Context, p *transcript.Post) error {
		p.AudioURL = "https://cdn.example.com/p1.mp3"
		return nil
	})
	failing := enricherFunc(func(context.Context, *transcript.Post) error {
		return errors.New("feed unavailable")
	})

	post, err := Chain(base, setAudio, failing).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed unavailable")
	assert.Equal(t, "https://cdn.example.com/p1.mp3", post.AudioURL, "enrichment before the failure is kept")
}

func TestChain_LoadError(t *testing.T) {
	called := false
	base := LoaderFunc(func(context.Context) (transcript.Post, error) {
		return transcript.Post{}, ErrNotFound
	})
	e := enricherFunc(func(context.Context, *transcript.Post) error {
		called = true
		return nil
	})

	_, err := Chain(base, e).Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	assert.False(t, called)
}
