package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hark/internal/core/transcript"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	assert.Contains(t, names, DefaultTheme)
	assert.IsNonDecreasing(t, names)
}

func TestSentimentColor(t *testing.T) {
	p, ok := GetPalette("gruvbox")
	require.True(t, ok)
	SetTheme(p)
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	assert.Equal(t, p.Positive, SentimentColor(transcript.Positive))
	assert.Equal(t, p.Negative, SentimentColor(transcript.Negative))
	assert.Equal(t, p.Neutral, SentimentColor(transcript.Neutral))
}

func TestGetPalette_Unknown(t *testing.T) {
	_, ok := GetPalette("nope")
	assert.False(t, ok)
}
