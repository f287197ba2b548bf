package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hark/internal/core/highlight"
	"github.com/colonyops/hark/internal/core/transcript"
	"github.com/colonyops/hark/pkg/tuitest"
)

func layoutSnippets() []transcript.Snippet {
	return []transcript.Snippet{
		{Start: 0, End: 5, Text: "hello world"},
		{Start: 5, End: 10, Text: "foo bar baz"},
	}
}

func plainLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = tuitest.StripANSI(l)
	}
	return out
}

func TestLayoutTranscript_Wrap(t *testing.T) {
	l := layoutTranscript(highlight.Render(layoutSnippets(), nil, "", ""), 11)

	require.Equal(t, 2, l.LineCount())
	assert.Equal(t, []string{"hello world", "foo bar baz"}, plainLines(l.Render(0, 10, 11, -1)))
	assert.Equal(t, []string{"foo bar baz"}, plainLines(l.Render(1, 10, 11, -1)))
}

func TestLayoutTranscript_HitTesting(t *testing.T) {
	l := layoutTranscript(highlight.Render(layoutSnippets(), nil, "", ""), 11)

	tests := []struct {
		name string
		line int
		col  int
		want int
		ok   bool
	}{
		{name: "first word", line: 0, col: 0, want: 0, ok: true},
		{name: "gap after a word", line: 0, col: 5, want: 0, ok: true},
		{name: "second word", line: 0, col: 6, want: 1, ok: true},
		{name: "second line", line: 1, col: 3, want: 2, ok: true},
		{name: "past the text", line: 1, col: 20, ok: false},
		{name: "below the text", line: 5, col: 0, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wi, ok := l.WordAt(tt.line, tt.col)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, wi)
			}
		})
	}

	start, ok := l.SnippetStart(3)
	require.True(t, ok)
	assert.InDelta(t, 5.0, start, 1e-9)

	_, ok = l.SnippetStart(99)
	assert.False(t, ok)
}

func TestLayoutTranscript_Navigation(t *testing.T) {
	l := layoutTranscript(highlight.Render(layoutSnippets(), nil, "", ""), 11)

	wi, ok := l.WordVertical(1, 1)
	require.True(t, ok)
	assert.Equal(t, 3, wi, "closest word below \"world\" is \"bar\"")

	_, ok = l.WordVertical(0, -1)
	assert.False(t, ok)

	wi, ok = l.FirstWordOnLine(1)
	require.True(t, ok)
	assert.Equal(t, 2, wi)

	_, ok = l.FirstWordOnLine(2)
	assert.False(t, ok)
}

func TestLayoutTranscript_Badge(t *testing.T) {
	mentions := []transcript.Mention{
		{Start: 5, End: 10, EntityType: transcript.EntityCompany, Details: transcript.MentionDetails{Name: "Acme"}},
	}
	l := layoutTranscript(highlight.Render(layoutSnippets(), mentions, "Acme", ""), 40)

	require.Equal(t, 1, l.LineCount())
	assert.Equal(t, []string{"hello world  Acme  foo bar baz"}, plainLines(l.Render(0, 10, 40, -1)))

	line, ok := l.FirstHighlightLine()
	require.True(t, ok)
	assert.Equal(t, 0, line)

	// the badge is not a word
	_, ok = l.WordAt(0, 14)
	assert.False(t, ok)

	wi, ok := l.WordAt(0, 19)
	require.True(t, ok)
	s, ok := l.SnippetOf(wi)
	require.True(t, ok)
	assert.Equal(t, "foo bar baz", s.Text)
}

func TestLayoutTranscript_NoHighlight(t *testing.T) {
	l := layoutTranscript(highlight.Render(layoutSnippets(), nil, "", ""), 40)
	_, ok := l.FirstHighlightLine()
	assert.False(t, ok)
}
