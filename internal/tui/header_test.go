package tui

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hark/internal/core/highlight"
	"github.com/colonyops/hark/internal/core/transcript"
	"github.com/colonyops/hark/pkg/tuitest"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00"},
		{59.9, "00:59"},
		{65, "01:05"},
		{3599, "59:59"},
		{3725, "01:02:05"},
		{-3, "00:00"},
		{math.NaN(), "00:00"},
		{math.Inf(1), "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatClock(tt.in), "input %v", tt.in)
	}
}

func headerText(h headerView) []string {
	out := make([]string, len(h.lines))
	for i, l := range h.lines {
		out[i] = tuitest.StripANSI(l)
	}
	return out
}

func TestRenderHeader_Meta(t *testing.T) {
	dur := 3725.0
	post := transcript.Post{
		ID:              "ep-1",
		Title:           "Markets Weekly",
		ChannelTitle:    "Money Talk",
		PublishedAt:     time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		DurationSeconds: &dur,
	}

	lines := headerText(renderHeader(post, 80, false, 2))
	require.Len(t, lines, 2)
	assert.Equal(t, "Markets Weekly", lines[0])
	assert.Equal(t, "👤 Money Talk   📅 Mar 9, 2024   ⏱ 01:02:05", lines[1])
}

func TestRenderHeader_Fallbacks(t *testing.T) {
	lines := headerText(renderHeader(transcript.Post{ID: "ep-42"}, 80, false, 2))
	require.Len(t, lines, 2)
	assert.Equal(t, "ep-42", lines[0])
	assert.Equal(t, "👤 Channel", lines[1])
}

func TestRenderHeader_Description(t *testing.T) {
	post := transcript.Post{
		Title:       "T",
		Description: strings.Repeat("lorem ipsum dolor ", 10),
	}

	collapsed := renderHeader(post, 20, false, 2)
	text := headerText(collapsed)
	assert.Equal(t, 3, collapsed.descFrom)
	assert.Equal(t, "Show more", text[len(text)-1])
	assert.Equal(t, len(collapsed.lines), collapsed.descTo)
	assert.Len(t, text, 2+1+2+1)

	expanded := renderHeader(post, 20, true, 2)
	text = headerText(expanded)
	assert.Equal(t, "Show less", text[len(text)-1])
	assert.Greater(t, len(expanded.lines), len(collapsed.lines))

	short := renderHeader(transcript.Post{Title: "T", Description: "One line."}, 80, false, 2)
	text = headerText(short)
	assert.Equal(t, "One line.", text[len(text)-1])
	assert.NotContains(t, strings.Join(text, "\n"), "Show")
}

func TestLayoutChips_WrapAndHitTest(t *testing.T) {
	chips := []highlight.Chip{
		{ID: "Alpha", Label: "Alpha", Kind: transcript.EntityOther},
		{ID: "Beta", Label: "Beta", Kind: transcript.EntityOther},
	}

	row := layoutChips(chips, "", -1, 12)
	require.Len(t, row.lines, 2)
	assert.Equal(t, "Alpha", strings.TrimSpace(tuitest.StripANSI(row.lines[0])))
	assert.Equal(t, "Beta", strings.TrimSpace(tuitest.StripANSI(row.lines[1])))

	i, ok := row.ChipAt(0, 3)
	require.True(t, ok)
	assert.Equal(t, 0, i)

	_, ok = row.ChipAt(0, 8)
	assert.False(t, ok)

	i, ok = row.ChipAt(1, 0)
	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestLayoutChips_SingleLine(t *testing.T) {
	chips := []highlight.Chip{
		{ID: "Alpha", Label: "Alpha", Kind: transcript.EntityOther},
		{ID: "Beta", Label: "Beta", Kind: transcript.EntityOther},
	}

	row := layoutChips(chips, "Beta", 0, 80)
	require.Len(t, row.lines, 1)
	assert.Equal(t, " Alpha   Beta", tuitest.StripANSI(row.lines[0]))

	i, ok := row.ChipAt(0, 9)
	require.True(t, ok)
	assert.Equal(t, 1, i)
}
