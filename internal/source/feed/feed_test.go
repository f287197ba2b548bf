package feed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hark/internal/core/transcript"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>The Desk</title>
    <item>
      <title>Markets Weekly</title>
      <guid>ep-41</guid>
      <link>https://example.com/ep-41</link>
      <enclosure url="https://cdn.example.com/ep-41.jpg" type="image/jpeg" length="1"/>
      <enclosure url="https://cdn.example.com/ep-41.mp3" type="audio/mpeg" length="1"/>
      <itunes:duration>01:02:03</itunes:duration>
      <description>Rates and rallies</description>
    </item>
    <item>
      <title>Crypto Hour</title>
      <guid>ep-42</guid>
      <enclosure url="https://cdn.example.com/ep-42.m4a" type="audio/mp4" length="1"/>
      <itunes:duration>1800</itunes:duration>
    </item>
  </channel>
</rss>`

func writeFeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFeed), 0o644))
	return path
}

func TestResolver_EnrichByGUID(t *testing.T) {
	r := New(writeFeed(t), zerolog.Nop())
	post := transcript.Post{ID: "ep-42"}

	require.NoError(t, r.Enrich(context.Background(), &post))

	assert.Equal(t, "https://cdn.example.com/ep-42.m4a", post.AudioURL)
	require.NotNil(t, post.DurationSeconds)
	assert.InDelta(t, 1800, *post.DurationSeconds, 0.001)
	assert.Equal(t, "Crypto Hour", post.Title)
}

func TestResolver_EnrichByTitle(t *testing.T) {
	r := New(writeFeed(t), zerolog.Nop())
	post := transcript.Post{ID: "db-uuid", Title: "  markets weekly "}

	require.NoError(t, r.Enrich(context.Background(), &post))

	assert.Equal(t, "https://cdn.example.com/ep-41.mp3", post.AudioURL, "audio enclosure preferred over image")
	require.NotNil(t, post.DurationSeconds)
	assert.InDelta(t, 3723, *post.DurationSeconds, 0.001)
	assert.Equal(t, "Rates and rallies", post.Description)
}

func TestResolver_KeepsExistingAudio(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "missing.xml"), zerolog.Nop())
	post := transcript.Post{AudioURL: "https://cdn.example.com/own.mp3"}

	require.NoError(t, r.Enrich(context.Background(), &post), "feed is not fetched")
	assert.Equal(t, "https://cdn.example.com/own.mp3", post.AudioURL)
}

func TestResolver_NoMatch(t *testing.T) {
	r := New(writeFeed(t), zerolog.Nop())
	post := transcript.Post{ID: "other", Title: "Unrelated"}

	require.NoError(t, r.Enrich(context.Background(), &post))
	assert.Empty(t, post.AudioURL)
}

func TestMatch_ByLink(t *testing.T) {
	feed, err := Parse(strings.NewReader(sampleFeed))
	require.NoError(t, err)

	item := Match(feed.Items, transcript.Post{VideoURL: "https://example.com/ep-41"})
	require.NotNil(t, item)
	assert.Equal(t, "ep-41", item.GUID)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{in: "90", want: 90, ok: true},
		{in: "01:30", want: 90, ok: true},
		{in: "1:00:00", want: 3600, ok: true},
		{in: "", ok: false},
		{in: "a:b", ok: false},
		{in: "1:2:3:4", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDuration(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}
