package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/hark/internal/core/config"
	"github.com/colonyops/hark/internal/core/highlight"
	"github.com/colonyops/hark/internal/core/transcript"
)

const testPostJSON = `{
  "id": "ep-7",
  "title": "Markets Weekly",
  "audio_url": "https://cdn.example.com/ep-7.mp3",
  "paragraphs": [
    {"start": 0, "end": 5, "text": "Welcome back to the show"},
    {"start": 5, "end": 9, "text": "Acme rallied on earnings"},
    {"start": 9, "end": 14, "text": "and Acme guided higher"},
    {"start": 14, "end": 20, "text": "Bitcoin was flat"}
  ],
  "mentions": [
    {"start": 5, "end": 9, "entity_type": "company", "details": {"name": "Acme", "ticker": "ACM", "sentiment": {"score": 0.6}}},
    {"start": 9, "end": 14, "entity_type": "company", "details": {"name": "Acme", "ticker": "ACM", "sentiment": {"score": -0.2}}},
    {"start": 14, "end": 20, "entity_type": "cryptocurrency", "details": {"name": "Bitcoin"}}
  ]
}`

func writePost(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ep-7.json")
	require.NoError(t, os.WriteFile(path, []byte(testPostJSON), 0o644))
	return path
}

// runApp runs a hark app with the given commands registered and returns
// what it wrote to stdout.
func runApp(t *testing.T, register func(flags *Flags, app *cli.Command) *cli.Command, args ...string) (string, error) {
	t.Helper()

	cfg := config.DefaultConfig()
	flags := &Flags{Config: &cfg}

	var out, errOut bytes.Buffer
	app := &cli.Command{
		Name:      "hark",
		Writer:    &out,
		ErrWriter: &errOut,
	}
	app = register(flags, app)

	err := app.Run(context.Background(), append([]string{"hark"}, args...))
	return out.String(), err
}

func TestChipsCmd_JSON(t *testing.T) {
	path := writePost(t)

	out, err := runApp(t, func(f *Flags, app *cli.Command) *cli.Command {
		return NewChipsCmd(f).Register(app)
	}, "chips", "--json", path)
	require.NoError(t, err)

	var got []struct {
		ID       string `json:"id"`
		Label    string `json:"label"`
		Kind     string `json:"kind"`
		Color    string `json:"color"`
		Mentions int    `json:"mentions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "Acme", got[0].ID)
	assert.Equal(t, "Acme (ACM)", got[0].Label)
	assert.Equal(t, "company", got[0].Kind)
	assert.Equal(t, "negative", got[0].Color, "color follows the latest mention")
	assert.Equal(t, 2, got[0].Mentions)

	assert.Equal(t, "Bitcoin", got[1].ID)
	assert.Equal(t, 1, got[1].Mentions)
}

func TestChipsCmd_Table(t *testing.T) {
	path := writePost(t)

	out, err := runApp(t, func(f *Flags, app *cli.Command) *cli.Command {
		return NewChipsCmd(f).Register(app)
	}, "chips", path)
	require.NoError(t, err)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "MENTIONS")
	assert.Contains(t, out, "Acme (ACM)")
	assert.Contains(t, out, "cryptocurrency")
}

func TestChipsCmd_NoSource(t *testing.T) {
	_, err := runApp(t, func(f *Flags, app *cli.Command) *cli.Command {
		return NewChipsCmd(f).Register(app)
	}, "chips")
	require.ErrorIs(t, err, errNoSource)
}

func TestChipInfos_SkipsUnnamed(t *testing.T) {
	mentions := []transcript.Mention{
		{EntityType: transcript.EntityCompany, Details: transcript.MentionDetails{Name: "Acme"}},
		{EntityType: transcript.EntityOther},
		{EntityType: transcript.EntityCryptocurrency, Details: transcript.MentionDetails{Name: "Acme"}},
	}

	infos := chipInfos(mentions)
	require.Len(t, infos, 2, "same name with another kind is a separate chip")
	assert.Equal(t, 1, infos[0].Mentions)
	assert.Equal(t, 1, infos[1].Mentions)
}

func TestGroupsCmd_JSON(t *testing.T) {
	path := writePost(t)

	out, err := runApp(t, func(f *Flags, app *cli.Command) *cli.Command {
		return NewGroupsCmd(f).Register(app)
	}, "groups", "--json", "--entity", "Acme", path)
	require.NoError(t, err)

	var got struct {
		Snippets []transcript.Snippet `json:"snippets"`
		Groups   []struct {
			Kind  highlight.Kind `json:"kind"`
			Start int            `json:"start"`
			End   int            `json:"end"`
			Label string         `json:"label"`
			Color string         `json:"color"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Snippets, 4)
	require.Len(t, got.Groups, 3)

	assert.Equal(t, highlight.KindPlain, got.Groups[0].Kind)
	assert.Equal(t, highlight.KindHighlighted, got.Groups[1].Kind)
	assert.Equal(t, 1, got.Groups[1].Start)
	assert.Equal(t, 3, got.Groups[1].End)
	assert.Equal(t, "Acme (ACM)", got.Groups[1].Label)
	assert.Equal(t, "positive", got.Groups[1].Color)
	assert.Equal(t, highlight.KindPlain, got.Groups[2].Kind)
}

func TestGroupsCmd_TextWithQuery(t *testing.T) {
	path := writePost(t)

	out, err := runApp(t, func(f *Flags, app *cli.Command) *cli.Command {
		return NewGroupsCmd(f).Register(app)
	}, "groups", "--query", "bitcoin", path)
	require.NoError(t, err)

	assert.Contains(t, out, "[0:14 - 0:20]")
	assert.Contains(t, out, "  Bitcoin was flat")
	assert.NotContains(t, out, "Welcome")
}

func TestGroupsCmd_NoMatches(t *testing.T) {
	path := writePost(t)

	out, err := runApp(t, func(f *Flags, app *cli.Command) *cli.Command {
		return NewGroupsCmd(f).Register(app)
	}, "groups", "--query", "zzz", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No matching paragraphs.")
}

func TestSchemaCmd(t *testing.T) {
	out, err := runApp(t, func(f *Flags, app *cli.Command) *cli.Command {
		return NewSchemaCmd(f).Register(app)
	}, "schema")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "hark post", schema["title"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "paragraphs")
	assert.Contains(t, props, "mentions")
	assert.Contains(t, props, "audio_url")
}

func TestLsCmd_RequiresChannel(t *testing.T) {
	_, err := runApp(t, func(f *Flags, app *cli.Command) *cli.Command {
		return NewLsCmd(f).Register(app)
	}, "ls")
	require.ErrorContains(t, err, "--channel is required")
}

func TestLsCmd_RequiresDSN(t *testing.T) {
	_, err := runApp(t, func(f *Flags, app *cli.Command) *cli.Command {
		return NewLsCmd(f).Register(app)
	}, "ls", "--channel", "UC123")
	require.ErrorContains(t, err, "DSN is required")
}

func TestFormatDuration(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		in   *float64
		want string
	}{
		{nil, "-"},
		{f(-1), "-"},
		{f(0), "0:00"},
		{f(65.7), "1:05"},
		{f(3725), "1:02:05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in))
	}
}
