package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		present []string
		absent  []string
	}{
		{
			name:    "post and player",
			ctx:     WithPlayer(WithPostID(context.Background(), "p1"), "bridge"),
			present: []string{"post_id", "player"},
		},
		{
			name:    "post only",
			ctx:     WithPostID(context.Background(), "p1"),
			present: []string{"post_id"},
			absent:  []string{"player"},
		},
		{
			name:   "background",
			ctx:    context.Background(),
			absent: []string{"post_id", "player"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(tt.ctx).Msg("test")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			for _, k := range tt.present {
				assert.Contains(t, entry, k)
			}
			for _, k := range tt.absent {
				assert.NotContains(t, entry, k)
			}
		})
	}
}

func TestNotifyHook(t *testing.T) {
	var got []string
	hook := NotifyHook{
		MinLevel: zerolog.WarnLevel,
		Notify:   func(_ zerolog.Level, msg string) { got = append(got, msg) },
	}
	logger := zerolog.New(&bytes.Buffer{}).Hook(hook)

	logger.Debug().Msg("decode ipc line")
	logger.Warn().Msg("socket closed")
	logger.Error().Msg("mpv exited")
	logger.Log().Msg("no level")

	assert.Equal(t, []string{"socket closed", "mpv exited"}, got)
}
