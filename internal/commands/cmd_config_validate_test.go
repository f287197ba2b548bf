package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hark/internal/core/config"
)

func TestValidate_Valid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Player.Kind = config.PlayerNone
	cfg.Transcript.HoverPreview = false
	cfg.DataDir = t.TempDir()

	report := validate(&cfg, "")
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)

	var buf bytes.Buffer
	writeReport(&buf, report)
	assert.Contains(t, buf.String(), "Configuration is valid")
}

func TestValidate_FieldErrors(t *testing.T) {
	dir := t.TempDir()
	notDir := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(notDir, nil, 0o644))

	cfg := config.DefaultConfig()
	cfg.Player.Kind = config.PlayerNone
	cfg.DataDir = notDir

	report := validate(&cfg, "")
	require.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0].Field, "data_dir")
	assert.Contains(t, report.Errors[0].Message, "not a directory")

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "transcript.hover_preview", report.Warnings[0].Item)

	var buf bytes.Buffer
	writeReport(&buf, report)
	assert.Contains(t, buf.String(), "data_dir:")
	assert.Contains(t, buf.String(), "1 error(s) found")
	assert.Contains(t, buf.String(), "hover preview has no effect")
}
