// Package config handles configuration loading and validation for hark.
package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/hark/internal/core/styles"
)

// Player kinds.
const (
	PlayerAuto   = "auto"
	PlayerMPV    = "mpv"
	PlayerBridge = "bridge"
	PlayerNone   = "none"
)

var playerKinds = []string{PlayerAuto, PlayerMPV, PlayerBridge, PlayerNone}

// Config holds the application configuration.
type Config struct {
	Theme      string           `yaml:"theme"`
	Player     PlayerConfig     `yaml:"player"`
	Database   DatabaseConfig   `yaml:"database"`
	Transcript TranscriptConfig `yaml:"transcript"`
	DataDir    string           `yaml:"-"` // set by caller, not from config file
}

// PlayerConfig selects and configures the media target.
type PlayerConfig struct {
	// Kind is one of auto, mpv, bridge or none. auto picks the bridge for
	// YouTube posts and mpv for everything else.
	Kind   string       `yaml:"kind"`
	MPV    MPVConfig    `yaml:"mpv"`
	Bridge BridgeConfig `yaml:"bridge"`
}

// MPVConfig configures the mpv media target.
type MPVConfig struct {
	Path                string   `yaml:"path"`
	Args                []string `yaml:"args"`
	Video               bool     `yaml:"video"`      // show the video window for video posts
	SocketDir           string   `yaml:"socket_dir"` // defaults to the data dir
	ReadyTimeoutSeconds int      `yaml:"ready_timeout_seconds"`
}

// BridgeConfig configures the embedded frame bridge.
type BridgeConfig struct {
	Addr           string   `yaml:"addr"`
	OpenBrowser    bool     `yaml:"open_browser"`
	BrowserCommand []string `yaml:"browser_command"`
}

// DatabaseConfig holds the read-only Postgres source settings.
type DatabaseConfig struct {
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// TranscriptConfig tunes the transcript view.
type TranscriptConfig struct {
	HoverPreview     bool `yaml:"hover_preview"`
	WrapWidth        int  `yaml:"wrap_width"` // 0 uses the terminal width
	DescriptionLines int  `yaml:"description_lines"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: styles.DefaultTheme,
		Player: PlayerConfig{
			Kind: PlayerAuto,
			MPV: MPVConfig{
				Path:                "mpv",
				ReadyTimeoutSeconds: 15,
			},
			Bridge: BridgeConfig{
				Addr:        "127.0.0.1:0",
				OpenBrowser: true,
			},
		},
		Database: DatabaseConfig{
			MaxOpenConns: 2,
		},
		Transcript: TranscriptConfig{
			HoverPreview:     true,
			DescriptionLines: 2,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Player.Kind == "" {
		c.Player.Kind = defaults.Player.Kind
	}
	if c.Player.MPV.Path == "" {
		c.Player.MPV.Path = defaults.Player.MPV.Path
	}
	if c.Player.MPV.ReadyTimeoutSeconds == 0 {
		c.Player.MPV.ReadyTimeoutSeconds = defaults.Player.MPV.ReadyTimeoutSeconds
	}
	if c.Player.MPV.SocketDir == "" {
		c.Player.MPV.SocketDir = c.DataDir
	}
	if c.Player.Bridge.Addr == "" {
		c.Player.Bridge.Addr = defaults.Player.Bridge.Addr
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Transcript.DescriptionLines == 0 {
		c.Transcript.DescriptionLines = defaults.Transcript.DescriptionLines
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if _, ok := styles.GetPalette(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", c.Theme, styles.ThemeNames())
	}

	if !slices.Contains(playerKinds, c.Player.Kind) {
		return fmt.Errorf("player.kind %q must be one of %v", c.Player.Kind, playerKinds)
	}

	if c.Player.MPV.ReadyTimeoutSeconds < 1 {
		return fmt.Errorf("player.mpv.ready_timeout_seconds must be at least 1")
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}

	if c.Transcript.WrapWidth < 0 {
		return fmt.Errorf("transcript.wrap_width cannot be negative")
	}

	if c.Transcript.DescriptionLines < 1 {
		return fmt.Errorf("transcript.description_lines must be at least 1")
	}

	return nil
}
