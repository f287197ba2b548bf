package config

import (
	"fmt"
	"net"
	"os"
	"os/exec"

	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// file accessibility and the player executables. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validatePlayer(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Player.Kind == PlayerNone && c.Transcript.HoverPreview {
		warnings = append(warnings, ValidationWarning{
			Category: "Player",
			Item:     "transcript.hover_preview",
			Message:  "hover preview has no effect without a player",
		})
	}

	if c.Player.Kind != PlayerNone && c.Player.Kind != PlayerBridge {
		if _, err := exec.LookPath(c.Player.MPV.Path); err != nil && c.Player.Kind == PlayerAuto {
			warnings = append(warnings, ValidationWarning{
				Category: "Player",
				Item:     "player.mpv.path",
				Message:  fmt.Sprintf("%s not found, audio posts will play without sync", c.Player.MPV.Path),
			})
		}
	}

	return warnings
}

// validateFileAccess checks config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("player.mpv.socket_dir", c.Player.MPV.SocketDir, isDirectoryOrNotExist),
	)
}

func (c *Config) validatePlayer() error {
	var errs criterio.FieldErrorsBuilder

	if c.Player.Kind == PlayerMPV {
		if err := executableExists(c.Player.MPV.Path); err != nil {
			errs = errs.Append("player.mpv.path", err)
		}
	}

	if c.Player.Kind != PlayerNone {
		if err := validAddr(c.Player.Bridge.Addr); err != nil {
			errs = errs.Append("player.bridge.addr", err)
		}
	}

	if c.Player.Bridge.OpenBrowser && len(c.Player.Bridge.BrowserCommand) > 0 {
		if err := executableExists(c.Player.Bridge.BrowserCommand[0]); err != nil {
			errs = errs.Append("player.bridge.browser_command", err)
		}
	}

	return errs.ToError()
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func executableExists(path string) error {
	if path == "" {
		return nil
	}
	if _, err := exec.LookPath(path); err != nil {
		return fmt.Errorf("executable not found: %s", path)
	}
	return nil
}

func validAddr(addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
