package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/hark/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "hark", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "hark")
}

// DefaultLogFile returns the default log file path in the system's state
// directory.
// On macOS: ~/Library/Logs/hark/hark.log
// On Linux: $XDG_STATE_HOME/hark/hark.log (defaults to ~/.local/state/hark/hark.log)
func DefaultLogFile() string {
	return defaultLogFile(runtime.GOOS)
}

func defaultLogFile(goos string) string {
	// XDG_STATE_HOME wins on every platform
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "hark", "hark.log")
	}

	home, _ := os.UserHomeDir()
	if goos == "darwin" {
		return filepath.Join(home, "Library", "Logs", "hark", "hark.log")
	}
	return filepath.Join(home, ".local", "state", "hark", "hark.log")
}
