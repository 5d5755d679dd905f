package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/actionsheet/internal/core/config"
	"github.com/colonyops/actionsheet/internal/core/eventbus"
)

// ErrNoSelection is returned when a sheet closes without firing a handler.
var ErrNoSelection = errors.New("no action selected")

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is read in the Before hook and available to all commands.
	// It is not validated; commands that depend on it call ValidConfig.
	Config *config.Config

	// Bus carries sheet lifecycle events for the duration of the process.
	Bus *eventbus.EventBus
}

// ValidConfig returns the loaded configuration once it passes validation.
func (f *Flags) ValidConfig() (*config.Config, error) {
	if f.Config == nil {
		return nil, errors.New("config not loaded")
	}
	if err := f.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", f.ConfigPath, err)
	}
	return f.Config, nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "actionsheet", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/actionsheet/actionsheet.log
// On Linux: $XDG_STATE_HOME/actionsheet/actionsheet.log (defaults to ~/.local/state/actionsheet/actionsheet.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "actionsheet", "actionsheet.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "actionsheet", "actionsheet.log")
	}

	return filepath.Join(home, ".local", "state", "actionsheet", "actionsheet.log")
}
