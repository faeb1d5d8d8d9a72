package config

import (
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// Config is the fully resolved orgrun configuration.
type Config struct {
	Engine  Engine  `koanf:"engine"`
	Decoder Decoder `koanf:"decoder"`
	Runner  Runner  `koanf:"runner"`
	History History `koanf:"history"`

	// Source is the user config file that was merged, if any.
	Source string `koanf:"-"`
}

// Engine names the external rule engine and its wrapper script.
type Engine struct {
	Name       string `koanf:"name"`
	ScriptName string `koanf:"script_name"`
	// BaseDir is the application base directory searched for the wrapper
	// script. Empty means the directory of the running executable.
	BaseDir string `koanf:"base_dir"`
}

// Decoder tunes the progress estimate.
type Decoder struct {
	ProgressOffset float64 `koanf:"progress_offset"`
	ProgressCap    float64 `koanf:"progress_cap"`
}

// Runner holds process control settings.
type Runner struct {
	KillTimeout time.Duration `koanf:"kill_timeout"`
}

// History controls the run history store.
type History struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

const historyRelPath = "orgrun/history.db"

// HistoryPath returns the configured database path, defaulting to the
// XDG data directory.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	return xdg.DataFile(historyRelPath)
}

// ToTOML renders the effective configuration in the same shape as the
// config file.
func (c *Config) ToTOML() ([]byte, error) {
	doc := map[string]any{
		"engine": map[string]any{
			"name":        c.Engine.Name,
			"script_name": c.Engine.ScriptName,
			"base_dir":    c.Engine.BaseDir,
		},
		"decoder": map[string]any{
			"progress_offset": c.Decoder.ProgressOffset,
			"progress_cap":    c.Decoder.ProgressCap,
		},
		"runner": map[string]any{
			"kill_timeout": c.Runner.KillTimeout.String(),
		},
		"history": map[string]any{
			"enabled": c.History.Enabled,
			"path":    c.History.Path,
		},
	}
	return toml.Marshal(doc)
}
