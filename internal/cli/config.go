package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// Configuration
// =============================================================================

// Config holds user preferences loaded from the config file.
// Missing keys keep their defaults, so a partial file is fine.
type Config struct {
	Render RenderConfig `toml:"render"`
	Diff   DiffConfig   `toml:"diff"`
}

// RenderConfig configures the dot command.
type RenderConfig struct {
	Format   string `toml:"format"`   // "svg" or "dot"
	Detailed bool   `toml:"detailed"` // include identifiers in node labels
}

// DiffConfig configures the diff command.
type DiffConfig struct {
	Context int `toml:"context"` // unchanged lines shown around each change
}

// defaultConfig returns the built-in defaults applied before the config
// file is read.
func defaultConfig() Config {
	return Config{
		Render: RenderConfig{Format: "svg"},
		Diff:   DiffConfig{Context: 3},
	}
}

// configPath returns the config file location using the XDG standard
// (~/.config/pbxgraph/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file, falling back to defaults when the
// file does not exist. A malformed file is an error; silently ignoring
// it would hide typos from the user.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
