package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/pyhtmx-gui-client/config.toml
//  2. ~/.config/pyhtmx-gui-client/config.toml
//
// If no file exists, returns DefaultConfig().
func Load() (*Config, error) {
	paths := configSearchPaths()
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads configuration from an io.Reader.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultConfig returns the default configuration with sensible defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	stateDir := filepath.Join(xdgStateHome(home), "pyhtmx-gui-client")

	return &Config{
		Server: ServerConfig{
			URL:        "http://localhost:8000",
			PingPeriod: Duration{5 * time.Second},
		},
		Input: InputConfig{
			KeyDebounce:     Duration{25 * time.Millisecond},
			PointerDebounce: Duration{15 * time.Millisecond},
		},
		UI: UIConfig{
			Theme:             "default",
			InactivityTimeout: Duration{4 * time.Second},
			SettleDelay:       Duration{500 * time.Millisecond},
			ScrollSettle:      Duration{250 * time.Millisecond},
			FrameRate:         60,
			MediaProtocol:     "auto",
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(stateDir, "client.log"),
		},
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PYHTMX_SERVER"); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv("PYHTMX_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("PYHTMX_MEDIA_PROTOCOL"); v != "" {
		cfg.UI.MediaProtocol = v
	}
	if v := os.Getenv("PYHTMX_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "pyhtmx-gui-client", "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "pyhtmx-gui-client", "config.toml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgStateHome returns XDG_STATE_HOME or ~/.local/state as fallback.
func xdgStateHome(home string) string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "state")
}
