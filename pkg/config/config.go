// Package config reads the hyprkeys TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

const appName = "hyprkeys"

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Layout    LayoutConfig     `toml:"layout"`
	State     StateConfig      `toml:"state"`
	Global    KeysConfig       `toml:"global"`
	Launchers []LauncherConfig `toml:"launcher"`
	Apps      []AppConfig      `toml:"app"`
}

// LayoutConfig selects the transliteration pair and whether the layout mode
// follows the keyboard ("auto") or is forced.
type LayoutConfig struct {
	Mode *string `toml:"mode"`
	From *string `toml:"from"`
	To   *string `toml:"to"`
}

// StateConfig selects where per-application layout state is kept.
type StateConfig struct {
	Backend *string `toml:"backend"`
	Path    *string `toml:"path"`
}

// KeysConfig maps input chords to outputs. A value is a chord string, an
// integer raw key code, or a list of chords replayed as a macro.
type KeysConfig struct {
	Keys map[string]any `toml:"keys"`
}

type LauncherConfig struct {
	Name    string `toml:"name"`
	Chord   string `toml:"chord"`
	Process string `toml:"process"`
	Class   string `toml:"class"`
	Title   string `toml:"title"`
	Match   string `toml:"match"`
	Command string `toml:"command"`
	Args    string `toml:"args"`
}

type AppConfig struct {
	Name    string         `toml:"name"`
	Process string         `toml:"process"`
	Class   string         `toml:"class"`
	Title   string         `toml:"title"`
	Match   string         `toml:"match"`
	Mode    string         `toml:"mode"`
	Weblike *bool          `toml:"weblike"`
	Keys    map[string]any `toml:"keys"`
}

// LoadConfig reads a TOML config from path. A missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, errors.New("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("stat config: %w", err)
	}

	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("decode config: unknown key %q", undecoded[0].String())
	}
	return cfg, nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/hyprkeys/config.toml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// DefaultStatePath returns the default app state database path, creating
// its directory.
func DefaultStatePath(backend string) (string, error) {
	name := "state.db"
	if backend == BackendJSON {
		name = "state.json"
	}
	path, err := xdg.StateFile(filepath.Join(appName, name))
	if err != nil {
		return "", fmt.Errorf("get state file: %w", err)
	}
	return path, nil
}
