package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"codeberg.org/miketth/hyprkeys/pkg/appstate/json"
	"codeberg.org/miketth/hyprkeys/pkg/appstate/memory"
	"codeberg.org/miketth/hyprkeys/pkg/appstate/sqlite"
	"codeberg.org/miketth/hyprkeys/pkg/config"
	"codeberg.org/miketth/hyprkeys/pkg/hyprkeys"
	"codeberg.org/miketth/hyprkeys/pkg/keymap"
)

const stateSaveInterval = 30 * time.Second

func loadConfig(path string) (config.Config, error) {
	fc, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg, err := fc.Compile()
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func buildRegistry(cfg config.Config) (*hyprkeys.Registry, error) {
	registry, err := hyprkeys.BuildRegistry(cfg.Builder(), cfg.LauncherKeys, cfg.Modes)
	if err != nil {
		return nil, fmt.Errorf("build keymaps: %w", err)
	}
	return registry, nil
}

// appTable returns the table of app as it would be installed in mode.
func appTable(registry *hyprkeys.Registry, app keymap.AppID, mode keymap.LayoutMode) (keymap.Table, error) {
	if app == keymap.GlobalApp {
		t := registry.Global()
		if mode == keymap.Transliterated {
			t = keymap.Transliterate(t, registry.Pair())
		}
		return t, nil
	}

	for _, km := range registry.Keymaps() {
		if km.Name == app {
			return registry.Table(km, mode), nil
		}
	}
	return keymap.Table{}, fmt.Errorf("%w: %q", keymap.ErrUnknownApp, app)
}

// selfCommand is the command line binds use to run hyprkeys actions.
func selfCommand(exe, configPath string) string {
	if configPath == config.DefaultConfigPath() {
		return exe
	}
	return exe + " --config " + configPath
}

type stateStore struct {
	hyprkeys.AppStateStore
	close func() error
	// loop, if set, must run while the store is in use.
	loop func(ctx context.Context) error
}

func openStore(cfg config.Config, path string, log *zap.SugaredLogger) (*stateStore, error) {
	if path == "" {
		path = cfg.StatePath
	}
	if path == "" && cfg.StateBackend != config.BackendMemory {
		var err error
		if path, err = config.DefaultStatePath(cfg.StateBackend); err != nil {
			return nil, err
		}
	}

	switch cfg.StateBackend {
	case config.BackendMemory:
		return &stateStore{
			AppStateStore: memory.NewStateStore(),
			close:         func() error { return nil },
		}, nil

	case config.BackendJSON:
		store, err := json.NewStateStore(path)
		if err != nil {
			return nil, fmt.Errorf("create json state store: %w", err)
		}
		return &stateStore{
			AppStateStore: store,
			close:         store.Close,
			loop: func(ctx context.Context) error {
				return store.SaveLooper(ctx, stateSaveInterval)
			},
		}, nil

	default:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
		store, err := sqlite.NewStateStore(path, log)
		if err != nil {
			return nil, fmt.Errorf("create sqlite state store: %w", err)
		}
		return &stateStore{AppStateStore: store, close: store.Close}, nil
	}
}
