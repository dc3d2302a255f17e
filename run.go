package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codeberg.org/miketth/hyprkeys/pkg/config"
	"codeberg.org/miketth/hyprkeys/pkg/hyprkeys"
	"codeberg.org/miketth/hyprkeys/pkg/hyprland"
	"codeberg.org/miketth/hyprkeys/pkg/xkblayouts"
)

func newRunCmd(opts *options) *cobra.Command {
	var (
		evdevXMLPath string
		stateDB      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the daemon that keeps the focused application's keymap bound",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDaemon(cmd.Context(), opts, evdevXMLPath, stateDB)
		},
	}

	cmd.Flags().StringVar(&evdevXMLPath, "evdev-xml-path", defaultEvdevXMLPath, "path to evdev.xml")
	cmd.Flags().StringVar(&stateDB, "state-db", "", "path to the app state store (default from config or XDG state dir)")

	return cmd
}

func runDaemon(ctx context.Context, opts *options, evdevXMLPath, stateDB string) error {
	platform, err := hyprkeys.DetectPlatform(os.Getenv)
	if err != nil {
		return err
	}

	log, err := newLogger(opts.debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	layouts, err := xkblayouts.ParseLayouts(evdevXMLPath)
	if err != nil {
		return fmt.Errorf("parse layouts: %w", err)
	}

	client, err := hyprland.Connect()
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer client.Close()

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("find own executable: %w", err)
	}
	hyprctl, err := hyprland.NewHyprctl(selfCommand(exe, opts.configPath))
	if err != nil {
		return fmt.Errorf("connect hyprctl: %w", err)
	}

	store, err := openStore(cfg, stateDB, log)
	if err != nil {
		return err
	}
	defer func() { _ = store.close() }()

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	tracker := hyprkeys.NewTracker(hyprkeys.TrackerDeps{
		Listener:  client,
		Inspector: hyprctl,
		Keyboards: hyprctl,
		Binder:    hyprctl,
		Layouts:   layouts,
		Store:     store,
	}, registry, cfg.ForcedMode, log)

	if err := tracker.Start(); err != nil {
		return fmt.Errorf("start tracker: %w", err)
	}
	defer func() {
		if err := tracker.Close(); err != nil {
			log.Errorw("failed to remove binds", "error", err)
		}
	}()

	log.Infow("started hyprkeys", "platform", platform, "layouts", registry.Pair(), "keymaps", len(registry.Keymaps()))

	errChan := make(chan error, 4)
	var wg sync.WaitGroup
	spawn := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				errChan <- fmt.Errorf("%s: %w", name, err)
			}
		}()
	}

	spawn("process lines", tracker.ProcessLines)
	spawn("systemd notify", systemdNotifyLoop)
	if store.loop != nil {
		spawn("save state", store.loop)
	}
	if _, err := os.Stat(filepath.Dir(opts.configPath)); err == nil {
		spawn("watch config", func(ctx context.Context) error {
			return config.Watch(ctx, opts.configPath, log, func() {
				reload(tracker, opts.configPath, log)
			})
		})
	} else {
		log.Infow("config directory does not exist, not watching for changes", "path", opts.configPath)
	}

	err = <-errChan
	switch {
	case errors.Is(err, context.Canceled):
		log.Info("shutting down")
		wg.Wait()
		return nil
	case err != nil:
		return err
	}

	return nil
}

// reload rebuilds every keymap from the config file. A broken file leaves the
// running keymaps in place.
func reload(tracker *hyprkeys.Tracker, path string, log *zap.SugaredLogger) {
	cfg, err := loadConfig(path)
	if err != nil {
		log.Errorw("not reloading config", "error", err)
		return
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		log.Errorw("not reloading config", "error", err)
		return
	}

	if err := tracker.SetRegistry(registry); err != nil {
		log.Errorw("failed to install reloaded keymaps", "error", err)
		return
	}
	log.Infow("reloaded config", "path", path, "keymaps", len(registry.Keymaps()))
}
