package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, zap.NewNop().Sugar(), func() { changed <- struct{}{} })
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(2 * settleDelay)
	defer tick.Stop()

	for {
		select {
		case <-changed:
			cancel()
			if err := <-done; err != context.Canceled {
				t.Errorf("Watch returned %v, want context.Canceled", err)
			}
			return
		case <-deadline:
			t.Fatal("no change reported")
		case <-tick.C:
			// the watcher may not be set up yet, so keep writing
			if err := os.WriteFile(path, []byte("[layout]\n"), 0o600); err != nil {
				t.Fatal(err)
			}
		}
	}
}
