// Package launcher implements run-or-raise: focus a window of an
// application if one is open, start the application otherwise.
package launcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"codeberg.org/miketth/hyprkeys/pkg/hyprkeys"
	"codeberg.org/miketth/hyprkeys/pkg/window"
)

var (
	ErrNoLaunchCommand = errors.New("no launch command")
	ErrNoMatcher       = errors.New("no window matcher")
)

// Descriptor says how to find an application's windows and how to start it.
// Match takes precedence over Criteria.
type Descriptor struct {
	Name     string
	Match    window.Predicate
	Criteria window.Criteria
	Command  string
	Args     string
}

// Action focuses or launches. It returns the focused window, or the zero
// Handle when it launched instead.
type Action func() (window.Handle, error)

type Resolver struct {
	activator hyprkeys.WindowActivator
	executor  hyprkeys.ShellExecutor
	log       *zap.SugaredLogger
}

func NewResolver(activator hyprkeys.WindowActivator, executor hyprkeys.ShellExecutor, log *zap.SugaredLogger) *Resolver {
	return &Resolver{
		activator: activator,
		executor:  executor,
		log:       log,
	}
}

// Resolve checks d and returns its action. A descriptor that could never
// launch anything is rejected here rather than when the action runs.
func (r *Resolver) Resolve(d Descriptor) (Action, error) {
	match := d.Match
	if match == nil {
		if d.Criteria.IsZero() {
			return nil, fmt.Errorf("%s: %w", d.Name, ErrNoMatcher)
		}
		match = d.Criteria.Predicate()
	}

	command, err := LaunchCommand(d)
	if err != nil {
		return nil, err
	}

	return func() (window.Handle, error) {
		handle, err := r.activator.ActivateWindow(match)
		if err != nil {
			return "", fmt.Errorf("activate %s: %w", d.Name, err)
		}
		if !handle.IsZero() {
			r.log.Debugw("activated window", "launcher", d.Name, "window", handle)
			return handle, nil
		}

		r.log.Infow("launching", "launcher", d.Name, "command", command, "args", d.Args)
		if err := r.executor.ShellExecute(command, d.Args, hyprkeys.ExecOptions{Maximized: true}); err != nil {
			return "", fmt.Errorf("launch %s: %w", d.Name, err)
		}
		return "", nil
	}, nil
}

// LaunchCommand returns the explicit command of d, or derives one from the
// process name it matches on.
func LaunchCommand(d Descriptor) (string, error) {
	if c := strings.TrimSpace(d.Command); c != "" {
		return c, nil
	}
	if p := strings.TrimSpace(d.Criteria.Process); p != "" {
		return strings.TrimSuffix(filepath.Base(p), ".exe"), nil
	}
	return "", fmt.Errorf("%s: %w", d.Name, ErrNoLaunchCommand)
}
