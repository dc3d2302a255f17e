package hyprkeys

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"codeberg.org/miketth/hyprkeys/pkg/keymap"
	"codeberg.org/miketth/hyprkeys/pkg/window"
)

type installed struct {
	name  keymap.AppID
	mode  keymap.LayoutMode
	table keymap.Table
}

// Tracker follows focus and keyboard layout changes and keeps the keymap of
// the focused application installed.
type Tracker struct {
	lock sync.Mutex

	registry     *Registry
	global       *keymap.Table
	current      *installed
	activeWindow window.Descriptor
	layoutMode   keymap.LayoutMode
	layoutKnown  bool
	forcedMode   *keymap.LayoutMode

	listener  EventListener
	inspector WindowInspector
	keyboards KeyboardLister
	binder    BindInstaller
	layouts   LayoutResolver
	store     AppStateStore
	log       *zap.SugaredLogger
}

type TrackerDeps struct {
	Listener  EventListener
	Inspector WindowInspector
	Keyboards KeyboardLister
	Binder    BindInstaller
	Layouts   LayoutResolver
	Store     AppStateStore
}

// NewTracker creates a tracker. forcedMode, if set, replaces the mode derived
// from the keyboard layout for every application.
func NewTracker(deps TrackerDeps, registry *Registry, forcedMode *keymap.LayoutMode, log *zap.SugaredLogger) *Tracker {
	return &Tracker{
		registry:   registry,
		forcedMode: forcedMode,
		listener:   deps.Listener,
		inspector:  deps.Inspector,
		keyboards:  deps.Keyboards,
		binder:     deps.Binder,
		layouts:    deps.Layouts,
		store:      deps.Store,
		log:        log,
	}
}

// Start installs the global keymap and the keymap of the window that has
// focus right now.
func (t *Tracker) Start() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if err := t.detectLayout(); err != nil {
		return fmt.Errorf("detect layout: %w", err)
	}

	if err := t.installGlobal(); err != nil {
		return err
	}

	desc, _, err := t.inspector.ActiveWindow()
	if err != nil {
		return fmt.Errorf("get active window: %w", err)
	}
	return t.focus(desc)
}

// Close removes every bind the tracker installed.
func (t *Tracker) Close() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if err := t.uninstallCurrent(); err != nil {
		return err
	}
	return t.uninstallGlobal()
}

// SetRegistry swaps in a rebuilt registry and reinstalls all binds.
func (t *Tracker) SetRegistry(r *Registry) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if err := t.uninstallCurrent(); err != nil {
		return err
	}
	if err := t.uninstallGlobal(); err != nil {
		return err
	}

	t.registry = r
	if err := t.installGlobal(); err != nil {
		return err
	}
	return t.focus(t.activeWindow)
}

func (t *Tracker) ProcessLines(ctx context.Context) error {
	for {
		resultCh := make(chan string, 1)
		errCh := make(chan error, 1)
		go func() {
			line, err := t.listener.ReadLine()
			if err != nil {
				errCh <- err
				return
			}
			resultCh <- line
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line := <-resultCh:
			err := t.processLine(line)
			if err != nil {
				return fmt.Errorf("process line: %w", err)
			}
		case err := <-errCh:
			return fmt.Errorf("get line: %w", err)
		}
	}
}

func (t *Tracker) processLine(line string) error {
	evType, evData, found := strings.Cut(line, ">>")
	if !found {
		return fmt.Errorf("invalid line: %q", line)
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	switch evType {
	case "activewindow":
		return t.processWindowChange(evData)
	case "activelayout":
		return t.processLayoutChange(evData)
	}

	return nil
}

func (t *Tracker) processWindowChange(data string) error {
	// the event only carries class and title, process name needs a query
	desc, _, err := t.inspector.ActiveWindow()
	if err != nil {
		return fmt.Errorf("get active window: %w", err)
	}

	if desc.Class == "" && data != "," {
		class, title, _ := strings.Cut(data, ",")
		desc = window.Descriptor{Class: class, Title: title}
	}

	return t.focus(desc)
}

func (t *Tracker) processLayoutChange(data string) error {
	keyboardName, prettyName, found := strings.Cut(data, ",")
	if !found {
		return fmt.Errorf("invalid layout change data: %q", data)
	}

	code, variant := t.layouts.GetLayoutAndVariantFromPrettyName(prettyName)
	if code == "" {
		t.log.Warnw("unknown layout, keeping current mode", "keyboard", keyboardName, "layout", prettyName)
		return nil
	}

	t.layoutMode = t.registry.ModeForLayout(code, variant)
	t.layoutKnown = true
	t.log.Debugw("layout changed", "keyboard", keyboardName, "layout", code, "variant", variant, "mode", t.layoutMode)

	if t.current == nil {
		return nil
	}

	km, found := t.registry.Lookup(t.activeWindow)
	if found {
		mode, err := t.modeFor(km, t.activeWindow)
		if err != nil {
			return err
		}
		state := AppState{Layout: code, Variant: variant, Mode: mode, UpdatedAt: time.Now()}
		if err := t.store.SetAppState(km.Name, state); err != nil {
			return fmt.Errorf("save app state: %w", err)
		}
	}

	return t.focus(t.activeWindow)
}

func (t *Tracker) detectLayout() error {
	keyboards, err := t.keyboards.GetKeyboards()
	if err != nil {
		return fmt.Errorf("get keyboards: %w", err)
	}

	var kb *Keyboard
	for i := range keyboards {
		if keyboards[i].Main || kb == nil {
			kb = &keyboards[i]
		}
		if keyboards[i].Main {
			break
		}
	}
	if kb == nil {
		return nil
	}

	code, variant := t.resolveKeyboard(*kb)
	if code == "" {
		return nil
	}
	t.layoutMode = t.registry.ModeForLayout(code, variant)
	t.layoutKnown = true
	t.log.Infow("detected keyboard layout", "keyboard", kb.Name, "layout", code, "variant", variant, "mode", t.layoutMode)
	return nil
}

// resolveKeyboard returns the active layout of kb. A keyboard with a single
// configured layout is known even when its pretty name is not.
func (t *Tracker) resolveKeyboard(kb Keyboard) (string, string) {
	if code, variant := t.layouts.GetLayoutAndVariantFromPrettyName(kb.ActiveKeymap); code != "" {
		return code, variant
	}
	if len(kb.Layouts) != 1 || kb.Layouts[0] == "" {
		return "", ""
	}
	variant := ""
	if len(kb.Variants) > 0 {
		variant = kb.Variants[0]
	}
	return kb.Layouts[0], variant
}

// modeFor picks the layout mode for km while desc has focus. Native windows
// receive keysyms as sent, so only windows shown through a compatibility host
// follow the keyboard layout. The live layout wins over remembered state.
func (t *Tracker) modeFor(km WindowKeymap, desc window.Descriptor) (keymap.LayoutMode, error) {
	if t.forcedMode != nil {
		return *t.forcedMode, nil
	}
	if km.Mode != nil {
		return *km.Mode, nil
	}
	if !window.CompatHosted(desc) {
		return keymap.Native, nil
	}
	if t.layoutKnown {
		return t.layoutMode, nil
	}

	state, found, err := t.store.GetAppState(km.Name)
	if err != nil {
		return keymap.Native, fmt.Errorf("get app state: %w", err)
	}
	if found {
		return state.Mode, nil
	}
	return keymap.Native, nil
}

func (t *Tracker) focus(desc window.Descriptor) error {
	t.activeWindow = desc

	km, found := t.registry.Lookup(desc)
	if !found {
		return t.uninstallCurrent()
	}

	mode, err := t.modeFor(km, desc)
	if err != nil {
		return err
	}

	if t.current != nil && t.current.name == km.Name && t.current.mode == mode {
		return nil
	}

	if err := t.uninstallCurrent(); err != nil {
		return err
	}

	table := t.registry.Table(km, mode)
	if err := t.binder.InstallBinds(table); err != nil {
		return fmt.Errorf("install %s keymap: %w", km.Name, err)
	}
	t.current = &installed{name: km.Name, mode: mode, table: table}
	t.log.Debugw("installed keymap", "app", km.Name, "mode", mode, "class", desc.Class, "title", desc.Title)

	return nil
}

func (t *Tracker) uninstallCurrent() error {
	if t.current == nil {
		return nil
	}
	if err := t.binder.RemoveBinds(t.current.table); err != nil {
		return fmt.Errorf("remove %s keymap: %w", t.current.name, err)
	}
	t.log.Debugw("removed keymap", "app", t.current.name)
	removed := t.current.table
	t.current = nil

	// unbind drops every bind on a chord, global ones included
	if t.global == nil {
		return nil
	}
	shadowed := t.global.Restrict(removed)
	if shadowed.Len() == 0 {
		return nil
	}
	if err := t.binder.InstallBinds(shadowed); err != nil {
		return fmt.Errorf("restore global binds: %w", err)
	}
	t.log.Debugw("restored global binds", "count", shadowed.Len())
	return nil
}

func (t *Tracker) installGlobal() error {
	table := t.registry.Global()
	if err := t.binder.InstallBinds(table); err != nil {
		return fmt.Errorf("install global keymap: %w", err)
	}
	t.global = &table
	return nil
}

func (t *Tracker) uninstallGlobal() error {
	if t.global == nil {
		return nil
	}
	if err := t.binder.RemoveBinds(*t.global); err != nil {
		return fmt.Errorf("remove global keymap: %w", err)
	}
	t.global = nil
	return nil
}
