package hyprkeys

import (
	"time"

	"codeberg.org/miketth/hyprkeys/pkg/keymap"
	"codeberg.org/miketth/hyprkeys/pkg/window"
)

type EventListener interface {
	ReadLine() (string, error)
}

type KeyboardLister interface {
	GetKeyboards() ([]Keyboard, error)
}

type WindowInspector interface {
	ActiveWindow() (window.Descriptor, window.Handle, error)
}

type WindowActivator interface {
	ActivateWindow(match window.Predicate) (window.Handle, error)
}

type ShellExecutor interface {
	ShellExecute(command string, args string, opts ExecOptions) error
}

type BindInstaller interface {
	InstallBinds(table keymap.Table) error
	RemoveBinds(table keymap.Table) error
}

type LayoutResolver interface {
	GetLayoutAndVariantFromPrettyName(prettyName string) (string, string)
}

type KeymapRegistrar interface {
	DefineWindowKeymap(name keymap.AppID, match window.Predicate, table keymap.Table)
}

type AppStateStore interface {
	GetAppState(app keymap.AppID) (AppState, bool, error)
	SetAppState(app keymap.AppID, state AppState) error
}

type ExecOptions struct {
	Maximized bool
}

type Keyboard struct {
	Name         string
	Layouts      []string
	Variants     []string
	ActiveKeymap string
	Main         bool
}

// AppState is what was last observed for an application: the keyboard layout
// active while it had focus and the keymap mode derived from it.
type AppState struct {
	Layout    string
	Variant   string
	Mode      keymap.LayoutMode
	UpdatedAt time.Time
}
