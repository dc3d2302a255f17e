package hyprkeys

import (
	"io"

	"codeberg.org/miketth/hyprkeys/pkg/keymap"
	"codeberg.org/miketth/hyprkeys/pkg/window"
)

type fakeListener struct {
	lines []string
}

func (f *fakeListener) ReadLine() (string, error) {
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

type fakeHost struct {
	active    window.Descriptor
	keyboards []Keyboard
	// binds counts binds per chord. Like Hyprland's unbind, removing a chord
	// drops all of its binds.
	binds map[string]int
}

func newFakeHost() *fakeHost {
	return &fakeHost{binds: make(map[string]int)}
}

func (f *fakeHost) bound(chord string) bool {
	return f.binds[chord] > 0
}

func (f *fakeHost) ActiveWindow() (window.Descriptor, window.Handle, error) {
	if f.active == (window.Descriptor{}) {
		return window.Descriptor{}, "", nil
	}
	return f.active, "0xdead", nil
}

func (f *fakeHost) GetKeyboards() ([]Keyboard, error) {
	return f.keyboards, nil
}

func (f *fakeHost) InstallBinds(table keymap.Table) error {
	for _, e := range table.Entries() {
		f.binds[e.Input.String()]++
	}
	return nil
}

func (f *fakeHost) RemoveBinds(table keymap.Table) error {
	for _, e := range table.Entries() {
		delete(f.binds, e.Input.String())
	}
	return nil
}

type fakeLayouts map[string][2]string

func (f fakeLayouts) GetLayoutAndVariantFromPrettyName(prettyName string) (string, string) {
	l := f[prettyName]
	return l[0], l[1]
}

type memStore map[keymap.AppID]AppState

func (m memStore) GetAppState(app keymap.AppID) (AppState, bool, error) {
	s, ok := m[app]
	return s, ok, nil
}

func (m memStore) SetAppState(app keymap.AppID, state AppState) error {
	m[app] = state
	return nil
}
