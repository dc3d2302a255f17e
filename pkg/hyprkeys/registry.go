package hyprkeys

import (
	"fmt"
	"strings"

	"codeberg.org/miketth/hyprkeys/pkg/keymap"
	"codeberg.org/miketth/hyprkeys/pkg/layout"
	"codeberg.org/miketth/hyprkeys/pkg/window"
)

// WindowKeymap is a table that applies while a matching window has focus.
type WindowKeymap struct {
	Name  keymap.AppID
	Match window.Predicate
	Table keymap.Table
	// Mode pins the layout mode for this application, overriding the mode
	// derived from the keyboard layout.
	Mode *keymap.LayoutMode
}

// Registry holds the built keymaps. It is filled once and then only read;
// a configuration reload builds a new Registry.
type Registry struct {
	pair    layout.Pair
	global  keymap.Table
	keymaps []WindowKeymap
}

func NewRegistry(pair layout.Pair) *Registry {
	return &Registry{pair: pair}
}

// BuildRegistry builds every profile of b in native mode. The global
// profile becomes the global keymap with extraGlobal applied on top.
func BuildRegistry(b *keymap.Builder, extraGlobal keymap.Table, modes map[keymap.AppID]keymap.LayoutMode) (*Registry, error) {
	r := NewRegistry(b.Pair())
	r.DefineGlobalKeymap(extraGlobal)

	for _, p := range b.Profiles() {
		table, err := b.Build(p.ID, keymap.Native)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", p.ID, err)
		}

		if p.ID == keymap.GlobalApp {
			r.DefineGlobalKeymap(table.Merge(extraGlobal))
			continue
		}

		r.DefineWindowKeymap(p.ID, p.Match, table)
		if mode, ok := modes[p.ID]; ok {
			r.PinMode(p.ID, mode)
		}
	}

	return r, nil
}

func (r *Registry) Pair() layout.Pair {
	return r.pair
}

func (r *Registry) DefineGlobalKeymap(table keymap.Table) {
	r.global = table
}

func (r *Registry) Global() keymap.Table {
	return r.global
}

// DefineWindowKeymap adds a keymap. Redefining a name replaces the table but
// keeps its precedence.
func (r *Registry) DefineWindowKeymap(name keymap.AppID, match window.Predicate, table keymap.Table) {
	for i := range r.keymaps {
		if r.keymaps[i].Name == name {
			r.keymaps[i].Match = match
			r.keymaps[i].Table = table
			return
		}
	}
	r.keymaps = append(r.keymaps, WindowKeymap{Name: name, Match: match, Table: table})
}

func (r *Registry) PinMode(name keymap.AppID, mode keymap.LayoutMode) {
	for i := range r.keymaps {
		if r.keymaps[i].Name == name {
			r.keymaps[i].Mode = &mode
			return
		}
	}
}

func (r *Registry) Keymaps() []WindowKeymap {
	out := make([]WindowKeymap, len(r.keymaps))
	copy(out, r.keymaps)
	return out
}

// Lookup returns the first keymap whose predicate accepts d.
func (r *Registry) Lookup(d window.Descriptor) (WindowKeymap, bool) {
	for _, km := range r.keymaps {
		if km.Match != nil && km.Match(d) {
			return km, true
		}
	}
	return WindowKeymap{}, false
}

// Table returns the keymap's table for mode.
func (r *Registry) Table(km WindowKeymap, mode keymap.LayoutMode) keymap.Table {
	if mode == keymap.Transliterated {
		return keymap.Transliterate(km.Table, r.pair)
	}
	return km.Table
}

// ModeForLayout derives the layout mode a compatibility-hosted window needs
// under the active xkb layout. Tables are written for the pair's source
// layout; when the keyboard runs the target layout instead, outputs are
// moved to the target's key positions.
func (r *Registry) ModeForLayout(code, variant string) keymap.LayoutMode {
	if layoutFamily(code, variant) == family(r.pair.To.Name) {
		return keymap.Transliterated
	}
	return keymap.Native
}

func family(tableName string) string {
	name, _, _ := strings.Cut(tableName, "-")
	return name
}

func layoutFamily(code, variant string) string {
	switch {
	case strings.Contains(variant, "dvorak") || code == "dvorak":
		return "dvorak"
	case strings.Contains(variant, "colemak"):
		return "colemak"
	case code == "us" && variant == "":
		return "qwerty"
	}
	return ""
}
