package keymap

import (
	"errors"
	"fmt"

	"codeberg.org/miketth/hyprkeys/pkg/layout"
	"codeberg.org/miketth/hyprkeys/pkg/window"
)

var ErrUnknownApp = errors.New("unknown application")

// AppID names a target application.
type AppID string

// GlobalApp is the profile applied regardless of the focused window.
const GlobalApp AppID = "global"

// Profile is how to recognise an application and which layers build its
// table.
type Profile struct {
	ID     AppID
	Match  window.Predicate
	Layers []Layer
}

// Extend returns a copy of p with more layers applied after its own.
func (p Profile) Extend(layers ...Layer) Profile {
	all := make([]Layer, 0, len(p.Layers)+len(layers))
	all = append(all, p.Layers...)
	all = append(all, layers...)
	p.Layers = all
	return p
}

// Builder builds the chord table of each known application.
type Builder struct {
	pair     layout.Pair
	profiles map[AppID]Profile
	order    []AppID
}

// NewBuilder registers profiles in order. A later profile with the same ID
// replaces the earlier one but keeps its position.
func NewBuilder(pair layout.Pair, profiles ...Profile) *Builder {
	b := &Builder{
		pair:     pair,
		profiles: make(map[AppID]Profile),
	}
	for _, p := range profiles {
		if _, ok := b.profiles[p.ID]; !ok {
			b.order = append(b.order, p.ID)
		}
		b.profiles[p.ID] = p
	}
	return b
}

func (b *Builder) Pair() layout.Pair {
	return b.pair
}

// Profiles returns the registered profiles in registration order.
func (b *Builder) Profiles() []Profile {
	out := make([]Profile, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.profiles[id])
	}
	return out
}

func (b *Builder) Profile(id AppID) (Profile, bool) {
	p, ok := b.profiles[id]
	return p, ok
}

// Build composes the layers of target and transliterates the result when
// mode asks for it.
func (b *Builder) Build(target AppID, mode LayoutMode) (Table, error) {
	p, ok := b.profiles[target]
	if !ok {
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownApp, target)
	}

	t := Apply(Table{}, p.Layers...)
	if mode == Transliterated {
		t = Transliterate(t, b.pair)
	}
	return t, nil
}
