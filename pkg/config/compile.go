package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"codeberg.org/miketth/hyprkeys/pkg/keymap"
	"codeberg.org/miketth/hyprkeys/pkg/keys"
	"codeberg.org/miketth/hyprkeys/pkg/launcher"
	"codeberg.org/miketth/hyprkeys/pkg/layout"
	"codeberg.org/miketth/hyprkeys/pkg/window"
)

const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
	BackendMemory = "memory"

	modeAuto = "auto"
)

var ErrInvalidValue = errors.New("invalid value")

// Config is a validated configuration ready to build keymaps from.
type Config struct {
	Pair layout.Pair
	// ForcedMode, if set, replaces the mode derived from the keyboard layout.
	ForcedMode *keymap.LayoutMode
	Profiles   []keymap.Profile
	Launchers  []launcher.Descriptor
	// LauncherKeys binds each launcher chord to its activate action. It is
	// installed as part of the global keymap.
	LauncherKeys keymap.Table
	// Modes pins the layout mode of single applications.
	Modes        map[keymap.AppID]keymap.LayoutMode
	StateBackend string
	StatePath    string
}

// Builder returns a keymap builder over the configured profiles.
func (c Config) Builder() *keymap.Builder {
	return keymap.NewBuilder(c.Pair, c.Profiles...)
}

// Launcher returns the launcher named name.
func (c Config) Launcher(name string) (launcher.Descriptor, bool) {
	for _, l := range c.Launchers {
		if l.Name == name {
			return l, true
		}
	}
	return launcher.Descriptor{}, false
}

// Compile validates f and turns it into a Config. Every problem found is
// reported, not only the first.
func (f FileConfig) Compile() (Config, error) {
	var result *multierror.Error

	cfg := Config{
		Pair:         layout.DvorakToQwerty,
		Modes:        make(map[keymap.AppID]keymap.LayoutMode),
		StateBackend: BackendSQLite,
	}

	pair, err := f.Layout.pair()
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("layout: %w", err))
	} else {
		cfg.Pair = pair
	}

	if m := f.Layout.Mode; m != nil && *m != modeAuto {
		mode, err := keymap.ParseLayoutMode(*m)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("layout.mode: %w", err))
		} else {
			cfg.ForcedMode = &mode
		}
	}

	if b := f.State.Backend; b != nil {
		switch *b {
		case BackendSQLite, BackendJSON, BackendMemory:
			cfg.StateBackend = *b
		default:
			result = multierror.Append(result, fmt.Errorf("state.backend: %w: %q", ErrInvalidValue, *b))
		}
	}
	if p := f.State.Path; p != nil {
		cfg.StatePath = *p
	}

	profiles := keymap.DefaultProfiles()

	global, err := parseKeys(f.Global.Keys)
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("global.keys: %w", err))
	}
	profiles = extendProfile(profiles, keymap.GlobalApp, keymap.Overrides(global))

	for i, app := range f.Apps {
		p, err := app.profile(profiles)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("app[%d] %q: %w", i, app.Name, err))
			continue
		}
		profiles = replaceProfile(profiles, p)

		if app.Mode != "" && app.Mode != modeAuto {
			mode, err := keymap.ParseLayoutMode(app.Mode)
			if err != nil {
				result = multierror.Append(result, fmt.Errorf("app[%d] %q: mode: %w", i, app.Name, err))
				continue
			}
			cfg.Modes[p.ID] = mode
		}
	}
	cfg.Profiles = profiles

	seen := make(map[keys.Chord]string)
	for _, l := range mergeLaunchers(DefaultLaunchers(), f.Launchers) {
		d, err := l.descriptor()
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("launcher %q: %w", l.Name, err))
			continue
		}
		cfg.Launchers = append(cfg.Launchers, d)

		if l.Chord == "" {
			continue
		}
		chord, err := keys.ParseChord(l.Chord)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("launcher %q: chord: %w", l.Name, err))
			continue
		}
		if other, ok := seen[chord]; ok {
			result = multierror.Append(result, fmt.Errorf("launcher %q: chord %s already bound to %q", l.Name, chord, other))
			continue
		}
		seen[chord] = l.Name
		cfg.LauncherKeys = cfg.LauncherKeys.With(chord, keymap.Activate(l.Name))
	}

	if err := result.ErrorOrNil(); err != nil {
		return Config{}, err
	}
	if err := checkGlobalCollisions(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// checkGlobalCollisions rejects application chords that are also bound
// globally. Hyprland would fire both, and unbinding the application's chord
// removes the global bind too.
func checkGlobalCollisions(cfg Config) error {
	b := cfg.Builder()
	global, err := b.Build(keymap.GlobalApp, keymap.Native)
	if err != nil {
		return err
	}
	global = global.Merge(cfg.LauncherKeys)

	var result *multierror.Error
	for _, p := range b.Profiles() {
		if p.ID == keymap.GlobalApp {
			continue
		}
		table, err := b.Build(p.ID, keymap.Native)
		if err != nil {
			return err
		}
		for _, e := range global.Restrict(table).Entries() {
			result = multierror.Append(result, fmt.Errorf("app %q: chord %s is already bound globally to %s", p.ID, e.Input, e.Output))
		}
	}
	return result.ErrorOrNil()
}

func (l LayoutConfig) pair() (layout.Pair, error) {
	if l.From == nil && l.To == nil {
		return layout.DvorakToQwerty, nil
	}

	from, to := layout.DvorakToQwerty.From, layout.DvorakToQwerty.To
	var err error
	if l.From != nil {
		if from, err = layout.ByName(*l.From); err != nil {
			return layout.Pair{}, fmt.Errorf("from: %w", err)
		}
	}
	if l.To != nil {
		if to, err = layout.ByName(*l.To); err != nil {
			return layout.Pair{}, fmt.Errorf("to: %w", err)
		}
	}
	return layout.NewPair(from, to)
}

func (a AppConfig) criteria() window.Criteria {
	return window.Criteria{Process: a.Process, Class: a.Class, TitlePrefix: a.Title}
}

func (a AppConfig) profile(existing []keymap.Profile) (keymap.Profile, error) {
	if a.Name == "" {
		return keymap.Profile{}, fmt.Errorf("name: %w: empty", ErrInvalidValue)
	}
	id := keymap.AppID(a.Name)
	if id == keymap.GlobalApp {
		return keymap.Profile{}, fmt.Errorf("name: %w: use [global.keys]", ErrInvalidValue)
	}

	overrides, err := parseKeys(a.Keys)
	if err != nil {
		return keymap.Profile{}, fmt.Errorf("keys: %w", err)
	}

	match, err := predicate(a.Match, a.criteria())
	if err != nil {
		return keymap.Profile{}, err
	}

	p, ok := findProfile(existing, id)
	if !ok {
		if match == nil {
			return keymap.Profile{}, fmt.Errorf("%w: no match, class, process or title", ErrInvalidValue)
		}
		p = keymap.Profile{ID: id}
		if a.Weblike == nil || *a.Weblike {
			p.Layers = []keymap.Layer{keymap.Weblike}
		}
	} else if a.Weblike != nil {
		return keymap.Profile{}, fmt.Errorf("weblike: %w: cannot change built-in application", ErrInvalidValue)
	}

	if match != nil {
		p.Match = match
	}
	return p.Extend(keymap.Overrides(overrides)), nil
}

func (l LauncherConfig) descriptor() (launcher.Descriptor, error) {
	if l.Name == "" {
		return launcher.Descriptor{}, fmt.Errorf("name: %w: empty", ErrInvalidValue)
	}
	criteria := window.Criteria{Process: l.Process, Class: l.Class, TitlePrefix: l.Title}
	match, err := predicate(l.Match, criteria)
	if err != nil {
		return launcher.Descriptor{}, err
	}
	if match == nil {
		return launcher.Descriptor{}, launcher.ErrNoMatcher
	}

	d := launcher.Descriptor{
		Name:     l.Name,
		Match:    match,
		Criteria: criteria,
		Command:  l.Command,
		Args:     l.Args,
	}
	if _, err := launcher.LaunchCommand(d); err != nil {
		return launcher.Descriptor{}, err
	}
	return d, nil
}

// predicate combines a named matcher with criteria; either one matching is
// enough. It returns nil when neither is given.
func predicate(name string, c window.Criteria) (window.Predicate, error) {
	var preds []window.Predicate
	if name != "" {
		p, ok := window.Named(name)
		if !ok {
			return nil, fmt.Errorf("match: %w: unknown matcher %q", ErrInvalidValue, name)
		}
		preds = append(preds, p)
	}
	if !c.IsZero() {
		preds = append(preds, c.Predicate())
	}

	switch len(preds) {
	case 0:
		return nil, nil
	case 1:
		return preds[0], nil
	default:
		return window.Any(preds...), nil
	}
}

// parseKeys builds an override table. Inputs are added in sorted order so
// the result does not depend on map iteration.
func parseKeys(m map[string]any) (keymap.Table, error) {
	inputs := make([]string, 0, len(m))
	for in := range m {
		inputs = append(inputs, in)
	}
	sort.Strings(inputs)

	var (
		t      keymap.Table
		result *multierror.Error
	)
	for _, in := range inputs {
		chord, err := keys.ParseChord(in)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%q: %w", in, err))
			continue
		}
		out, err := parseOutputValue(m[in])
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%q: %w", in, err))
			continue
		}
		t = t.With(chord, out)
	}
	return t, result.ErrorOrNil()
}

func parseOutputValue(v any) (keymap.Output, error) {
	switch v := v.(type) {
	case string:
		return keymap.ParseOutput(strings.TrimSpace(v))
	case int64:
		if v < 0 || v > 0xff {
			return nil, fmt.Errorf("%w: key code %d out of range", ErrInvalidValue, v)
		}
		return keys.RawCode(v), nil
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: empty macro", ErrInvalidValue)
		}
		tokens := make([]string, len(v))
		for i, step := range v {
			s, ok := step.(string)
			if !ok {
				return nil, fmt.Errorf("%w: macro step %v is not a chord", ErrInvalidValue, step)
			}
			tokens[i] = s
		}
		return keymap.ParseMacro(tokens)
	default:
		return nil, fmt.Errorf("%w: unsupported output %T", ErrInvalidValue, v)
	}
}

func findProfile(profiles []keymap.Profile, id keymap.AppID) (keymap.Profile, bool) {
	for _, p := range profiles {
		if p.ID == id {
			return p, true
		}
	}
	return keymap.Profile{}, false
}

func replaceProfile(profiles []keymap.Profile, p keymap.Profile) []keymap.Profile {
	for i := range profiles {
		if profiles[i].ID == p.ID {
			profiles[i] = p
			return profiles
		}
	}
	return append(profiles, p)
}

func extendProfile(profiles []keymap.Profile, id keymap.AppID, layers ...keymap.Layer) []keymap.Profile {
	p, ok := findProfile(profiles, id)
	if !ok {
		return profiles
	}
	return replaceProfile(profiles, p.Extend(layers...))
}
