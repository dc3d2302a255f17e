package hyprland

import (
	"errors"
	"fmt"
	"strings"

	"codeberg.org/miketth/hyprkeys/pkg/keymap"
	"codeberg.org/miketth/hyprkeys/pkg/keys"
)

var ErrUnsupportedOutput = errors.New("unsupported keymap output")

var keysyms = map[keys.Symbol]string{
	"Enter":        "Return",
	"Esc":          "Escape",
	"Back":         "BackSpace",
	"PageUp":       "Page_Up",
	"PageDown":     "Page_Down",
	"CapsLock":     "Caps_Lock",
	"PrintScreen":  "Print",
	"Apps":         "Menu",
	"Comma":        "comma",
	"Period":       "period",
	"Slash":        "slash",
	"Minus":        "minus",
	"Semicolon":    "semicolon",
	"Quote":        "apostrophe",
	"OpenBracket":  "bracketleft",
	"CloseBracket": "bracketright",
	"BackSlash":    "backslash",
	"BackQuote":    "grave",
	"Plus":         "equal",
	"Space":        "space",
}

var modNames = []struct {
	mod  keys.Modifier
	name string
}{
	{keys.ModControl, "CTRL"},
	{keys.ModAlt, "ALT"},
	{keys.ModShift, "SHIFT"},
	{keys.ModSuper, "SUPER"},
}

// bindKey converts a chord to Hyprland's modifier list and xkb keysym name.
func bindKey(c keys.Chord) (string, string) {
	var mods []string
	for _, m := range modNames {
		if c.Mods.Has(m.mod) {
			mods = append(mods, m.name)
		}
	}

	key, ok := keysyms[c.Key]
	if !ok {
		key = string(c.Key)
	}
	return strings.Join(mods, " "), key
}

type BindOptions struct {
	// Self is the command actions are run with, e.g. "/usr/bin/hyprkeys".
	Self string
}

// submapName is the Hyprland submap a multi-stroke prefix enters.
func submapName(label string) string {
	return "hyprkeys-" + strings.NewReplacer(",", "_", ";", "_", " ", "_").Replace(label)
}

type compiler struct {
	opts     BindOptions
	deferred []string
}

// CompileBinds returns the hyprctl keyword commands that install t.
//
// A macro becomes several binds on the same chord, which Hyprland fires in
// order. A multi-stroke prefix enters a submap; inside it every bind also
// resets to the default submap, and a catch-all bind resets on any other
// chord.
func CompileBinds(t keymap.Table, opts BindOptions) ([]string, error) {
	c := &compiler{opts: opts}
	cmds, err := c.table(t, false)
	if err != nil {
		return nil, err
	}
	return append(cmds, c.deferred...), nil
}

func (c *compiler) table(t keymap.Table, inSubmap bool) ([]string, error) {
	var cmds []string
	for _, e := range t.Entries() {
		mods, key := bindKey(e.Input)
		bind := func(dispatcher, args string) {
			cmds = append(cmds, fmt.Sprintf("keyword bind %s,%s,%s,%s", mods, key, dispatcher, args))
		}

		switch o := e.Output.(type) {
		case keys.Chord:
			bind("sendshortcut", shortcutArgs(o))
		case keymap.Macro:
			for _, step := range o {
				bind("sendshortcut", shortcutArgs(step))
			}
		case keys.RawCode:
			bind("sendshortcut", ",code:"+o.String()+",")
		case keymap.Action:
			if c.opts.Self == "" {
				return nil, fmt.Errorf("%v: action %s needs the hyprkeys binary path", e.Input, o.Name)
			}
			bind("exec", strings.Join(append([]string{c.opts.Self, o.Name}, o.Args...), " "))
		case *keymap.MultiStroke:
			name := submapName(o.Label)
			bind("submap", name)
			if err := c.submap(name, o.Table); err != nil {
				return nil, err
			}
			continue
		default:
			return nil, fmt.Errorf("%w: %T for %v", ErrUnsupportedOutput, e.Output, e.Input)
		}

		if inSubmap {
			bind("submap", "reset")
		}
	}
	return cmds, nil
}

func (c *compiler) submap(name string, t keymap.Table) error {
	body, err := c.table(t, true)
	if err != nil {
		return fmt.Errorf("submap %s: %w", name, err)
	}

	block := make([]string, 0, len(body)+3)
	block = append(block, "keyword submap "+name)
	block = append(block, body...)
	block = append(block, "keyword bind ,catchall,submap,reset", "keyword submap reset")
	c.deferred = append(c.deferred, block...)
	return nil
}

func shortcutArgs(c keys.Chord) string {
	mods, key := bindKey(c)
	return mods + "," + key + ","
}

// CompileUnbinds returns the commands that remove what CompileBinds
// installed for t.
func CompileUnbinds(t keymap.Table) ([]string, error) {
	var deferred []string
	cmds := unbindTable(t, &deferred)
	return append(cmds, deferred...), nil
}

func unbindTable(t keymap.Table, deferred *[]string) []string {
	var cmds []string
	for _, e := range t.Entries() {
		mods, key := bindKey(e.Input)
		cmds = append(cmds, fmt.Sprintf("keyword unbind %s,%s", mods, key))

		if ms, ok := e.Output.(*keymap.MultiStroke); ok {
			body := unbindTable(ms.Table, deferred)
			block := []string{"keyword submap " + submapName(ms.Label)}
			block = append(block, body...)
			block = append(block, "keyword unbind ,catchall", "keyword submap reset")
			*deferred = append(*deferred, block...)
		}
	}
	return cmds
}
