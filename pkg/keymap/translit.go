package keymap

import (
	"fmt"
	"strings"

	"codeberg.org/miketth/hyprkeys/pkg/keys"
	"codeberg.org/miketth/hyprkeys/pkg/layout"
)

// LayoutMode selects whether output chords are installed as written or
// transliterated into the other layout.
type LayoutMode int

const (
	Native LayoutMode = iota
	Transliterated
)

func (m LayoutMode) String() string {
	switch m {
	case Native:
		return "native"
	case Transliterated:
		return "transliterated"
	}
	return fmt.Sprintf("LayoutMode(%d)", int(m))
}

func ParseLayoutMode(s string) (LayoutMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "native":
		return Native, nil
	case "transliterated", "transliterate":
		return Transliterated, nil
	}
	return Native, fmt.Errorf("unknown layout mode %q", s)
}

// Transliterate passes the base key of every output chord through p. Raw
// codes and actions are left alone; multi-stroke tables are transliterated
// recursively. Input chords are not touched.
func Transliterate(t Table, p layout.Pair) Table {
	return t.MapOutputs(func(o Output) Output {
		return transliterateOutput(o, p)
	})
}

func transliterateOutput(o Output, p layout.Pair) Output {
	switch o := o.(type) {
	case keys.Chord:
		return p.TranslateChord(o)
	case Macro:
		m := make(Macro, len(o))
		for i, c := range o {
			m[i] = p.TranslateChord(c)
		}
		return m
	case *MultiStroke:
		return NewMultiStroke(o.Label, Transliterate(o.Table, p))
	default:
		return o
	}
}
