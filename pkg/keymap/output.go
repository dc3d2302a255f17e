package keymap

import (
	"fmt"
	"strings"

	"codeberg.org/miketth/hyprkeys/pkg/keys"
)

// Output is what an input chord resolves to. It is one of keys.Chord,
// Macro, keys.RawCode, Action or *MultiStroke.
type Output interface {
	String() string
}

// Macro is a sequence of chords replayed in order.
type Macro []keys.Chord

func (m Macro) String() string {
	parts := make([]string, len(m))
	for i, c := range m {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Action is an application-level command handle, e.g. activating a launcher.
// The host decides how to run it.
type Action struct {
	Name string
	Args []string
}

func (a Action) String() string {
	if len(a.Args) == 0 {
		return a.Name + "()"
	}
	return a.Name + "(" + strings.Join(a.Args, ", ") + ")"
}

// Activate is the action that runs or raises the named launcher.
func Activate(launcher string) Action {
	return Action{Name: "activate", Args: []string{launcher}}
}

// MultiStroke is a prefix chord's second-level table.
type MultiStroke struct {
	Label string
	Table Table
}

func NewMultiStroke(label string, table Table) *MultiStroke {
	return &MultiStroke{Label: label, Table: table}
}

func (m *MultiStroke) String() string {
	return "<" + m.Label + ">"
}

// ParseOutput parses a single output token: an all-digit token is a raw key
// code, anything else a chord.
func ParseOutput(s string) (Output, error) {
	if code, ok := keys.ParseRawCode(s); ok {
		return code, nil
	}
	c, err := keys.ParseChord(s)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ParseMacro parses a chord sequence.
func ParseMacro(tokens []string) (Macro, error) {
	m := make(Macro, 0, len(tokens))
	for _, tok := range tokens {
		c, err := keys.ParseChord(tok)
		if err != nil {
			return nil, fmt.Errorf("macro step %q: %w", tok, err)
		}
		m = append(m, c)
	}
	return m, nil
}

func mustOutput(s string) Output {
	o, err := ParseOutput(s)
	if err != nil {
		panic(err)
	}
	return o
}

func mustMacro(tokens ...string) Macro {
	m, err := ParseMacro(tokens)
	if err != nil {
		panic(err)
	}
	return m
}
