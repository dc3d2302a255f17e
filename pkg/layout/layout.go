// Package layout transliterates key symbols between two keyboard layouts
// given as aligned tables of physical key positions.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"codeberg.org/miketth/hyprkeys/pkg/keys"
)

var (
	ErrLayoutMismatch = errors.New("layout tables differ in length")
	ErrDuplicateKey   = errors.New("layout table repeats a key")
	ErrUnknownLayout  = errors.New("unknown layout")
)

// Table lists the literal produced by each physical key position in a fixed
// canonical order.
type Table struct {
	Name string
	keys []rune
}

// NewTable builds a table. Every character must be unique, otherwise the
// reverse direction would be ambiguous.
func NewTable(name, literals string) (Table, error) {
	seen := make(map[rune]bool)
	for _, r := range literals {
		if seen[r] {
			return Table{}, fmt.Errorf("%w: %q in %s", ErrDuplicateKey, r, name)
		}
		seen[r] = true
	}
	return Table{Name: name, keys: []rune(literals)}, nil
}

func mustTable(name, literals string) Table {
	t, err := NewTable(name, literals)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Table) Len() int {
	return len(t.keys)
}

// Index returns the position of a single-character literal, or -1.
func (t Table) Index(literal string) int {
	r := []rune(literal)
	if len(r) != 1 {
		return -1
	}
	for i, k := range t.keys {
		if k == r[0] {
			return i
		}
	}
	return -1
}

func (t Table) At(i int) string {
	return string(t.keys[i])
}

func (t Table) String() string {
	return string(t.keys)
}

var (
	// Dvorak and Qwerty cover the digit row and the three letter rows.
	Dvorak = mustTable("dvorak", "1234567890',.pyfgcrlaoeuidhtns;qjkxbmwvz")
	Qwerty = mustTable("qwerty", "1234567890qwertyuiopasdfghjkl;zxcvbnm,./")

	// DvorakANSI and QwertyANSI add the punctuation keys around the letter
	// block, where the two layouts disagree on "=" and "-".
	DvorakANSI = mustTable("dvorak-ansi", "[]',.pyfgcrl/=aoeuidhtns-;qjkxbmwvz")
	QwertyANSI = mustTable("qwerty-ansi", "-=qwertyuiop[]asdfghjkl;'zxcvbnm,./")
)

var builtin = map[string]Table{
	Dvorak.Name:     Dvorak,
	Qwerty.Name:     Qwerty,
	DvorakANSI.Name: DvorakANSI,
	QwertyANSI.Name: QwertyANSI,
}

// ByName returns a built-in table.
func ByName(name string) (Table, error) {
	t, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
	return t, nil
}

// Pair is a source and target table of equal length.
type Pair struct {
	From Table
	To   Table
}

func NewPair(from, to Table) (Pair, error) {
	if from.Len() != to.Len() {
		return Pair{}, fmt.Errorf("%w: %s has %d keys, %s has %d",
			ErrLayoutMismatch, from.Name, from.Len(), to.Name, to.Len())
	}
	return Pair{From: from, To: to}, nil
}

// DvorakToQwerty is the default pair.
var DvorakToQwerty = Pair{From: Dvorak, To: Qwerty}

func (p Pair) Reverse() Pair {
	return Pair{From: p.To, To: p.From}
}

func (p Pair) Translate(key keys.Symbol) keys.Symbol {
	return Translate(key, p.From, p.To)
}

// TranslateChord translates the base key of c, keeping its modifiers.
func (p Pair) TranslateChord(c keys.Chord) keys.Chord {
	return c.WithKey(p.Translate(c.Key))
}

func (p Pair) String() string {
	return p.From.Name + "->" + p.To.Name
}

// Translate maps key to the symbol at the same position in to. Keys absent
// from from are returned unchanged.
func Translate(key keys.Symbol, from, to Table) keys.Symbol {
	idx := from.Index(keys.Decode(key))
	if idx < 0 || idx >= to.Len() {
		return key
	}
	return keys.Encode(to.At(idx))
}
