package keymap

import "codeberg.org/miketth/hyprkeys/pkg/keys"

// Entry is one input chord and what it resolves to.
type Entry struct {
	Input  keys.Chord
	Output Output
}

// Table is an ordered chord mapping. It is never modified in place: With and
// the other builders return a new Table, so a built table can be shared
// freely.
type Table struct {
	entries []Entry
	index   map[keys.Chord]int
}

func (t Table) Len() int {
	return len(t.entries)
}

func (t Table) Lookup(c keys.Chord) (Output, bool) {
	i, ok := t.index[c]
	if !ok {
		return nil, false
	}
	return t.entries[i].Output, true
}

// Entries returns the entries in insertion order.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// With returns a copy of t mapping in to out. A chord that is already mapped
// keeps its position and takes the new output.
func (t Table) With(in keys.Chord, out Output) Table {
	n := Table{
		entries: make([]Entry, len(t.entries), len(t.entries)+1),
		index:   make(map[keys.Chord]int, len(t.entries)+1),
	}
	copy(n.entries, t.entries)
	for k, v := range t.index {
		n.index[k] = v
	}

	if i, ok := n.index[in]; ok {
		n.entries[i].Output = out
		return n
	}
	n.index[in] = len(n.entries)
	n.entries = append(n.entries, Entry{Input: in, Output: out})
	return n
}

// Set is With for chords written in the host grammar. It panics on a
// malformed chord, so it is meant for static tables.
func (t Table) Set(in string, out Output) Table {
	return t.With(keys.MustParseChord(in), out)
}

// Merge applies the entries of o on top of t.
func (t Table) Merge(o Table) Table {
	for _, e := range o.entries {
		t = t.With(e.Input, e.Output)
	}
	return t
}

// Restrict returns the entries of t whose input o also maps.
func (t Table) Restrict(o Table) Table {
	var n Table
	for _, e := range t.entries {
		if _, ok := o.index[e.Input]; ok {
			n = n.With(e.Input, e.Output)
		}
	}
	return n
}

// MapOutputs returns a table with every output passed through fn.
func (t Table) MapOutputs(fn func(Output) Output) Table {
	var n Table
	for _, e := range t.entries {
		n = n.With(e.Input, fn(e.Output))
	}
	return n
}

// Layer is one composable step of table construction.
type Layer func(Table) Table

// Apply runs layers in order starting from t. Later layers win on collision.
func Apply(t Table, layers ...Layer) Table {
	for _, l := range layers {
		t = l(t)
	}
	return t
}

// Overrides returns a layer that sets each entry of o.
func Overrides(o Table) Layer {
	return func(t Table) Table {
		return t.Merge(o)
	}
}
