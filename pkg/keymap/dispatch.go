package keymap

import "codeberg.org/miketth/hyprkeys/pkg/keys"

// State of a Dispatcher.
type State int

const (
	Idle State = iota
	AwaitingSecondChord
)

func (s State) String() string {
	if s == AwaitingSecondChord {
		return "awaiting"
	}
	return "idle"
}

// Result describes what a chord press did.
type Result struct {
	// Output is what fired, or the multi-stroke table now pending.
	Output Output
	// Matched is false when the chord passes through untouched.
	Matched bool
	// Pending is set when a prefix chord was received.
	Pending bool
	// Cancelled is set when a pending prefix was followed by a chord its
	// table does not map.
	Cancelled bool
}

// Dispatcher resolves chord presses against a table, tracking multi-stroke
// prefixes. There is no timeout: the pending prefix is resolved by whatever
// chord arrives next.
type Dispatcher struct {
	root    Table
	pending *MultiStroke
}

func NewDispatcher(root Table) *Dispatcher {
	return &Dispatcher{root: root}
}

func (d *Dispatcher) State() State {
	if d.pending != nil {
		return AwaitingSecondChord
	}
	return Idle
}

func (d *Dispatcher) Press(c keys.Chord) Result {
	table := d.root
	if d.pending != nil {
		table = d.pending.Table
	}
	wasPending := d.pending != nil
	d.pending = nil

	out, ok := table.Lookup(c)
	if !ok {
		return Result{Cancelled: wasPending}
	}

	if ms, isPrefix := out.(*MultiStroke); isPrefix {
		d.pending = ms
		return Result{Output: ms, Matched: true, Pending: true}
	}
	return Result{Output: out, Matched: true}
}

// Reset drops any pending prefix.
func (d *Dispatcher) Reset() {
	d.pending = nil
}
