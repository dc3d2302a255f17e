// Package window classifies focused windows into logical applications.
package window

import "strings"

// Descriptor is the host's snapshot of a window at classification time.
type Descriptor struct {
	Process string
	Class   string
	Title   string
}

// Handle identifies a host window. The zero Handle means no window.
type Handle string

func (h Handle) IsZero() bool {
	return h == ""
}

// Predicate decides whether a window belongs to some application.
type Predicate func(Descriptor) bool

func ClassIs(class string) Predicate {
	return func(d Descriptor) bool {
		return d.Class == class
	}
}

// ProcessIn matches process names exactly.
func ProcessIn(names ...string) Predicate {
	return func(d Descriptor) bool {
		for _, n := range names {
			if d.Process == n {
				return true
			}
		}
		return false
	}
}

func TitleHasPrefix(prefix string) Predicate {
	return func(d Descriptor) bool {
		return strings.HasPrefix(d.Title, prefix)
	}
}

func Any(preds ...Predicate) Predicate {
	return func(d Descriptor) bool {
		for _, p := range preds {
			if p(d) {
				return true
			}
		}
		return false
	}
}

func All(preds ...Predicate) Predicate {
	return func(d Descriptor) bool {
		for _, p := range preds {
			if !p(d) {
				return false
			}
		}
		return true
	}
}

func Always(Descriptor) bool { return true }

func Never(Descriptor) bool { return false }

// Criteria matches on whichever fields are set. Empty criteria match nothing.
type Criteria struct {
	Process     string
	Class       string
	TitlePrefix string
}

func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

func (c Criteria) Predicate() Predicate {
	if c.IsZero() {
		return Never
	}
	var preds []Predicate
	if c.Process != "" {
		preds = append(preds, ProcessIn(c.Process))
	}
	if c.Class != "" {
		preds = append(preds, ClassIs(c.Class))
	}
	if c.TitlePrefix != "" {
		preds = append(preds, TitleHasPrefix(c.TitlePrefix))
	}
	return All(preds...)
}
