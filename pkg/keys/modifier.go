package keys

import "strings"

// Modifier is a set of held modifier keys.
type Modifier uint8

const (
	ModControl Modifier = 1 << iota
	ModAlt
	ModShift
	ModSuper

	ModNone Modifier = 0
)

// modifierOrder is the order tags are written in the chord grammar.
var modifierOrder = []struct {
	mod Modifier
	tag string
}{
	{ModControl, "C"},
	{ModAlt, "A"},
	{ModShift, "S"},
	{ModSuper, "W"},
}

var modifierNames = map[string]Modifier{
	"c":       ModControl,
	"ctrl":    ModControl,
	"control": ModControl,
	"a":       ModAlt,
	"alt":     ModAlt,
	"s":       ModShift,
	"shift":   ModShift,
	"w":       ModSuper,
	"win":     ModSuper,
	"super":   ModSuper,
}

func (m Modifier) Has(mod Modifier) bool {
	return m&mod == mod
}

func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Tags returns the grammar tags of m in canonical order, e.g. ["C", "S"].
func (m Modifier) Tags() []string {
	var tags []string
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			tags = append(tags, o.tag)
		}
	}
	return tags
}

// String returns the chord prefix of m, e.g. "C-S".
func (m Modifier) String() string {
	return strings.Join(m.Tags(), "-")
}

// ModifierFromName looks up a modifier tag or name, case-insensitively.
func ModifierFromName(name string) (Modifier, bool) {
	m, ok := modifierNames[strings.ToLower(name)]
	return m, ok
}
