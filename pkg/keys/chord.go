package keys

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrEmptyChord   = errors.New("empty chord")
	ErrInvalidChord = errors.New("invalid chord")
)

// Symbol is a base key: either a single printable literal ("a") or a named
// special key ("Enter", "OpenBracket").
type Symbol string

// IsLiteral reports whether s is a single printable character.
func (s Symbol) IsLiteral() bool {
	return utf8.RuneCountInString(string(s)) == 1
}

var specialSymbols = map[string]Symbol{}

func init() {
	named := []Symbol{
		"Enter", "Esc", "Tab", "Back", "Delete", "Insert",
		"Home", "End", "PageUp", "PageDown",
		"Left", "Right", "Up", "Down",
		"CapsLock", "PrintScreen", "Apps",
	}
	for i := 1; i <= 24; i++ {
		named = append(named, Symbol("F"+strconv.Itoa(i)))
	}
	for _, e := range literalSymbols {
		named = append(named, e.symbol)
	}
	for _, s := range named {
		specialSymbols[strings.ToLower(string(s))] = s
	}
}

// ParseSymbol canonicalizes a base key token. Named keys match
// case-insensitively, letters are lowercased and punctuation literals are
// replaced by their symbol name.
func ParseSymbol(token string) (Symbol, error) {
	if token == "" {
		return "", ErrEmptyChord
	}
	if utf8.RuneCountInString(token) == 1 {
		r, _ := utf8.DecodeRuneInString(token)
		if !unicode.IsPrint(r) {
			return "", fmt.Errorf("%w: unprintable key %q", ErrInvalidChord, token)
		}
		if s, ok := ToSymbol(token); ok {
			return s, nil
		}
		return Symbol(string(unicode.ToLower(r))), nil
	}
	if s, ok := specialSymbols[strings.ToLower(token)]; ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: unknown key %q", ErrInvalidChord, token)
}

// Chord is one key event: a base key plus the modifiers held with it.
type Chord struct {
	Mods Modifier
	Key  Symbol
}

// ParseChord parses the host grammar, e.g. "C-S-t", "A-F4", "W-Semicolon".
func ParseChord(s string) (Chord, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Chord{}, ErrEmptyChord
	}

	parts := strings.Split(s, "-")
	keyPart := parts[len(parts)-1]
	if keyPart == "" {
		return Chord{}, fmt.Errorf("%w: %q has no base key", ErrInvalidChord, s)
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod, ok := ModifierFromName(p)
		if !ok {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidChord, p, s)
		}
		mods = mods.With(mod)
	}

	key, err := ParseSymbol(keyPart)
	if err != nil {
		return Chord{}, fmt.Errorf("parse %q: %w", s, err)
	}

	return Chord{Mods: mods, Key: key}, nil
}

// MustParseChord is ParseChord for static tables. It panics on error.
func MustParseChord(s string) Chord {
	c, err := ParseChord(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Chord) String() string {
	if c.Mods == ModNone {
		return string(c.Key)
	}
	return c.Mods.String() + "-" + string(c.Key)
}

// WithKey returns c with its base key replaced.
func (c Chord) WithKey(key Symbol) Chord {
	c.Key = key
	return c
}

// RawCode is a numeric virtual-key code for keys without a symbolic name,
// such as input-method toggles.
type RawCode int

func (r RawCode) String() string {
	return strconv.Itoa(int(r))
}

// ParseRawCode parses an all-digit token.
func ParseRawCode(s string) (RawCode, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return RawCode(n), true
}
