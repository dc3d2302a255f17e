package keys

// literalSymbols pairs punctuation literals with the symbolic names the chord
// grammar uses for them. A literal can't appear bare in a chord because "-"
// separates modifiers, so the grammar always spells these keys out.
var literalSymbols = []struct {
	literal string
	symbol  Symbol
}{
	{",", "Comma"},
	{".", "Period"},
	{"/", "Slash"},
	{"-", "Minus"},
	{";", "Semicolon"},
	{"'", "Quote"},
	{"[", "OpenBracket"},
	{"]", "CloseBracket"},
	{`\`, "BackSlash"},
	{"`", "BackQuote"},
	{"=", "Plus"},
	{" ", "Space"},
}

// ToSymbol returns the named symbol for a punctuation literal.
func ToSymbol(literal string) (Symbol, bool) {
	for _, e := range literalSymbols {
		if e.literal == literal {
			return e.symbol, true
		}
	}
	return "", false
}

// ToLiteral returns the literal a named symbol stands for.
func ToLiteral(symbol Symbol) (string, bool) {
	for _, e := range literalSymbols {
		if e.symbol == symbol {
			return e.literal, true
		}
	}
	return "", false
}

// Encode is ToSymbol falling back to the literal itself, so letters and
// digits pass through untouched.
func Encode(literal string) Symbol {
	if s, ok := ToSymbol(literal); ok {
		return s
	}
	return Symbol(literal)
}

// Decode is ToLiteral falling back to the symbol itself.
func Decode(symbol Symbol) string {
	if l, ok := ToLiteral(symbol); ok {
		return l
	}
	return string(symbol)
}
