package keys

import "testing"

func TestCodecInverse(t *testing.T) {
	for _, e := range literalSymbols {
		if got, ok := ToSymbol(e.literal); !ok || got != e.symbol {
			t.Errorf("ToSymbol(%q) = %q, %v; want %q", e.literal, got, ok, e.symbol)
		}
		if got, ok := ToLiteral(e.symbol); !ok || got != e.literal {
			t.Errorf("ToLiteral(%q) = %q, %v; want %q", e.symbol, got, ok, e.literal)
		}
	}
}

func TestCodecPassThrough(t *testing.T) {
	for _, lit := range []string{"a", "Z", "7"} {
		if _, ok := ToSymbol(lit); ok {
			t.Errorf("ToSymbol(%q) should not find a symbol", lit)
		}
		if got := Encode(lit); got != Symbol(lit) {
			t.Errorf("Encode(%q) = %q", lit, got)
		}
	}
	for _, sym := range []Symbol{"Enter", "F4", "a"} {
		if _, ok := ToLiteral(sym); ok {
			t.Errorf("ToLiteral(%q) should not find a literal", sym)
		}
		if got := Decode(sym); got != string(sym) {
			t.Errorf("Decode(%q) = %q", sym, got)
		}
	}
}

func TestCodecEntriesParse(t *testing.T) {
	for _, e := range literalSymbols {
		got, err := ParseSymbol(string(e.symbol))
		if err != nil || got != e.symbol {
			t.Errorf("ParseSymbol(%q) = %q, %v", e.symbol, got, err)
		}
	}
}
