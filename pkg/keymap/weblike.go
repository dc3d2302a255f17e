package keymap

// Weblike maps Emacs-style movement and editing chords onto the native
// shortcuts every browser-like text field understands. Movement uses the
// Dvorak home row: C-h/C-t/C-n/C-s are left/up/down/right.
func Weblike(t Table) Table {
	return t.
		Set("C-y", mustOutput("C-v")).
		Set("C-g", mustOutput("Esc")).
		Set("C-Slash", mustOutput("C-z")).
		Set("C-a", mustOutput("Home")).
		Set("C-o", mustOutput("C-t")).
		Set("A-o", mustOutput("C-S-t")).
		Set("C-e", mustOutput("End")).
		Set("C-u", mustMacro("Home", "S-End", "C-x")).
		Set("C-d", mustOutput("Delete")).
		Set("C-h", mustOutput("Left")).
		Set("A-h", mustOutput("C-Left")).
		Set("C-t", mustOutput("Up")).
		Set("C-n", mustOutput("Down")).
		Set("C-s", mustOutput("Right")).
		Set("A-s", mustOutput("C-Right")).
		Set("A-Minus", mustOutput("C-S-t")).
		Set("C-q", mustOutput("C-w")).
		Set("C-k", mustMacro("S-End", "C-x")).
		Set("C-x", NewMultiStroke("C-X", Table{}.
			Set("C-g", mustOutput("Esc")).
			Set("C-h", mustOutput("C-a")))).
		Set("C-b", mustOutput("Back")).
		Set("A-b", mustOutput("C-Back")).
		Set("C-m", mustOutput("Enter")).
		Set("C-w", mustOutput("C-x")).
		Set("A-w", mustOutput("C-c"))
}
