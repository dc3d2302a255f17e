package keymap

import "codeberg.org/miketth/hyprkeys/pkg/window"

func global(t Table) Table {
	return t.
		Set("W-Semicolon", mustOutput("W-Up")).
		Set("W-q", mustOutput("A-F4"))
}

func emacs(t Table) Table {
	return t.Set("C-m", mustOutput("Enter"))
}

func slack(t Table) Table {
	return t.
		Set("A-j", mustOutput("A-S-Down")).
		Set("A-k", mustOutput("A-S-Up")).
		Set("A-t", mustOutput("A-Up")).
		Set("A-n", mustOutput("A-Down")).
		Set("Enter", mustOutput("C-Enter")).
		Set("C-Comma", mustOutput("29")). // muhenkan
		Set("C-Period", mustOutput("28")) // henkan
}

// DefaultProfiles are the built-in applications, global first.
func DefaultProfiles() []Profile {
	return []Profile{
		{ID: GlobalApp, Match: window.Always, Layers: []Layer{global}},
		{
			ID:     "firefox",
			Match:  window.Any(window.ClassIs("firefox"), window.ProcessIn("firefox", "firefox.exe")),
			Layers: []Layer{Weblike},
		},
		{
			ID:     "thunderbird",
			Match:  window.Any(window.ClassIs("thunderbird"), window.ProcessIn("thunderbird", "thunderbird.exe")),
			Layers: []Layer{Weblike},
		},
		{ID: "emacs", Match: window.Emacs.Match, Layers: []Layer{emacs}},
		{
			ID:     "slack",
			Match:  window.Any(window.ClassIs("Slack"), window.ProcessIn("slack", "slack.exe")),
			Layers: []Layer{Weblike, slack},
		},
	}
}
