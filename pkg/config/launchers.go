package config

// DefaultLaunchers are the run-or-raise bindings available without a config
// file. A [[launcher]] entry with the same name replaces one of these.
func DefaultLaunchers() []LauncherConfig {
	return []LauncherConfig{
		{Name: "browser", Chord: "W-h", Class: "firefox", Command: "firefox"},
		{Name: "terminal", Chord: "W-t", Class: "kitty", Command: "kitty"},
		{Name: "emacs", Chord: "W-n", Match: "emacs", Command: "emacs"},
		{Name: "slack", Chord: "W-Minus", Class: "Slack", Command: "slack"},
		{Name: "keepassxc", Chord: "W-b", Class: "org.keepassxc.KeePassXC", Command: "keepassxc"},
		{Name: "mail", Chord: "W-m", Class: "thunderbird", Command: "thunderbird"},
	}
}

func mergeLaunchers(defaults, configured []LauncherConfig) []LauncherConfig {
	out := make([]LauncherConfig, 0, len(defaults)+len(configured))
	out = append(out, defaults...)
	for _, l := range configured {
		replaced := false
		for i := range out {
			if out[i].Name == l.Name {
				out[i] = l
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, l)
		}
	}
	return out
}
