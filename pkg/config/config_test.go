package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"

	"codeberg.org/miketth/hyprkeys/pkg/keymap"
	"codeberg.org/miketth/hyprkeys/pkg/keys"
	"codeberg.org/miketth/hyprkeys/pkg/layout"
	"codeberg.org/miketth/hyprkeys/pkg/window"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func load(t *testing.T, content string) Config {
	t.Helper()
	fc, err := LoadConfig(writeConfig(t, content))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg, err := fc.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return cfg
}

func TestLoadConfigMissingFile(t *testing.T) {
	fc, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg, err := fc.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if cfg.Pair.String() != layout.DvorakToQwerty.String() {
		t.Errorf("pair = %v, want default", cfg.Pair)
	}
	if cfg.ForcedMode != nil {
		t.Errorf("forced mode = %v, want auto", *cfg.ForcedMode)
	}
	if cfg.StateBackend != BackendSQLite {
		t.Errorf("backend = %q", cfg.StateBackend)
	}
	if len(cfg.Launchers) != len(DefaultLaunchers()) {
		t.Errorf("launchers = %d, want %d", len(cfg.Launchers), len(DefaultLaunchers()))
	}
	out, ok := cfg.LauncherKeys.Lookup(keys.MustParseChord("W-h"))
	if !ok || out.String() != "activate(browser)" {
		t.Errorf("W-h = %v, %v", out, ok)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Error("empty path: want error")
	}
	if _, err := LoadConfig(writeConfig(t, "[layout\n")); err == nil {
		t.Error("broken toml: want error")
	}
	if _, err := LoadConfig(writeConfig(t, "[layout]\nfrobnicate = 1\n")); err == nil {
		t.Error("unknown key: want error")
	}
}

func TestCompileLayout(t *testing.T) {
	cfg := load(t, `
[layout]
mode = "transliterate"
from = "dvorak-ansi"
to = "qwerty-ansi"
`)
	if cfg.ForcedMode == nil || *cfg.ForcedMode != keymap.Transliterated {
		t.Errorf("forced mode = %v", cfg.ForcedMode)
	}
	if cfg.Pair.From.Name != "dvorak-ansi" || cfg.Pair.To.Name != "qwerty-ansi" {
		t.Errorf("pair = %v", cfg.Pair)
	}

	cfg = load(t, "[layout]\nmode = \"auto\"\n")
	if cfg.ForcedMode != nil {
		t.Errorf("auto: forced mode = %v", *cfg.ForcedMode)
	}
}

func TestCompileApps(t *testing.T) {
	cfg := load(t, `
[global.keys]
"W-e" = "W-Up"

[[app]]
name = "slack"
[app.keys]
"C-j" = "C-k"

[[app]]
name = "chromium"
class = "Chromium"
mode = "native"
[app.keys]
"C-t" = ["C-l", "C-c"]
"C-Comma" = 29

[[app]]
name = "xterm"
process = "xterm"
weblike = false
`)
	b := cfg.Builder()

	global, err := b.Build(keymap.GlobalApp, keymap.Native)
	if err != nil {
		t.Fatal(err)
	}
	if out, ok := global.Lookup(keys.MustParseChord("W-e")); !ok || out.String() != "W-Up" {
		t.Errorf("global W-e = %v, %v", out, ok)
	}
	if _, ok := global.Lookup(keys.MustParseChord("W-q")); !ok {
		t.Error("global lost its built-in W-q")
	}

	slack, err := b.Build("slack", keymap.Native)
	if err != nil {
		t.Fatal(err)
	}
	if out, _ := slack.Lookup(keys.MustParseChord("C-j")); out == nil || out.String() != "C-k" {
		t.Errorf("slack C-j = %v", out)
	}
	if out, _ := slack.Lookup(keys.MustParseChord("A-j")); out == nil || out.String() != "A-S-Down" {
		t.Errorf("slack A-j = %v", out)
	}

	chromium, err := b.Build("chromium", keymap.Native)
	if err != nil {
		t.Fatal(err)
	}
	if out, _ := chromium.Lookup(keys.MustParseChord("C-t")); out == nil || out.String() != "[C-l C-c]" {
		t.Errorf("chromium C-t = %v", out)
	}
	if out, _ := chromium.Lookup(keys.MustParseChord("C-Comma")); out != keys.RawCode(29) {
		t.Errorf("chromium C-Comma = %v", out)
	}
	if _, ok := chromium.Lookup(keys.MustParseChord("C-n")); !ok {
		t.Error("chromium should start from the weblike layer")
	}
	if cfg.Modes["chromium"] != keymap.Native {
		t.Errorf("chromium mode = %v", cfg.Modes["chromium"])
	}

	p, ok := b.Profile("chromium")
	if !ok || !p.Match(window.Descriptor{Class: "Chromium"}) {
		t.Error("chromium profile does not match its class")
	}

	xterm, err := b.Build("xterm", keymap.Native)
	if err != nil {
		t.Fatal(err)
	}
	if xterm.Len() != 0 {
		t.Errorf("xterm without weblike has %d entries", xterm.Len())
	}
}

func TestCompileLaunchers(t *testing.T) {
	cfg := load(t, `
[[launcher]]
name = "browser"
chord = "W-h"
class = "chromium"
command = "chromium"

[[launcher]]
name = "files"
chord = "W-f"
process = "/usr/bin/nautilus"
`)
	d, ok := cfg.Launcher("browser")
	if !ok || d.Command != "chromium" || d.Criteria.Class != "chromium" {
		t.Errorf("browser = %+v, %v", d, ok)
	}

	d, ok = cfg.Launcher("files")
	if !ok || !d.Match(window.Descriptor{Process: "/usr/bin/nautilus"}) {
		t.Errorf("files = %+v, %v", d, ok)
	}
	if out, ok := cfg.LauncherKeys.Lookup(keys.MustParseChord("W-f")); !ok || out.String() != "activate(files)" {
		t.Errorf("W-f = %v, %v", out, ok)
	}
	if len(cfg.Launchers) != len(DefaultLaunchers())+1 {
		t.Errorf("launchers = %d", len(cfg.Launchers))
	}
}

func TestCompileCollectsAllErrors(t *testing.T) {
	fc, err := LoadConfig(writeConfig(t, `
[layout]
mode = "sideways"
from = "klingon"

[state]
backend = "postgres"

[global.keys]
"C-" = "a"
"C-a" = true

[[app]]
name = "nomatch"

[[app]]
name = "badmatch"
match = "nonsense"

[[launcher]]
name = "nocommand"
title = "x"

[[launcher]]
name = "dup"
chord = "W-h"
class = "dup"
`))
	if err != nil {
		t.Fatal(err)
	}

	_, err = fc.Compile()
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("err = %v, want multierror", err)
	}

	wants := []string{
		"layout.mode",
		"layout: from",
		"state.backend",
		"global.keys",
		`app[0] "nomatch"`,
		`app[1] "badmatch"`,
		`launcher "nocommand"`,
		`launcher "dup": chord W-h already bound to "browser"`,
	}
	if len(merr.Errors) != len(wants) {
		t.Errorf("got %d errors, want %d: %v", len(merr.Errors), len(wants), err)
	}
	for _, want := range wants {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error lacks %q:\n%v", want, err)
		}
	}
}

func TestCompileRejectsGlobalCollisions(t *testing.T) {
	tests := []struct {
		name   string
		config string
		want   string
	}{
		{
			name:   "built-in global chord",
			config: "[[app]]\nname = \"foot\"\nclass = \"foot\"\n[app.keys]\n\"W-q\" = \"C-w\"\n",
			want:   `app "foot": chord W-q is already bound globally to A-F4`,
		},
		{
			name:   "launcher chord",
			config: "[[app]]\nname = \"slack\"\n[app.keys]\n\"W-h\" = \"C-k\"\n",
			want:   `app "slack": chord W-h is already bound globally to activate(browser)`,
		},
		{
			name:   "configured global chord",
			config: "[global.keys]\n\"C-y\" = \"C-v\"\n",
			want:   `app "firefox": chord C-y is already bound globally to C-v`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, err := LoadConfig(writeConfig(t, tt.config))
			if err != nil {
				t.Fatal(err)
			}
			_, err = fc.Compile()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestParseOutputValue(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    string
		wantErr bool
	}{
		{name: "chord", in: "C-S-Tab", want: "C-S-Tab"},
		{name: "raw code string", in: "28", want: "28"},
		{name: "raw code int", in: int64(29), want: "29"},
		{name: "macro", in: []any{"C-a", "C-k"}, want: "[C-a C-k]"},
		{name: "code out of range", in: int64(300), wantErr: true},
		{name: "empty macro", in: []any{}, wantErr: true},
		{name: "macro with number", in: []any{"C-a", int64(1)}, wantErr: true},
		{name: "bool", in: true, wantErr: true},
		{name: "bad chord", in: "C-", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := parseOutputValue(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("got %v, want error", out)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if out.String() != tt.want {
				t.Errorf("got %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	if got := DefaultConfigPath(); !strings.HasSuffix(got, filepath.Join("hyprkeys", "config.toml")) {
		t.Errorf("DefaultConfigPath = %q", got)
	}
}
