package hyprland

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/miketth/hyprkeys/pkg/hyprkeys"
	"codeberg.org/miketth/hyprkeys/pkg/window"
)

func TestPickWindow(t *testing.T) {
	clients := []client{
		{Address: "0x1", Mapped: true, Class: "firefox", PID: 1, FocusHistoryID: 3},
		{Address: "0x2", Mapped: true, Class: "foot", PID: 2, FocusHistoryID: 0},
		{Address: "0x3", Mapped: true, Class: "firefox", PID: 3, FocusHistoryID: 1},
		{Address: "0x4", Mapped: false, Class: "firefox", PID: 4},
		{Address: "0x5", Mapped: true, Hidden: true, Class: "firefox", PID: 5},
	}
	procs := func(pid int) string {
		if pid == 2 {
			return "foot"
		}
		return "firefox"
	}

	got, ok := pickWindow(clients, window.ClassIs("firefox"), procs)
	if !ok || got.Address != "0x3" {
		t.Errorf("pickWindow = %+v, %v; want 0x3", got, ok)
	}

	got, ok = pickWindow(clients, window.ProcessIn("foot"), procs)
	if !ok || got.Address != "0x2" {
		t.Errorf("pickWindow by process = %+v, %v; want 0x2", got, ok)
	}

	if _, ok := pickWindow(clients, window.ClassIs("Slack"), procs); ok {
		t.Error("pickWindow should find no Slack window")
	}
}

func TestExecLine(t *testing.T) {
	tests := []struct {
		command, args string
		opts          hyprkeys.ExecOptions
		want          string
	}{
		{"firefox", "", hyprkeys.ExecOptions{}, "firefox"},
		{"emacs", "-nw", hyprkeys.ExecOptions{}, "emacs -nw"},
		{"slack", "", hyprkeys.ExecOptions{Maximized: true}, "[maximize] slack"},
	}
	for _, tt := range tests {
		if got := execLine(tt.command, tt.args, tt.opts); got != tt.want {
			t.Errorf("execLine(%q, %q) = %q, want %q", tt.command, tt.args, got, tt.want)
		}
	}
}

func TestCheckResponse(t *testing.T) {
	tests := []struct {
		resp string
		want error
	}{
		{"ok", nil},
		{"ok\n\nok\n\nok", nil},
		{"okokok", nil},
		{"", nil},
		{"device not found", ErrDeviceNotFound},
		{"ok\n\nlayout idx out of range", ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		if err := checkResponse([]byte(tt.resp)); !errors.Is(err, tt.want) {
			t.Errorf("checkResponse(%q) = %v, want %v", tt.resp, err, tt.want)
		}
	}

	if err := checkResponse([]byte("Invalid dispatcher")); err == nil {
		t.Error("unknown reply should be an error")
	}
}

func TestProcessName(t *testing.T) {
	dir := t.TempDir()
	old := procRoot
	procRoot = dir
	defer func() { procRoot = old }()

	if err := os.MkdirAll(filepath.Join(dir, "42"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "42", "comm"), []byte("firefox\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := processName(42); got != "firefox" {
		t.Errorf("processName(42) = %q", got)
	}
	if got := processName(43); got != "" {
		t.Errorf("processName(43) = %q, want empty", got)
	}
	if got := processName(0); got != "" {
		t.Errorf("processName(0) = %q, want empty", got)
	}
}

func TestGetSocketPath(t *testing.T) {
	dir := t.TempDir()
	old := runtimeDirs
	runtimeDirs = func() []string { return []string{filepath.Join(dir, "run"), filepath.Join(dir, "tmp")} }
	defer func() { runtimeDirs = old }()

	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")
	if _, err := getSocketPath(Socket2); !errors.Is(err, ErrNotRunning) {
		t.Errorf("error = %v, want ErrNotRunning", err)
	}

	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "sig")
	got, err := getSocketPath(Socket1)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "run", "sig", ".socket.sock"); got != want {
		t.Errorf("default path = %q, want %q", got, want)
	}

	legacy := filepath.Join(dir, "tmp", "sig")
	if err := os.MkdirAll(legacy, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(legacy, ".socket2.sock"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = getSocketPath(Socket2)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(legacy, ".socket2.sock"); got != want {
		t.Errorf("legacy path = %q, want %q", got, want)
	}
}

func TestToKeyboard(t *testing.T) {
	k := keyboard{Name: "at-kbd", Layout: "us,de", Variant: "dvorak,", ActiveKeymap: "English (Dvorak)", Main: true}
	got := k.ToKeyboard()
	if got.Name != "at-kbd" || len(got.Layouts) != 2 || got.Variants[0] != "dvorak" || !got.Main {
		t.Errorf("ToKeyboard = %+v", got)
	}
}
