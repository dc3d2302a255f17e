package memory

import (
	"testing"

	"codeberg.org/miketth/hyprkeys/pkg/hyprkeys"
	"codeberg.org/miketth/hyprkeys/pkg/keymap"
)

func TestStateStore(t *testing.T) {
	s := NewStateStore()

	if _, ok, err := s.GetAppState("slack"); ok || err != nil {
		t.Fatalf("GetAppState on empty store = %v, %v", ok, err)
	}

	want := hyprkeys.AppState{Layout: "us", Variant: "dvorak", Mode: keymap.Native}
	if err := s.SetAppState("slack", want); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.GetAppState("slack")
	if err != nil || !ok || got != want {
		t.Errorf("GetAppState = %+v, %v, %v; want %+v", got, ok, err, want)
	}
}
