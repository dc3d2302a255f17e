package hyprland

import (
	"strings"

	"codeberg.org/miketth/hyprkeys/pkg/hyprkeys"
	"codeberg.org/miketth/hyprkeys/pkg/window"
)

type keyboard struct {
	Name         string `json:"name"`
	Layout       string `json:"layout"`
	Variant      string `json:"variant"`
	Options      string `json:"options"`
	ActiveKeymap string `json:"active_keymap"`
	Main         bool   `json:"main"`
}

type devices struct {
	Keyboards []keyboard `json:"keyboards"`
}

func (k keyboard) ToKeyboard() hyprkeys.Keyboard {
	return hyprkeys.Keyboard{
		Name:         k.Name,
		Layouts:      strings.Split(k.Layout, ","),
		Variants:     strings.Split(k.Variant, ","),
		ActiveKeymap: k.ActiveKeymap,
		Main:         k.Main,
	}
}

type client struct {
	Address        string `json:"address"`
	Mapped         bool   `json:"mapped"`
	Hidden         bool   `json:"hidden"`
	Class          string `json:"class"`
	Title          string `json:"title"`
	PID            int    `json:"pid"`
	FocusHistoryID int    `json:"focusHistoryID"`
}

func (c client) Handle() window.Handle {
	return window.Handle(c.Address)
}

func (c client) descriptor(process string) window.Descriptor {
	return window.Descriptor{
		Process: process,
		Class:   c.Class,
		Title:   c.Title,
	}
}
