package window

import "testing"

func TestEmacs(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		want bool
	}{
		{"native class", Descriptor{Process: "emacs", Class: "Emacs", Title: "scratch"}, true},
		{"pgtk class", Descriptor{Process: "emacs", Class: "emacs"}, true},
		{"class wins over anything", Descriptor{Process: "firefox", Class: "Emacs", Title: "Mozilla"}, true},
		{"wslg title", Descriptor{Process: "msrdc.exe", Class: "RAIL_WINDOW", Title: "Emacs - init.el"}, true},
		{"host name is case sensitive", Descriptor{Process: "MSRDC.EXE", Title: "Emacs main.go"}, false},
		{"exact title", Descriptor{Process: "vcxsrv.exe", Title: "Emacs"}, true},
		{"host without title", Descriptor{Process: "msrdc.exe", Class: "RAIL_WINDOW", Title: "xterm"}, false},
		{"unlisted process with title", Descriptor{Process: "firefox", Class: "firefox", Title: "Emacs - Mozilla Firefox"}, false},
		{"title prefix needs space", Descriptor{Process: "xpra", Title: "Emacsen"}, false},
	}

	for _, tt := range tests {
		if got := Emacs.Match(tt.d); got != tt.want {
			t.Errorf("%s: Emacs.Match(%+v) = %v, want %v", tt.name, tt.d, got, tt.want)
		}
	}
}

func TestCriteria(t *testing.T) {
	d := Descriptor{Process: "firefox", Class: "firefox", Title: "Inbox - Mozilla Firefox"}

	tests := []struct {
		c    Criteria
		want bool
	}{
		{Criteria{Process: "firefox"}, true},
		{Criteria{Process: "Firefox"}, false},
		{Criteria{Process: "firefox", Class: "firefox"}, true},
		{Criteria{Process: "firefox", Class: "thunderbird"}, false},
		{Criteria{TitlePrefix: "Inbox"}, true},
		{Criteria{TitlePrefix: "Outbox"}, false},
		{Criteria{}, false},
	}

	for _, tt := range tests {
		if got := tt.c.Predicate()(d); got != tt.want {
			t.Errorf("%+v.Predicate() = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestCombinators(t *testing.T) {
	d := Descriptor{Process: "slack", Class: "Slack"}
	if !Any(Never, ClassIs("Slack"))(d) {
		t.Error("Any should match when one predicate matches")
	}
	if All(Always, ClassIs("slack"))(d) {
		t.Error("All should fail when one predicate fails")
	}
	if Any()(d) {
		t.Error("empty Any should not match")
	}
	if !All()(d) {
		t.Error("empty All should match")
	}
}

func TestNamed(t *testing.T) {
	p, ok := Named("Emacs")
	if !ok || !p(Descriptor{Class: "Emacs"}) {
		t.Error("Named(Emacs) should return the Emacs matcher")
	}
	if _, ok := Named("vim"); ok {
		t.Error("Named(vim) should not exist")
	}
}

func TestCompatHosted(t *testing.T) {
	tests := []struct {
		d    Descriptor
		want bool
	}{
		{Descriptor{Process: "xpra", Class: "xpra", Title: "Emacs - init.el"}, true},
		{Descriptor{Process: "msrdc.exe", Class: "RAIL_WINDOW"}, true},
		{Descriptor{Process: "firefox", Class: "firefox"}, false},
		{Descriptor{Process: "XPRA"}, false},
		{Descriptor{}, false},
	}
	for _, tt := range tests {
		if got := CompatHosted(tt.d); got != tt.want {
			t.Errorf("CompatHosted(%+v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}
