package window

import "strings"

// CompatHosts are processes that display windows of another environment
// (a compatibility layer, X server or remote display). Every window they own
// reports the same process and class, so only the title tells them apart.
var CompatHosts = []string{
	"mstsc.exe",              // WSLg
	"msrdc.exe",              // WSLg
	"XWin.exe",               // Cygwin/X
	"XWin_MobaX.exe",         // MobaXterm/X
	"XWin_MobaX_1.16.3.exe",  // MobaXterm/X
	"XWin_Cygwin_1.14.5.exe", // MobaXterm/X
	"XWin_Cygwin_1.16.3.exe", // MobaXterm/X
	"Xming.exe",
	"vcxsrv.exe",
	"GWSL_vcxsrv.exe",
	"GWSL_vcxsrv_lowdpi.exe",
	"X410.exe",
	"Xpra-Launcher.exe",
	"xpra",
	"Xephyr",
	"xfreerdp",
	"wlfreerdp",
	"sdl-freerdp",
	"remmina",
	"waypipe",
}

// CompatHosted reports whether d is shown through one of CompatHosts.
func CompatHosted(d Descriptor) bool {
	return ProcessIn(CompatHosts...)(d)
}

// App is the matching rule for one logical application. A window belongs to
// it if its class is one of Classes, or if it is owned by one of Hosts and its
// title starts with (or equals) TitlePrefix.
type App struct {
	Classes     []string
	Hosts       []string
	TitlePrefix string
}

func (a App) Match(d Descriptor) bool {
	for _, c := range a.Classes {
		if d.Class == c {
			return true
		}
	}

	if a.TitlePrefix == "" || !ProcessIn(a.Hosts...)(d) {
		return false
	}
	return strings.HasPrefix(d.Title, a.TitlePrefix) ||
		d.Title == strings.TrimSpace(a.TitlePrefix)
}

// Emacs matches native Emacs frames and frames shown through a compatibility
// host. The latter needs frame-title-format to start with "Emacs ".
var Emacs = App{
	Classes:     []string{"Emacs", "emacs"},
	Hosts:       CompatHosts,
	TitlePrefix: "Emacs ",
}

var named = map[string]Predicate{
	"emacs":  Emacs.Match,
	"always": Always,
}

// Named returns a built-in predicate by name.
func Named(name string) (Predicate, bool) {
	p, ok := named[strings.ToLower(name)]
	return p, ok
}
