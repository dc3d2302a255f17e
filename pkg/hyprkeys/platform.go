package hyprkeys

import (
	"errors"
	"fmt"
)

var ErrUnsupportedPlatform = errors.New("unsupported host platform")

type Platform string

const PlatformHyprland Platform = "hyprland"

// DetectPlatform reports the compositor hyprkeys is running under.
func DetectPlatform(getenv func(string) string) (Platform, error) {
	if getenv("HYPRLAND_INSTANCE_SIGNATURE") != "" {
		return PlatformHyprland, nil
	}

	desktop := getenv("XDG_CURRENT_DESKTOP")
	if desktop == "" {
		desktop = "unknown"
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, desktop)
}
