// Package detector selects the window-detection backend for the current
// platform. Selection happens once, at construction; it is not re-evaluated
// per poll.
package detector

import "os"

// DetectDisplayServer inspects session environment variables to decide
// which Linux display server is in use.
func DetectDisplayServer() string {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	x11Display := os.Getenv("DISPLAY")

	if sessionType == "wayland" || waylandDisplay != "" {
		return "wayland"
	}

	if sessionType == "x11" || x11Display != "" {
		return "x11"
	}

	return "unknown"
}
