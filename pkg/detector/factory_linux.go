//go:build linux

package detector

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"focustrack/pkg/integrations/gnome"
	"focustrack/pkg/integrations/hybrid"
	"focustrack/pkg/integrations/x11"
	"focustrack/pkg/window"
)

// New picks the detection backend for this session. Wayland sessions go
// through GNOME Shell scripting, with the X server as a runtime fallback
// when XWayland is present. Plain X11 sessions use the X server directly.
func New() (window.Detector, error) {
	if DetectDisplayServer() == "wayland" {
		if d := gnome.NewDetector(); d.IsAvailable() {
			if os.Getenv("DISPLAY") != "" {
				if x := x11.NewDetector(); x.IsAvailable() {
					log.Debug().Msg("window detector selected: gnome-shell with x11 fallback")
					return hybrid.New(d, x), nil
				}
			}
			log.Debug().Str("backend", d.Backend()).Msg("window detector selected")
			return d, nil
		}
	}

	d := x11.NewDetector()
	if d.IsAvailable() {
		log.Debug().Str("backend", d.Backend()).Msg("window detector selected")
		return d, nil
	}
	d.Close()

	return nil, errors.New("no window detection backend available (no GNOME Shell or X server)")
}
