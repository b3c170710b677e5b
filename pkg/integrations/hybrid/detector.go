package hybrid

import (
	"github.com/rs/zerolog/log"

	"focustrack/pkg/window"
)

// Detector chains a primary backend with a fallback. The fallback is
// consulted only when the primary returns no window, which covers Wayland
// sessions where the shell refuses Eval but XWayland still answers.
type Detector struct {
	primary  window.Detector
	fallback window.Detector

	lastBackend string
}

func New(primary, fallback window.Detector) *Detector {
	return &Detector{
		primary:     primary,
		fallback:    fallback,
		lastBackend: primary.Backend(),
	}
}

func (d *Detector) GetActiveWindow() *window.Info {
	if info := d.primary.GetActiveWindow(); info != nil {
		d.lastBackend = d.primary.Backend()
		return info
	}

	if d.fallback != nil {
		if info := d.fallback.GetActiveWindow(); info != nil {
			if d.lastBackend != d.fallback.Backend() {
				log.Debug().
					Str("from", d.primary.Backend()).
					Str("to", d.fallback.Backend()).
					Msg("hybrid detector fell back")
			}
			d.lastBackend = d.fallback.Backend()
			return info
		}
	}

	return nil
}

func (d *Detector) GetAllWindows() []window.Info {
	if windows := d.primary.GetAllWindows(); len(windows) > 0 {
		return windows
	}
	if d.fallback != nil {
		return d.fallback.GetAllWindows()
	}
	return nil
}

func (d *Detector) IsAvailable() bool {
	if d.primary.IsAvailable() {
		return true
	}
	return d.fallback != nil && d.fallback.IsAvailable()
}

// Backend reports the backend that answered most recently.
func (d *Detector) Backend() string {
	return "hybrid:" + d.lastBackend
}

func (d *Detector) Close() error {
	err := d.primary.Close()
	if d.fallback != nil {
		if ferr := d.fallback.Close(); err == nil {
			err = ferr
		}
	}
	return err
}
