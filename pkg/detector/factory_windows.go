//go:build windows

package detector

import (
	"github.com/pkg/errors"

	winbackend "focustrack/pkg/integrations/windows"
	"focustrack/pkg/window"
)

// New returns the Windows foreground-window detector.
func New() (window.Detector, error) {
	d := winbackend.NewDetector()
	if !d.IsAvailable() {
		return nil, errors.New("user32 foreground-window APIs not available")
	}
	return d, nil
}
