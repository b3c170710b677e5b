//go:build darwin

package detector

import (
	"github.com/pkg/errors"

	"focustrack/pkg/integrations/darwin"
	"focustrack/pkg/window"
)

// New returns the macOS scripting detector.
func New() (window.Detector, error) {
	d := darwin.NewDetector()
	if !d.IsAvailable() {
		return nil, errors.New("osascript not available")
	}
	return d, nil
}
