//go:build !linux && !darwin && !windows

package detector

import (
	"github.com/pkg/errors"

	"focustrack/pkg/window"
)

func New() (window.Detector, error) {
	return nil, errors.New("window detection is not supported on this platform")
}
