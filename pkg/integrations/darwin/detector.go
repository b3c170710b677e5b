package darwin

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"focustrack/pkg/window"
)

// DefaultScriptTimeout bounds one osascript invocation.
const DefaultScriptTimeout = 3 * time.Second

const (
	frontmostProcessScript = `tell application "System Events" to get name of first application process whose frontmost is true`
	frontmostTitleScript   = `tell application "System Events" to get name of front window of first application process whose frontmost is true`

	// Lines of "name<TAB>title" for every process that owns a window.
	allWindowsScript = `
		set out to ""
		tell application "System Events"
			repeat with p in (application processes whose visible is true)
				repeat with w in windows of p
					set out to out & (name of p) & tab & (name of w) & linefeed
				end repeat
			end repeat
		end tell
		return out
	`
)

// Detector implements window.Detector for macOS via System Events
// scripting. The frontmost process name serves as the window class.
type Detector struct {
	hasOsascript bool
	timeout      time.Duration
}

// NewDetector creates a new macOS detector.
func NewDetector() *Detector {
	_, err := exec.LookPath("osascript")
	return &Detector{
		hasOsascript: err == nil,
		timeout:      DefaultScriptTimeout,
	}
}

// SetScriptTimeout overrides the per-call osascript timeout.
func (d *Detector) SetScriptTimeout(timeout time.Duration) {
	if timeout > 0 {
		d.timeout = timeout
	}
}

// IsAvailable checks if macOS detection can work on this system.
func (d *Detector) IsAvailable() bool {
	return runtime.GOOS == "darwin" && d.hasOsascript
}

// Backend returns "darwin".
func (d *Detector) Backend() string {
	return "darwin"
}

// GetActiveWindow returns the frontmost process and its front window
// title, or nil when scripting fails or reports nothing.
func (d *Detector) GetActiveWindow() *window.Info {
	name, err := d.osascript(frontmostProcessScript)
	if err != nil {
		log.Debug().Err(err).Msg("darwin: frontmost process query failed")
		return nil
	}
	if name == "" {
		return nil
	}

	// The frontmost process may own no window at all; an empty title is
	// fine, the process name still identifies the app.
	title, err := d.osascript(frontmostTitleScript)
	if err != nil {
		title = ""
	}

	return &window.Info{
		Class:     name,
		Title:     title,
		Workspace: -1,
		Backend:   "darwin",
	}
}

// GetAllWindows lists every visible process window. Best effort.
func (d *Detector) GetAllWindows() []window.Info {
	out, err := d.osascript(allWindowsScript)
	if err != nil {
		log.Debug().Err(err).Msg("darwin: window enumeration failed")
		return nil
	}

	var infos []window.Info
	for _, line := range strings.Split(out, "\n") {
		name, title, found := strings.Cut(line, "\t")
		if !found || strings.TrimSpace(name) == "" {
			continue
		}
		infos = append(infos, window.Info{
			Class:     strings.TrimSpace(name),
			Title:     strings.TrimSpace(title),
			Workspace: -1,
			Backend:   "darwin",
		})
	}
	return infos
}

func (d *Detector) osascript(script string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// Close releases resources. osascript is per-call, nothing to do.
func (d *Detector) Close() error {
	return nil
}
