package gnome

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"focustrack/pkg/window"
)

// DefaultEvalTimeout bounds one gdbus round trip to the shell.
const DefaultEvalTimeout = 2 * time.Second

// activeWindowScript is evaluated inside GNOME Shell and returns a JSON
// object describing the focused window, or the string "null".
const activeWindowScript = `
	let w = global.display.get_focus_window();
	if (!w) {
		w = global.get_window_actors()
			.map(a => a.meta_window)
			.find(m => m && m.has_focus());
	}
	if (w) {
		JSON.stringify({
			wm_class: w.get_wm_class() || '',
			title: w.get_title() || '',
			pid: w.get_pid() || 0,
			minimized: w.minimized || false,
			maximized: w.get_maximized() !== 0,
			fullscreen: w.is_fullscreen(),
			urgent: w.urgent || w.demands_attention || false,
			skip_taskbar: w.is_skip_taskbar(),
			workspace: w.get_workspace() ? w.get_workspace().index() : -1,
			sequence: w.get_stable_sequence()
		});
	} else {
		'null';
	}
`

// allWindowsScript returns a JSON array of every window the shell tracks.
const allWindowsScript = `
	JSON.stringify(global.get_window_actors()
		.map(a => a.meta_window)
		.filter(w => !!w)
		.map(w => ({
			wm_class: w.get_wm_class() || '',
			title: w.get_title() || '',
			pid: w.get_pid() || 0,
			minimized: w.minimized || false,
			maximized: w.get_maximized() !== 0,
			fullscreen: w.is_fullscreen(),
			urgent: w.urgent || w.demands_attention || false,
			skip_taskbar: w.is_skip_taskbar(),
			workspace: w.get_workspace() ? w.get_workspace().index() : -1,
			sequence: w.get_stable_sequence()
		})));
`

type shellWindow struct {
	WmClass     string `json:"wm_class"`
	Title       string `json:"title"`
	PID         int    `json:"pid"`
	Minimized   bool   `json:"minimized"`
	Maximized   bool   `json:"maximized"`
	Fullscreen  bool   `json:"fullscreen"`
	Urgent      bool   `json:"urgent"`
	SkipTaskbar bool   `json:"skip_taskbar"`
	Workspace   int    `json:"workspace"`
	Sequence    uint64 `json:"sequence"`
}

func (s *shellWindow) toInfo() window.Info {
	return window.Info{
		Class:       s.WmClass,
		Title:       s.Title,
		PID:         s.PID,
		Minimized:   s.Minimized,
		Maximized:   s.Maximized,
		Fullscreen:  s.Fullscreen,
		Urgent:      s.Urgent,
		SkipTaskbar: s.SkipTaskbar,
		Workspace:   s.Workspace,
		Sequence:    s.Sequence,
		Backend:     "gnome",
	}
}

// Detector implements window.Detector for GNOME on Wayland via the shell's
// Eval scripting interface.
type Detector struct {
	hasGdbus bool
	timeout  time.Duration
}

// NewDetector creates a new GNOME Shell detector.
func NewDetector() *Detector {
	_, err := exec.LookPath("gdbus")
	return &Detector{
		hasGdbus: err == nil,
		timeout:  DefaultEvalTimeout,
	}
}

// SetEvalTimeout overrides the per-call gdbus timeout.
func (d *Detector) SetEvalTimeout(timeout time.Duration) {
	if timeout > 0 {
		d.timeout = timeout
	}
}

// IsAvailable checks if GNOME Shell detection can work on this system.
func (d *Detector) IsAvailable() bool {
	if !d.hasGdbus {
		return false
	}
	desktop := strings.ToLower(os.Getenv("XDG_CURRENT_DESKTOP"))
	if strings.Contains(desktop, "gnome") || strings.Contains(desktop, "ubuntu") {
		return true
	}
	return exec.Command("pgrep", "-x", "gnome-shell").Run() == nil
}

// Backend returns "gnome".
func (d *Detector) Backend() string {
	return "gnome"
}

// GetActiveWindow returns the focused window per GNOME Shell, or nil when
// the shell reports no focus or the call fails.
func (d *Detector) GetActiveWindow() *window.Info {
	raw, err := d.eval(activeWindowScript)
	if err != nil {
		log.Debug().Err(err).Msg("gnome: shell eval failed")
		return nil
	}

	payload, ok := extractPayload(raw)
	if !ok {
		return nil
	}

	var sw shellWindow
	if err := json.Unmarshal(payload, &sw); err != nil {
		log.Debug().Err(err).Str("payload", string(payload)).Msg("gnome: unparseable shell response")
		return nil
	}

	info := sw.toInfo()
	return &info
}

// GetAllWindows enumerates the shell's window list. Best effort.
func (d *Detector) GetAllWindows() []window.Info {
	raw, err := d.eval(allWindowsScript)
	if err != nil {
		log.Debug().Err(err).Msg("gnome: shell eval failed")
		return nil
	}

	payload, ok := extractPayload(raw)
	if !ok {
		return nil
	}

	var sws []shellWindow
	if err := json.Unmarshal(payload, &sws); err != nil {
		log.Debug().Err(err).Msg("gnome: unparseable window list")
		return nil
	}

	infos := make([]window.Info, 0, len(sws))
	for i := range sws {
		infos = append(infos, sws[i].toInfo())
	}
	return infos
}

// eval runs a script through org.gnome.Shell.Eval and returns the raw
// gdbus output.
func (d *Detector) eval(script string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "gdbus", "call", "--session",
		"--dest", "org.gnome.Shell",
		"--object-path", "/org/gnome/Shell",
		"--method", "org.gnome.Shell.Eval",
		script)

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(output), nil
}

// extractPayload pulls the JSON payload out of a gdbus Eval response of the
// form (true, '...'). A failed eval, a 'null' result or no JSON at all
// reports not-ok.
func extractPayload(raw string) ([]byte, bool) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "(true,") {
		return nil, false
	}

	start := strings.IndexAny(raw, "{[")
	if start == -1 {
		return nil, false
	}

	var end int
	if raw[start] == '{' {
		end = strings.LastIndex(raw, "}")
	} else {
		end = strings.LastIndex(raw, "]")
	}
	if end <= start {
		return nil, false
	}

	payload := raw[start : end+1]
	payload = strings.ReplaceAll(payload, `\"`, `"`)
	payload = strings.ReplaceAll(payload, `\'`, `'`)
	return []byte(payload), true
}

// Close releases resources. The gdbus transport is per-call, nothing to do.
func (d *Detector) Close() error {
	return nil
}
