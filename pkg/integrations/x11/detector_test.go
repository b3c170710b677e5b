package x11

import (
	"testing"

	"focustrack/pkg/window"
)

func TestDetectorInterface(t *testing.T) {
	var _ window.Detector = (*Detector)(nil)
}

func TestNewDetector(t *testing.T) {
	d := NewDetector()
	if d == nil {
		t.Fatal("NewDetector() returned nil")
	}
	defer d.Close()

	t.Logf("X11 detector available: %v", d.IsAvailable())

	if d.Backend() != "x11" {
		t.Errorf("Backend() = %s, want x11", d.Backend())
	}
}

func TestParseClassProperty(t *testing.T) {
	tests := []struct {
		name         string
		data         []byte
		wantInstance string
		wantClass    string
	}{
		{
			name:         "Instance and class",
			data:         []byte("Navigator\x00Firefox\x00"),
			wantInstance: "Navigator",
			wantClass:    "Firefox",
		},
		{
			name:         "Same instance and class",
			data:         []byte("kitty\x00kitty\x00"),
			wantInstance: "kitty",
			wantClass:    "kitty",
		},
		{
			name:         "Instance only",
			data:         []byte("xterm\x00"),
			wantInstance: "xterm",
			wantClass:    "",
		},
		{
			name:         "Empty",
			data:         nil,
			wantInstance: "",
			wantClass:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instance, class := parseClassProperty(tt.data)
			if instance != tt.wantInstance {
				t.Errorf("instance = %q, want %q", instance, tt.wantInstance)
			}
			if class != tt.wantClass {
				t.Errorf("class = %q, want %q", class, tt.wantClass)
			}
		})
	}
}

func TestGetActiveWindowUnavailable(t *testing.T) {
	d := &Detector{}

	if info := d.GetActiveWindow(); info != nil {
		t.Errorf("GetActiveWindow() on disconnected detector = %+v, want nil", info)
	}
	if windows := d.GetAllWindows(); len(windows) != 0 {
		t.Errorf("GetAllWindows() on disconnected detector returned %d entries, want 0", len(windows))
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestGetActiveWindowLive(t *testing.T) {
	d := NewDetector()
	defer d.Close()

	if !d.IsAvailable() {
		t.Skip("X server not available on this system")
	}

	info := d.GetActiveWindow()
	if info == nil {
		t.Log("no focused window reported (may be expected on a bare server)")
		return
	}

	t.Logf("focused: class=%q title=%q pid=%d workspace=%d", info.Class, info.Title, info.PID, info.Workspace)

	if info.Backend != "x11" {
		t.Errorf("Backend = %s, want x11", info.Backend)
	}
}

func TestGetAllWindowsLive(t *testing.T) {
	d := NewDetector()
	defer d.Close()

	if !d.IsAvailable() {
		t.Skip("X server not available on this system")
	}

	windows := d.GetAllWindows()
	t.Logf("enumerated %d windows", len(windows))
	for _, w := range windows {
		if w.Class == "" && w.Title == "" {
			t.Error("enumerated window with neither class nor title")
		}
	}
}
