package gnome

import (
	"encoding/json"
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
	if d.Backend() != "gnome" {
		t.Errorf("Backend() = %s, want gnome", d.Backend())
	}
	if d.timeout != DefaultEvalTimeout {
		t.Errorf("timeout = %v, want %v", d.timeout, DefaultEvalTimeout)
	}
}

func TestExtractPayload(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantOK  bool
	}{
		{
			name:   "Object payload",
			raw:    `(true, '"{\"wm_class\":\"Firefox\",\"title\":\"Example\",\"pid\":1234}"')`,
			want:   `{"wm_class":"Firefox","title":"Example","pid":1234}`,
			wantOK: true,
		},
		{
			name:   "Array payload",
			raw:    `(true, '"[{\"wm_class\":\"kitty\"}]"')`,
			want:   `[{"wm_class":"kitty"}]`,
			wantOK: true,
		},
		{
			name:   "Null result means no window",
			raw:    `(true, '"null"')`,
			wantOK: false,
		},
		{
			name:   "Eval rejected",
			raw:    `(false, '')`,
			wantOK: false,
		},
		{
			name:   "Empty output",
			raw:    ``,
			wantOK: false,
		},
		{
			name:   "Garbage output",
			raw:    `not a dbus tuple`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, ok := extractPayload(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("extractPayload(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if ok && string(payload) != tt.want {
				t.Errorf("extractPayload(%q) = %q, want %q", tt.raw, payload, tt.want)
			}
		})
	}
}

func TestShellWindowToInfo(t *testing.T) {
	payload := `{
		"wm_class": "Editor",
		"title": "Report.docx - WordProcessor",
		"pid": 4242,
		"minimized": false,
		"maximized": true,
		"fullscreen": false,
		"urgent": false,
		"skip_taskbar": false,
		"workspace": 2,
		"sequence": 17
	}`

	var sw shellWindow
	if err := json.Unmarshal([]byte(payload), &sw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	info := sw.toInfo()
	if info.Class != "Editor" {
		t.Errorf("Class = %s, want Editor", info.Class)
	}
	if info.Title != "Report.docx - WordProcessor" {
		t.Errorf("Title = %s, want Report.docx - WordProcessor", info.Title)
	}
	if info.PID != 4242 {
		t.Errorf("PID = %d, want 4242", info.PID)
	}
	if !info.Maximized {
		t.Error("Maximized = false, want true")
	}
	if info.Workspace != 2 {
		t.Errorf("Workspace = %d, want 2", info.Workspace)
	}
	if info.Sequence != 17 {
		t.Errorf("Sequence = %d, want 17", info.Sequence)
	}
	if info.Backend != "gnome" {
		t.Errorf("Backend = %s, want gnome", info.Backend)
	}
}

func TestGetActiveWindowLive(t *testing.T) {
	d := NewDetector()
	if !d.IsAvailable() {
		t.Skip("GNOME Shell not available on this system")
	}

	info := d.GetActiveWindow()
	if info == nil {
		t.Log("no focused window reported (may be expected)")
		return
	}
	t.Logf("focused: class=%s title=%s pid=%d", info.Class, info.Title, info.PID)
}
