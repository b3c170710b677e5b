package window

// Info describes one observed window. Instances are produced fresh on every
// poll and are never persisted.
type Info struct {
	// Class is the window class / app id as reported by the backend.
	// May be empty; Identity falls back to the title in that case.
	Class string

	// Title is the raw window title.
	Title string

	// PID is the owning process id, 0 when unknown.
	PID int

	// State flags mirrored from the backend.
	Minimized   bool
	Maximized   bool
	Fullscreen  bool
	Urgent      bool
	SkipTaskbar bool

	// Workspace is the workspace/desktop index, -1 when unknown.
	Workspace int

	// Sequence is a backend-assigned stable sequence number, 0 when unknown.
	Sequence uint64

	// Backend names the detector that produced this sample.
	Backend string
}

// Detector is the interface that all window detection backends must satisfy.
// Backends absorb their own failures: a spawn error, IPC timeout or malformed
// response is logged and surfaces as nil / empty, never as an error.
type Detector interface {
	// GetActiveWindow returns the currently focused window, or nil when
	// focus cannot be determined.
	GetActiveWindow() *Info

	// GetAllWindows returns every window the backend can see. Best effort;
	// returns an empty slice on failure.
	GetAllWindows() []Info

	// IsAvailable checks if this detector can run on the current system.
	IsAvailable() bool

	// Backend returns the backend name ("x11", "gnome", "darwin", "windows").
	Backend() string

	// Close releases any resources held by the detector.
	Close() error
}
