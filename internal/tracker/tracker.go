package tracker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"focustrack/pkg/window"
)

// AppInfo is one ledger entry: the accumulated focus statistics for a
// single application identity. Entries are created on first observation
// and live until the process exits; they are never removed.
type AppInfo struct {
	Name        string        `json:"name"`
	WindowTitle string        `json:"window_title"`
	Duration    time.Duration `json:"duration"`
	IsActive    bool          `json:"is_active"`

	Minimized   bool `json:"minimized"`
	Maximized   bool `json:"maximized"`
	Fullscreen  bool `json:"fullscreen"`
	Urgent      bool `json:"urgent"`
	SkipTaskbar bool `json:"skip_taskbar"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateResult reports what one reconciliation pass did, so callers can
// feed persistence and the calendar without touching the ledger.
type UpdateResult struct {
	// Detected is false when the poll produced no usable sample (no
	// window, no identity, or the tick was skipped as overlapping).
	Detected bool

	// Key is the ledger key the elapsed interval was attributed to.
	Key string

	// Title is the window title from the sample.
	Title string

	// Elapsed is the duration added to the entry.
	Elapsed time.Duration

	// Created is true when this poll observed Key for the first time.
	Created bool
}

// ProcessTracker owns the ledger and reconciles detector samples into it.
// Update is the only writer; every reader goes through Snapshot.
type ProcessTracker struct {
	mu          sync.Mutex
	clock       clockwork.Clock
	detector    window.Detector
	apps        map[string]*AppInfo
	lastUpdate  time.Time
	trackTitles bool
	inFlight    atomic.Bool
}

// New creates a tracker over the given detector. A nil clock means the
// real clock.
func New(det window.Detector, clock clockwork.Clock, trackTitles bool) *ProcessTracker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ProcessTracker{
		clock:       clock,
		detector:    det,
		apps:        make(map[string]*AppInfo),
		lastUpdate:  clock.Now(),
		trackTitles: trackTitles,
	}
}

// Update runs one reconciliation pass: poll the detector, attribute the
// elapsed interval, refresh activity flags. Overlapping calls are skipped
// rather than serialized so a slow detector cannot queue up stale polls.
func (t *ProcessTracker) Update() UpdateResult {
	if !t.inFlight.CompareAndSwap(false, true) {
		return UpdateResult{}
	}
	defer t.inFlight.Store(false)

	// The detector blocks on process spawns or IPC; keep that outside
	// the ledger lock so readers are never stalled by it.
	info := t.detector.GetActiveWindow()
	now := t.clock.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := now.Sub(t.lastUpdate)
	if elapsed < 0 {
		// Clock went backwards; attribute nothing rather than corrupt
		// the ledger.
		elapsed = 0
	}
	t.lastUpdate = now

	var key string
	if info != nil {
		key = info.Identity()
	}

	if key == "" {
		// Detection gap: freeze every entry. No time is attributed for
		// this interval, none is fabricated later.
		for _, app := range t.apps {
			app.IsActive = false
		}
		return UpdateResult{}
	}

	app, exists := t.apps[key]
	if !exists {
		app = &AppInfo{Name: key, CreatedAt: now}
		t.apps[key] = app
	}

	for k, a := range t.apps {
		a.IsActive = k == key
	}

	// The first sample after creation still covers the interval since
	// the previous poll; focus is assumed not to have changed mid-interval.
	app.Duration += elapsed
	app.UpdatedAt = now
	if t.trackTitles {
		app.WindowTitle = info.Title
	}
	app.Minimized = info.Minimized
	app.Maximized = info.Maximized
	app.Fullscreen = info.Fullscreen
	app.Urgent = info.Urgent
	app.SkipTaskbar = info.SkipTaskbar

	return UpdateResult{
		Detected: true,
		Key:      key,
		Title:    app.WindowTitle,
		Elapsed:  elapsed,
		Created:  !exists,
	}
}

// Snapshot returns a point-in-time copy of the ledger. Mutating the result
// has no effect on the tracker.
func (t *ProcessTracker) Snapshot() map[string]AppInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]AppInfo, len(t.apps))
	for k, v := range t.apps {
		out[k] = *v
	}
	return out
}

// Focused returns the key of the currently active entry, if any.
func (t *ProcessTracker) Focused() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for k, a := range t.apps {
		if a.IsActive {
			return k, true
		}
	}
	return "", false
}

// LastUpdate returns the timestamp of the last completed poll.
func (t *ProcessTracker) LastUpdate() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastUpdate
}
