package focus

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"focustrack/internal/calendar"
)

// Session is one running focus-mode countdown.
type Session struct {
	StartTime    time.Time     `json:"start_time"`
	Duration     time.Duration `json:"duration"`
	MusicEnabled bool          `json:"music_enabled"`
	MusicPath    string        `json:"music_path,omitempty"`
}

// Manager owns the current focus session, if any. Completed sessions are
// handed to the configured sink (normally the calendar aggregator).
type Manager struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	current  *Session
	playlist []string
	onEnd    func(calendar.FocusSessionSummary)
}

// NewManager creates a session manager. A nil clock means the real clock;
// a nil onEnd drops session summaries.
func NewManager(clock clockwork.Clock, onEnd func(calendar.FocusSessionSummary)) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Manager{clock: clock, onEnd: onEnd}
}

// AddMusic appends a track to the playlist used by music-enabled sessions.
func (m *Manager) AddMusic(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playlist = append(m.playlist, path)
}

// Start begins a focus session. Only one session runs at a time.
func (m *Manager) Start(duration time.Duration, musicEnabled bool) error {
	if duration <= 0 {
		return errors.New("focus session duration must be positive")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		return errors.New("a focus session is already running")
	}

	session := &Session{
		StartTime:    m.clock.Now(),
		Duration:     duration,
		MusicEnabled: musicEnabled,
	}
	if musicEnabled && len(m.playlist) > 0 {
		session.MusicPath = m.playlist[0]
	}

	m.current = session
	return nil
}

// End finishes the current session and reports it to the sink. The
// recorded duration is the actual elapsed time, capped at the planned
// duration.
func (m *Manager) End() (calendar.FocusSessionSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return calendar.FocusSessionSummary{}, errors.New("no focus session is running")
	}

	elapsed := m.clock.Now().Sub(m.current.StartTime)
	if elapsed > m.current.Duration {
		elapsed = m.current.Duration
	}
	if elapsed < 0 {
		elapsed = 0
	}

	summary := calendar.FocusSessionSummary{
		StartTime: m.current.StartTime,
		Duration:  elapsed,
		MusicUsed: m.current.MusicEnabled,
	}
	m.current = nil

	if m.onEnd != nil {
		m.onEnd(summary)
	}
	return summary, nil
}

// Current returns a copy of the running session, if any.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// Remaining returns how much of the running session is left. Zero when
// the session has run out or none is active.
func (m *Manager) Remaining() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return 0
	}

	remaining := m.current.Duration - m.clock.Now().Sub(m.current.StartTime)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Active reports whether a session is running.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}
