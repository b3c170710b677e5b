package focus

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"focustrack/internal/calendar"
)

func TestStartAndEnd(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var recorded []calendar.FocusSessionSummary
	m := NewManager(clock, func(s calendar.FocusSessionSummary) {
		recorded = append(recorded, s)
	})

	if err := m.Start(25*time.Minute, false); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if !m.Active() {
		t.Fatal("Active() = false after Start")
	}

	clock.Advance(10 * time.Minute)

	summary, err := m.End()
	if err != nil {
		t.Fatalf("End() error: %v", err)
	}
	if summary.Duration != 10*time.Minute {
		t.Errorf("summary duration = %v, want 10m", summary.Duration)
	}
	if m.Active() {
		t.Error("Active() = true after End")
	}
	if len(recorded) != 1 {
		t.Fatalf("sink received %d summaries, want 1", len(recorded))
	}
}

func TestEndCapsAtPlannedDuration(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewManager(clock, nil)

	if err := m.Start(25*time.Minute, false); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	clock.Advance(2 * time.Hour)

	summary, err := m.End()
	if err != nil {
		t.Fatalf("End() error: %v", err)
	}
	if summary.Duration != 25*time.Minute {
		t.Errorf("summary duration = %v, want capped at 25m", summary.Duration)
	}
}

func TestDoubleStart(t *testing.T) {
	m := NewManager(clockwork.NewFakeClock(), nil)

	if err := m.Start(25*time.Minute, false); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if err := m.Start(25*time.Minute, false); err == nil {
		t.Error("second Start() succeeded, want error")
	}
}

func TestEndWithoutSession(t *testing.T) {
	m := NewManager(clockwork.NewFakeClock(), nil)
	if _, err := m.End(); err == nil {
		t.Error("End() without a session succeeded, want error")
	}
}

func TestInvalidDuration(t *testing.T) {
	m := NewManager(clockwork.NewFakeClock(), nil)
	if err := m.Start(0, false); err == nil {
		t.Error("Start(0) succeeded, want error")
	}
	if err := m.Start(-time.Minute, false); err == nil {
		t.Error("Start(-1m) succeeded, want error")
	}
}

func TestRemaining(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewManager(clock, nil)

	if got := m.Remaining(); got != 0 {
		t.Errorf("Remaining() with no session = %v, want 0", got)
	}

	if err := m.Start(25*time.Minute, false); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	clock.Advance(10 * time.Minute)
	if got := m.Remaining(); got != 15*time.Minute {
		t.Errorf("Remaining() = %v, want 15m", got)
	}

	clock.Advance(time.Hour)
	if got := m.Remaining(); got != 0 {
		t.Errorf("Remaining() past the end = %v, want 0", got)
	}
}

func TestMusicSelection(t *testing.T) {
	m := NewManager(clockwork.NewFakeClock(), nil)
	m.AddMusic("/music/first.ogg")
	m.AddMusic("/music/second.ogg")

	if err := m.Start(25*time.Minute, true); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	session, ok := m.Current()
	if !ok {
		t.Fatal("Current() reported no session")
	}
	if session.MusicPath != "/music/first.ogg" {
		t.Errorf("MusicPath = %q, want first playlist entry", session.MusicPath)
	}

	summary, err := m.End()
	if err != nil {
		t.Fatalf("End() error: %v", err)
	}
	if !summary.MusicUsed {
		t.Error("summary MusicUsed = false, want true")
	}
}
