package calendar

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestAddActivity(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cal := New(clock)

	cal.AddActivity("editor", 10*time.Second)
	cal.AddActivity("editor", 5*time.Second)
	cal.AddActivity("browser", 3*time.Second)

	day := cal.ActivityForDate(clock.Now())
	if day == nil {
		t.Fatal("no activity recorded for today")
	}
	if got := day.AppDurations["editor"]; got != 15*time.Second {
		t.Errorf("editor total = %v, want 15s", got)
	}
	if got := day.AppDurations["browser"]; got != 3*time.Second {
		t.Errorf("browser total = %v, want 3s", got)
	}
}

func TestAddActivityIgnoresEmpty(t *testing.T) {
	cal := New(nil)

	cal.AddActivity("", 10*time.Second)
	cal.AddActivity("editor", 0)
	cal.AddActivity("editor", -5*time.Second)

	if day := cal.ActivityForDate(time.Now()); day != nil {
		t.Errorf("empty/zero activity created a day bucket: %+v", day)
	}
}

func TestActivitySplitsAcrossDays(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cal := New(clock)

	first := clock.Now()
	cal.AddActivity("editor", 10*time.Second)

	clock.Advance(24 * time.Hour)
	cal.AddActivity("editor", 20*time.Second)

	if got := cal.ActivityForDate(first).AppDurations["editor"]; got != 10*time.Second {
		t.Errorf("day one total = %v, want 10s", got)
	}
	if got := cal.ActivityForDate(clock.Now()).AppDurations["editor"]; got != 20*time.Second {
		t.Errorf("day two total = %v, want 20s", got)
	}
}

func TestAddFocusSession(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cal := New(clock)

	start := clock.Now()
	cal.AddFocusSession(FocusSessionSummary{
		StartTime: start,
		Duration:  25 * time.Minute,
		MusicUsed: true,
	})
	cal.AddFocusSession(FocusSessionSummary{
		StartTime: start.Add(time.Hour),
		Duration:  10 * time.Minute,
	})

	day := cal.ActivityForDate(start)
	if day == nil {
		t.Fatal("no activity recorded")
	}
	if len(day.FocusSessions) != 2 {
		t.Fatalf("got %d focus sessions, want 2", len(day.FocusSessions))
	}
	if !day.FocusSessions[0].MusicUsed {
		t.Error("first session lost its music flag")
	}
	if got := day.TotalFocus(); got != 35*time.Minute {
		t.Errorf("TotalFocus() = %v, want 35m", got)
	}
}

func TestFocusSessionKeyedByStartDay(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cal := New(clock)

	yesterday := clock.Now().Add(-24 * time.Hour)
	cal.AddFocusSession(FocusSessionSummary{StartTime: yesterday, Duration: time.Minute})

	if day := cal.ActivityForDate(clock.Now()); day != nil {
		t.Error("session recorded under today instead of its start day")
	}
	if day := cal.ActivityForDate(yesterday); day == nil || len(day.FocusSessions) != 1 {
		t.Error("session not recorded under its start day")
	}
}

func TestActivityForDateReturnsCopy(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cal := New(clock)

	cal.AddActivity("editor", 10*time.Second)

	day := cal.ActivityForDate(clock.Now())
	day.AppDurations["editor"] = time.Hour
	day.FocusSessions = append(day.FocusSessions, FocusSessionSummary{})

	fresh := cal.ActivityForDate(clock.Now())
	if fresh.AppDurations["editor"] != 10*time.Second {
		t.Error("mutating a returned day changed the calendar")
	}
	if len(fresh.FocusSessions) != 0 {
		t.Error("mutating a returned day changed the calendar sessions")
	}
}

func TestActivityForUnknownDate(t *testing.T) {
	cal := New(nil)
	if day := cal.ActivityForDate(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)); day != nil {
		t.Errorf("ActivityForDate on empty calendar = %+v, want nil", day)
	}
}
