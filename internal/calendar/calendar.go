package calendar

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const dateKeyLayout = "2006-01-02"

// FocusSessionSummary is what the calendar keeps about one completed
// focus session.
type FocusSessionSummary struct {
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
	MusicUsed bool          `json:"music_used"`
}

// DailyActivity aggregates one day of tracking: per-app durations and the
// focus sessions that started that day.
type DailyActivity struct {
	Date          time.Time                `json:"date"`
	AppDurations  map[string]time.Duration `json:"app_durations"`
	FocusSessions []FocusSessionSummary    `json:"focus_sessions"`
}

// TotalFocus sums the focus-session durations for the day.
func (d *DailyActivity) TotalFocus() time.Duration {
	var total time.Duration
	for _, s := range d.FocusSessions {
		total += s.Duration
	}
	return total
}

// Calendar is a date-keyed roll-up of duration deltas and focus-session
// summaries. Safe for concurrent use.
type Calendar struct {
	mu    sync.Mutex
	clock clockwork.Clock
	days  map[string]*DailyActivity
}

// New creates an empty calendar. A nil clock means the real clock.
func New(clock clockwork.Clock) *Calendar {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Calendar{
		clock: clock,
		days:  make(map[string]*DailyActivity),
	}
}

// AddActivity credits duration to appName under today's date.
func (c *Calendar) AddActivity(appName string, duration time.Duration) {
	if appName == "" || duration <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	day := c.dayFor(c.clock.Now())
	day.AppDurations[appName] += duration
}

// AddFocusSession records a completed focus session under the day it
// started.
func (c *Calendar) AddFocusSession(session FocusSessionSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	day := c.dayFor(session.StartTime)
	day.FocusSessions = append(day.FocusSessions, session)
}

// ActivityForDate returns a copy of the given day's activity, or nil when
// nothing was recorded.
func (c *Calendar) ActivityForDate(date time.Time) *DailyActivity {
	c.mu.Lock()
	defer c.mu.Unlock()

	day, ok := c.days[date.Format(dateKeyLayout)]
	if !ok {
		return nil
	}

	out := &DailyActivity{
		Date:          day.Date,
		AppDurations:  make(map[string]time.Duration, len(day.AppDurations)),
		FocusSessions: append([]FocusSessionSummary(nil), day.FocusSessions...),
	}
	for k, v := range day.AppDurations {
		out.AppDurations[k] = v
	}
	return out
}

// dayFor returns the bucket for t, creating it if needed. Caller holds the
// lock.
func (c *Calendar) dayFor(t time.Time) *DailyActivity {
	key := t.Format(dateKeyLayout)
	day, ok := c.days[key]
	if !ok {
		day = &DailyActivity{
			Date:         t,
			AppDurations: make(map[string]time.Duration),
		}
		c.days[key] = day
	}
	return day
}
