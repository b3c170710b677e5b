package web

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"focustrack/internal/calendar"
	"focustrack/internal/config"
	"focustrack/internal/focus"
	"focustrack/internal/reporter"
	"focustrack/internal/tracker"
)

// Handler serves the dashboard API from the live tracker and its
// collaborators. All ledger access goes through snapshots; nothing here
// can mutate tracking state except the focus-session endpoints.
type Handler struct {
	config   *config.Config
	tracker  *tracker.ProcessTracker
	calendar *calendar.Calendar
	focus    *focus.Manager
	reporter *reporter.Reporter
}

// NewHandler wires the API surface. reporter may be nil when no database
// is attached.
func NewHandler(cfg *config.Config, pt *tracker.ProcessTracker, cal *calendar.Calendar, fm *focus.Manager, rep *reporter.Reporter) *Handler {
	return &Handler{
		config:   cfg,
		tracker:  pt,
		calendar: cal,
		focus:    fm,
		reporter: rep,
	}
}

// appEntry is one dashboard row.
type appEntry struct {
	Name        string  `json:"name"`
	WindowTitle string  `json:"window_title,omitempty"`
	Seconds     float64 `json:"seconds"`
	IsActive    bool    `json:"is_active"`
	Minimized   bool    `json:"minimized,omitempty"`
	Maximized   bool    `json:"maximized,omitempty"`
	Fullscreen  bool    `json:"fullscreen,omitempty"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Apps returns the ledger snapshot sorted by accumulated duration,
// longest first.
func (h *Handler) Apps(w http.ResponseWriter, r *http.Request) {
	snapshot := h.tracker.Snapshot()

	entries := make([]appEntry, 0, len(snapshot))
	for _, app := range snapshot {
		entries = append(entries, appEntry{
			Name:        app.Name,
			WindowTitle: app.WindowTitle,
			Seconds:     app.Duration.Seconds(),
			IsActive:    app.IsActive,
			Minimized:   app.Minimized,
			Maximized:   app.Maximized,
			Fullscreen:  app.Fullscreen,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Seconds > entries[j].Seconds
	})

	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	focused, ok := h.tracker.Focused()

	status := map[string]any{
		"tracking":     true,
		"focused_app":  focused,
		"has_focus":    ok,
		"last_update":  h.tracker.LastUpdate(),
		"tracked_apps": len(h.tracker.Snapshot()),
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	if h.reporter == nil {
		writeError(w, http.StatusServiceUnavailable, "no database attached")
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "day"
	}

	report, err := h.reporter.GenerateReport(period)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) CalendarDay(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "date")
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	day := h.calendar.ActivityForDate(date)
	if day == nil {
		writeError(w, http.StatusNotFound, "no activity recorded for "+raw)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (h *Handler) FocusStatus(w http.ResponseWriter, r *http.Request) {
	session, active := h.focus.Current()
	resp := map[string]any{
		"active": active,
	}
	if active {
		resp["session"] = session
		resp["remaining_seconds"] = h.focus.Remaining().Seconds()
	}
	writeJSON(w, http.StatusOK, resp)
}

type focusStartRequest struct {
	DurationMinutes int  `json:"duration_minutes"`
	Music           bool `json:"music"`
}

func (h *Handler) FocusStart(w http.ResponseWriter, r *http.Request) {
	var req focusStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	if duration <= 0 {
		duration = h.config.Focus.DefaultDuration
	}

	if err := h.focus.Start(duration, req.Music); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"started":          true,
		"duration_seconds": duration.Seconds(),
	})
}

func (h *Handler) FocusStop(w http.ResponseWriter, r *http.Request) {
	summary, err := h.focus.End()
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
