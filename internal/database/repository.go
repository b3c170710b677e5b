package database

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"gorm.io/gorm"

	"focustrack/internal/models"
)

// Repository handles all database operations for focus events and sessions.
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// CreateEvent inserts one attributed poll interval.
func (r *Repository) CreateEvent(event *models.FocusEvent) error {
	event.AppName = strings.ToLower(event.AppName)
	if result := r.db.Create(event); result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert focus event")
	}
	return nil
}

// CreateSession inserts one completed focus session.
func (r *Repository) CreateSession(session *models.FocusSession) error {
	if result := r.db.Create(session); result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert focus session")
	}
	return nil
}

// GetEventsSince retrieves all focus events since a given time, oldest first.
func (r *Repository) GetEventsSince(since time.Time) ([]*models.FocusEvent, error) {
	var events []*models.FocusEvent
	result := r.db.Where("timestamp >= ?", since).Order("timestamp ASC").Find(&events)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query focus events")
	}
	return events, nil
}

// GetAppSummarySince returns aggregated app usage since a given time.
// SQL does the SUM; callers compute derived fields.
func (r *Repository) GetAppSummarySince(since time.Time) ([]models.AppSummary, error) {
	var summaries []models.AppSummary

	result := r.db.Model(&models.FocusEvent{}).
		Select("app_name, SUM(duration) as total_seconds, COUNT(*) as event_count").
		Where("timestamp >= ?", since).
		Group("app_name").
		Order("total_seconds DESC").
		Scan(&summaries)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query app summary")
	}

	return summaries, nil
}

// GetSessionsBetween retrieves focus sessions whose start falls in [start, end).
func (r *Repository) GetSessionsBetween(start, end time.Time) ([]*models.FocusSession, error) {
	var sessions []*models.FocusSession
	result := r.db.Where("start_time >= ? AND start_time < ?", start, end).
		Order("start_time ASC").Find(&sessions)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query focus sessions")
	}
	return sessions, nil
}

// GetLatestEvent retrieves the most recent focus event, nil when none exist.
func (r *Repository) GetLatestEvent() (*models.FocusEvent, error) {
	var event models.FocusEvent
	result := r.db.Order("timestamp DESC").First(&event)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get latest event")
	}
	return &event, nil
}

// DeleteOldEvents deletes events older than a specified date (soft delete).
func (r *Repository) DeleteOldEvents(before time.Time) (int64, error) {
	result := r.db.Where("timestamp < ?", before).Delete(&models.FocusEvent{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete old events")
	}
	return result.RowsAffected, nil
}

// CreateErrorLog inserts a new error log entry.
func (r *Repository) CreateErrorLog(errorLog *models.ErrorLog) error {
	if result := r.db.Create(errorLog); result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert error log")
	}
	return nil
}

// Clear removes all tracking data.
func (r *Repository) Clear() error {
	for _, stmt := range []string{
		"DELETE FROM focus_events",
		"DELETE FROM focus_sessions",
	} {
		if result := r.db.Exec(stmt); result.Error != nil {
			return errors.Wrap(result.Error, "failed to clear tracking data")
		}
	}
	return nil
}
