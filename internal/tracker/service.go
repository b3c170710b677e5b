package tracker

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"focustrack/internal/calendar"
	"focustrack/internal/config"
	"focustrack/internal/database"
	"focustrack/internal/models"
)

// Service drives the periodic poll loop: one ticker, strictly sequential
// updates, with each attributed interval fanned out to the database and
// the calendar aggregator.
type Service struct {
	config   *config.Config
	tracker  *ProcessTracker
	repo     *database.Repository
	calendar *calendar.Calendar
	clock    clockwork.Clock
	stopChan chan struct{}
	running  bool
}

// NewService wires the poll loop. repo and cal may be nil when persistence
// or the calendar roll-up are not wanted.
func NewService(cfg *config.Config, pt *ProcessTracker, repo *database.Repository, cal *calendar.Calendar, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		config:   cfg,
		tracker:  pt,
		repo:     repo,
		calendar: cal,
		clock:    clock,
		stopChan: make(chan struct{}),
	}
}

// Tracker exposes the underlying ledger owner for read access.
func (s *Service) Tracker() *ProcessTracker {
	return s.tracker
}

// Start runs the poll loop until the context is cancelled or Stop is
// called.
func (s *Service) Start(ctx context.Context) error {
	if s.running {
		return errors.New("tracker is already running")
	}
	s.running = true

	log.Info().Dur("poll_interval", s.config.Tracker.PollInterval).Msg("starting tracker")

	ticker := s.clock.NewTicker(s.config.Tracker.PollInterval)
	defer ticker.Stop()

	s.poll()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("tracker stopped by context")
			s.running = false
			return ctx.Err()

		case <-s.stopChan:
			log.Info().Msg("tracker stopped")
			s.running = false
			return nil

		case <-ticker.Chan():
			s.poll()
		}
	}
}

// Stop terminates the poll loop.
func (s *Service) Stop() {
	if s.running {
		close(s.stopChan)
	}
}

// IsRunning reports whether the loop is active.
func (s *Service) IsRunning() bool {
	return s.running
}

// poll runs one reconciliation pass and fans the outcome out.
func (s *Service) poll() {
	res := s.tracker.Update()
	if !res.Detected {
		log.Debug().Msg("no focused window this cycle")
		return
	}

	log.Debug().
		Str("app", res.Key).
		Dur("elapsed", res.Elapsed).
		Bool("created", res.Created).
		Msg("focus attributed")

	if s.calendar != nil {
		s.calendar.AddActivity(res.Key, res.Elapsed)
	}

	if s.repo != nil && res.Elapsed > 0 {
		event := &models.FocusEvent{
			Timestamp:   s.clock.Now(),
			AppName:     res.Key,
			WindowTitle: res.Title,
			Duration:    int64(res.Elapsed.Seconds()),
			Backend:     s.backendName(),
		}
		if err := s.repo.CreateEvent(event); err != nil {
			s.storeError(err)
		}
	}
}

func (s *Service) backendName() string {
	if det := s.tracker.detector; det != nil {
		return det.Backend()
	}
	return ""
}

// storeError records an operational error to the database, falling back to
// the log when that too fails.
func (s *Service) storeError(err error) {
	errorLog := &models.ErrorLog{
		Timestamp: s.clock.Now(),
		ErrorMsg:  err.Error(),
	}
	if dbErr := s.repo.CreateErrorLog(errorLog); dbErr != nil {
		log.Error().Err(dbErr).Str("original", err.Error()).Msg("failed to store error")
	} else {
		log.Warn().Err(err).Msg("error logged to database")
	}
}
