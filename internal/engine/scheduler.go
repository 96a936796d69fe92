package engine

import (
	"context"
	"time"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"
)

// DefaultSchedule rebuilds the indexes every 15 minutes.
const DefaultSchedule = "@every 15m"

// Scheduler refreshes an Engine on a cron schedule.
type Scheduler struct {
	engine  *Engine
	cron    *cron.Cron
	logger  *log.Logger
	timeout time.Duration
}

// NewScheduler creates a scheduler for engine. Each run is bounded by timeout.
func NewScheduler(engine *Engine, logger *log.Logger, timeout time.Duration) *Scheduler {
	if logger == nil {
		logger = engine.logger
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Scheduler{
		engine:  engine,
		cron:    cron.New(),
		logger:  logger,
		timeout: timeout,
	}
}

// Start registers the refresh job and starts the cron loop.
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	_, err := s.cron.AddFunc(schedule, s.runRefresh)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().Str("schedule", schedule).Msg("Index refresh scheduler started")
	return nil
}

// Stop halts the scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Index refresh scheduler stopped")
}

// RunNow triggers an immediate refresh in the background.
func (s *Scheduler) RunNow() {
	s.logger.Info().Msg("Triggering immediate index refresh")
	go s.runRefresh()
}

func (s *Scheduler) runRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.engine.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Scheduled refresh failed, keeping previous indexes")
	}
}
