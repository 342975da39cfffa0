package scheduler

import (
	"github.com/robfig/cron/v3"

	"brinquedos-backend/internal/jobs"
	"brinquedos-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner. Schedules
// are read in the configured business time zone.
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	c := cron.New(
		cron.WithLocation(jobRunner.Location()),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	// Booking status sweep
	_, err := s.cron.AddFunc(cfg.AdvanceTeardownStatus, s.jobs.AdvanceTeardownStatus)
	if err != nil {
		logger.Error("Failed to register AdvanceTeardownStatus job", "error", err)
	}

	// Morning summary
	_, err = s.cron.AddFunc(cfg.LogTodayParties, s.jobs.LogTodayParties)
	if err != nil {
		logger.Error("Failed to register LogTodayParties job", "error", err)
	}

	logger.Info("Cron jobs registered", "count", len(s.cron.Entries()), "timezone", s.jobs.Location().String())
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
