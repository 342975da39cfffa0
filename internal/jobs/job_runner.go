package jobs

import (
	"time"

	"brinquedos-backend/internal/config"
	"brinquedos-backend/internal/logger"
	"brinquedos-backend/internal/repository"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	bookings repository.BookingRepository
	config   *config.Config
	loc      *time.Location
	now      func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(bookings repository.BookingRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		bookings: bookings,
		config:   cfg,
		loc:      cfg.Location(),
		now:      time.Now,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// Location is the time zone wall-clock comparisons and cron schedules use.
func (jr *JobRunner) Location() *time.Location {
	return jr.loc
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.AdvanceTeardownStatus()
	jr.LogTodayParties()
}
