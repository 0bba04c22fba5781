package jobs

import (
	"context"
	"fmt"
	"time"

	"rentacar-backend/internal/config"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/service"
)

const jobTimeout = 30 * time.Minute

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs.
// Sync may be nil when no cloud store is configured.
type Services struct {
	Backup service.BackupService
	Sync   service.SyncService
	Email  service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery. Failures and
// panics are reported to the administrator by email.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) (err error) {
	log := logger.WithJob(jobName)
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "panic", r)
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
		if err != nil {
			jr.notifyFailure(jobName, err)
		}
	}()

	start := time.Now()
	log.Info("Starting job")
	if err = jobFunc(ctx); err != nil {
		log.Error("Job failed", "error", err, "duration", time.Since(start))
		return err
	}
	log.Info("Job completed", "duration", time.Since(start))
	return nil
}

func (jr *JobRunner) notifyFailure(jobName string, jobErr error) {
	if jr.services.Email == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	subject := fmt.Sprintf("Scheduled job %s failed", jobName)
	message := fmt.Sprintf("Job %s failed at %s:\n\n%v", jobName, time.Now().UTC().Format(time.RFC3339), jobErr)
	if err := jr.services.Email.SendAdminNotification(ctx, subject, message); err != nil {
		logger.Error("Failed to send job failure alert", "job", jobName, "error", err)
	}
}

// RunAll runs every job once in dependency order and returns the first error
func (jr *JobRunner) RunAll() error {
	var firstErr error
	for _, job := range []func() error{jr.SyncCloud, jr.CreateBackup, jr.PruneBackups} {
		if err := job(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
