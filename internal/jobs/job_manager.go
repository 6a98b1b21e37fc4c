package jobs

import (
	"fmt"
	"log/slog"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
)

// Schedules holds the cron expressions (with seconds) of the scheduled jobs.
// Empty values fall back to the job defaults.
type Schedules struct {
	Tick     string
	Snapshot string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	lifecycleTickJob *LifecycleTickJob
	snapshotJob      *SnapshotJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	advanceHandler commands.AdvanceLifecycleCommandHandler,
	snapshotHandler commands.SaveSnapshotCommandHandler,
	clock kernel.Clock,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		lifecycleTickJob: NewLifecycleTickJob(advanceHandler, clock, schedules.Tick, logger),
		snapshotJob:      NewSnapshotJob(snapshotHandler, schedules.Snapshot, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.lifecycleTickJob.Start(); err != nil {
		return fmt.Errorf("failed to start lifecycle tick job: %w", err)
	}

	if err := jm.snapshotJob.Start(); err != nil {
		jm.lifecycleTickJob.Stop()
		return fmt.Errorf("failed to start snapshot job: %w", err)
	}

	return nil
}

// StopAll stops the jobs. Snapshots stop first so the final save on shutdown
// does not race a scheduled one.
func (jm *JobManager) StopAll() {
	jm.snapshotJob.Stop()
	jm.lifecycleTickJob.Stop()
}
