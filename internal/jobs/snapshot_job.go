package jobs

import (
	"context"
	"log/slog"
	"time"

	"parceltrack/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSnapshotSchedule saves the parcel records at the top of every minute.
const DefaultSnapshotSchedule = "0 * * * * *"

const snapshotTimeout = 30 * time.Second

// SnapshotJob periodically persists the engine's parcel records.
type SnapshotJob struct {
	handler  commands.SaveSnapshotCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewSnapshotJob(handler commands.SaveSnapshotCommandHandler, schedule string, logger *slog.Logger) *SnapshotJob {
	if schedule == "" {
		schedule = DefaultSnapshotSchedule
	}
	return &SnapshotJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "snapshot_job"),
	}
}

// Run saves one snapshot.
func (j *SnapshotJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	return j.handler.Handle(ctx, commands.NewSaveSnapshotCommand())
}

func (j *SnapshotJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Snapshot job failed", "error", err)
			return
		}
		j.logger.DebugContext(ctx, "Snapshot saved")
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Snapshot job started", "schedule", j.schedule)
	return nil
}

func (j *SnapshotJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Snapshot job stopped")
}
