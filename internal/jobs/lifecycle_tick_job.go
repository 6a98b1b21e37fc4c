package jobs

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// DefaultTickSchedule runs the lifecycle sweep every second.
const DefaultTickSchedule = "* * * * * *"

// LifecycleTickJob advances parcels through the delivery lifecycle on a
// schedule, using the wall clock as the sweep time.
type LifecycleTickJob struct {
	handler  commands.AdvanceLifecycleCommandHandler
	clock    kernel.Clock
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewLifecycleTickJob creates the job. An empty schedule means DefaultTickSchedule.
func NewLifecycleTickJob(
	handler commands.AdvanceLifecycleCommandHandler,
	clock kernel.Clock,
	schedule string,
	logger *slog.Logger,
) *LifecycleTickJob {
	if schedule == "" {
		schedule = DefaultTickSchedule
	}
	if clock == nil {
		clock = kernel.SystemClock
	}
	return &LifecycleTickJob{
		handler:  handler,
		clock:    clock,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "lifecycle_tick_job"),
	}
}

// Run performs one sweep and returns the number of transitions applied.
func (j *LifecycleTickJob) Run(ctx context.Context) (int, error) {
	cmd, err := commands.NewAdvanceLifecycleCommand(j.clock())
	if err != nil {
		return 0, err
	}

	transitions, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		return 0, err
	}
	for _, tr := range transitions {
		j.logger.DebugContext(ctx, "parcel advanced",
			"parcel_id", tr.ParcelID,
			"from", tr.From.String(),
			"to", tr.To.String(),
			"event", tr.Description,
		)
	}
	return len(transitions), nil
}

// Start schedules the sweep.
func (j *LifecycleTickJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Lifecycle tick failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Lifecycle tick job started", "schedule", j.schedule)
	return nil
}

// Stop stops the job and waits for a running sweep to finish.
func (j *LifecycleTickJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Lifecycle tick job stopped")
}
