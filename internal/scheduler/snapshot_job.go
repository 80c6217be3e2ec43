package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/tropicaldog17/folio/internal/models"
	"github.com/tropicaldog17/folio/internal/services"
)

// SnapshotJob records today's portfolio snapshot for every profile.
type SnapshotJob struct {
	snapshots services.SnapshotService
	now       func() time.Time
}

func NewSnapshotJob(snapshots services.SnapshotService, now func() time.Time) *SnapshotJob {
	if now == nil {
		now = time.Now
	}
	return &SnapshotJob{snapshots: snapshots, now: now}
}

func (j *SnapshotJob) Name() string { return "daily_snapshots" }

// Run fails when any profile could not be snapshotted, so the run shows up
// as failed in the scheduler log.
func (j *SnapshotJob) Run(ctx context.Context) error {
	today := j.now()
	period, err := models.ParsePeriod(today.Format(models.DateLayout), today.Format(models.DateLayout))
	if err != nil {
		return err
	}

	run, err := j.snapshots.Generate(ctx, period)
	if err != nil {
		return err
	}
	if n := len(run.Failures); n > 0 {
		return fmt.Errorf("%d of %d profiles failed", n, n+run.Succeeded)
	}
	return nil
}
