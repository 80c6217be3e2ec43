package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/tropicaldog17/folio/internal/models"
	"github.com/tropicaldog17/folio/internal/repositories"
)

type snapshotService struct {
	repo repositories.SnapshotRepository
	log  *zap.Logger
}

// NewSnapshotService creates the service that regenerates performance snapshots
func NewSnapshotService(repo repositories.SnapshotRepository, log *zap.Logger) SnapshotService {
	return &snapshotService{repo: repo, log: log.With(zap.String("component", "snapshots"))}
}

// Generate runs generate_performance_snapshots over period for every profile.
// A failing profile is recorded and skipped; it is not retried.
func (s *snapshotService) Generate(ctx context.Context, period models.Period) (*models.SnapshotRun, error) {
	ids, err := s.repo.ListProfileIDs(ctx)
	if err != nil {
		return nil, err
	}

	run := &models.SnapshotRun{Period: period, Failures: []models.SnapshotFailure{}}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		if err := s.repo.Generate(ctx, id, period); err != nil {
			s.log.Error("snapshot generation failed", zap.String("user_id", id), zap.Error(err))
			run.Failures = append(run.Failures, models.SnapshotFailure{UserID: id, Error: err.Error()})
			continue
		}
		run.Succeeded++
	}

	s.log.Info("snapshot generation finished",
		zap.String("start_date", period.Start()),
		zap.String("end_date", period.End()),
		zap.Int("profiles", len(ids)),
		zap.Int("succeeded", run.Succeeded),
		zap.Int("failed", len(run.Failures)))
	return run, nil
}
