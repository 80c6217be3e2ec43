package repositories

import (
	"context"

	"github.com/tropicaldog17/folio/internal/models"
)

type snapshotRepository struct {
	client *QueryClient
}

func NewSnapshotRepository(client *QueryClient) SnapshotRepository {
	return &snapshotRepository{client: client}
}

func (r *snapshotRepository) ListProfileIDs(ctx context.Context) ([]string, error) {
	tx, err := r.client.From(ctx, models.Profile{}.TableName())
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := Done("profiles", tx.Order("id").Pluck("id", &ids)); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *snapshotRepository) Generate(ctx context.Context, userID string, period models.Period) error {
	return r.client.CallExec(ctx, "generate_performance_snapshots", periodParams(userID, period))
}
