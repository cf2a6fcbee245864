package repository

import (
	"context"

	"rackup/internal/domain/entity"
)

type LocationRepository interface {
	// BulkUpsert writes rows idempotently keyed on (state, city, pincode).
	BulkUpsert(ctx context.Context, rows []*entity.Location) (int, error)
	ListAll(ctx context.Context) ([]*entity.Location, error)
}
