package repository

import (
	"context"

	"rackup/internal/domain/entity"
)

type FavoriteRepository interface {
	Set(ctx context.Context, favorite *entity.Favorite) error
	Remove(ctx context.Context, userID, listingID string) error
	ListByUserID(ctx context.Context, userID string) ([]*entity.Favorite, error)
}
