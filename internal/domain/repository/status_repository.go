package repository

import (
	"context"

	"rackup/internal/domain/entity"
)

type StatusCheckRepository interface {
	Create(ctx context.Context, check *entity.StatusCheck) error
	List(ctx context.Context, limit int) ([]*entity.StatusCheck, error)
}
