package repository

import (
	"context"

	"rackup/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Upsert(ctx context.Context, user *entity.User) error
}
