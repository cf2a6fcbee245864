package usecase

import (
	"context"

	"rackup/internal/domain/entity"
	"rackup/internal/domain/repository"
)

const maxStatusChecks = 1000

type StatusUseCase struct {
	statusRepo repository.StatusCheckRepository
}

func NewStatusUseCase(statusRepo repository.StatusCheckRepository) *StatusUseCase {
	return &StatusUseCase{statusRepo: statusRepo}
}

func (uc *StatusUseCase) CreateStatusCheck(ctx context.Context, clientName string) (*entity.StatusCheck, error) {
	check := &entity.StatusCheck{ClientName: clientName}
	if err := uc.statusRepo.Create(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

func (uc *StatusUseCase) ListStatusChecks(ctx context.Context) ([]*entity.StatusCheck, error) {
	return uc.statusRepo.List(ctx, maxStatusChecks)
}
