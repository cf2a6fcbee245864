package usecase

import (
	"context"

	"rackup/internal/domain/entity"
	"rackup/internal/domain/repository"
	"rackup/pkg/errors"
	"rackup/pkg/logger"
)

type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	listingRepo  repository.ListingRepository
}

func NewFavoriteUseCase(favoriteRepo repository.FavoriteRepository, listingRepo repository.ListingRepository) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		listingRepo:  listingRepo,
	}
}

// AddFavorite marks a listing as saved by the user. Saving twice is a no-op.
func (uc *FavoriteUseCase) AddFavorite(ctx context.Context, userID, listingID string) error {
	if _, err := uc.listingRepo.GetByID(ctx, listingID); err != nil {
		return err
	}
	return uc.favoriteRepo.Set(ctx, &entity.Favorite{UserID: userID, ListingID: listingID})
}

func (uc *FavoriteUseCase) RemoveFavorite(ctx context.Context, userID, listingID string) error {
	return uc.favoriteRepo.Remove(ctx, userID, listingID)
}

// ListFavorites resolves the user's saved listings. Listings deleted since
// they were saved are silently skipped.
func (uc *FavoriteUseCase) ListFavorites(ctx context.Context, userID string) ([]*entity.Listing, error) {
	favorites, err := uc.favoriteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	listings := make([]*entity.Listing, 0, len(favorites))
	for _, favorite := range favorites {
		listing, err := uc.listingRepo.GetByID(ctx, favorite.ListingID)
		if err != nil {
			if errors.Is(err, "NOT_FOUND") {
				logger.Debug("favorites: skipping deleted listing %s", favorite.ListingID)
				continue
			}
			return nil, err
		}
		listings = append(listings, listing)
	}

	return listings, nil
}
