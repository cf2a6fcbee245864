package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"rackup/internal/domain/entity"
	"rackup/internal/domain/repository"
	"rackup/pkg/errors"
)

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{
		client: client,
	}
}

func favoriteDocID(userID, listingID string) string {
	return userID + "_" + listingID
}

func (r *firestoreFavoriteRepository) Set(ctx context.Context, favorite *entity.Favorite) error {
	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now()
	}

	docID := favoriteDocID(favorite.UserID, favorite.ListingID)
	_, err := r.client.Collection("favorites").Doc(docID).Set(ctx, favorite)
	if err != nil {
		return errors.Internal("Failed to save favorite", err)
	}

	return nil
}

func (r *firestoreFavoriteRepository) Remove(ctx context.Context, userID, listingID string) error {
	_, err := r.client.Collection("favorites").Doc(favoriteDocID(userID, listingID)).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to remove favorite", err)
	}

	return nil
}

func (r *firestoreFavoriteRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	docs, err := r.client.Collection("favorites").Where("userId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch favorites", err)
	}

	var favorites []*entity.Favorite
	for _, doc := range docs {
		var favorite entity.Favorite
		if err := doc.DataTo(&favorite); err != nil {
			continue // skip malformed documents
		}
		favorites = append(favorites, &favorite)
	}

	return favorites, nil
}
