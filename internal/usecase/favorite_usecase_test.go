package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rackup/internal/domain/entity"
	"rackup/pkg/errors"
)

func newFavoriteFixture(t *testing.T) (*FavoriteUseCase, *memListingRepo, *entity.Listing) {
	t.Helper()
	listingRepo := newMemListingRepo()
	listing := &entity.Listing{Title: "Rack", City: "Pune", PricePerMonth: 2000, OwnerID: "owner"}
	require.NoError(t, listingRepo.Create(context.Background(), listing))
	return NewFavoriteUseCase(newMemFavoriteRepo(), listingRepo), listingRepo, listing
}

func TestAddFavoriteIsIdempotent(t *testing.T) {
	uc, _, listing := newFavoriteFixture(t)

	require.NoError(t, uc.AddFavorite(context.Background(), "user-1", listing.ID))
	require.NoError(t, uc.AddFavorite(context.Background(), "user-1", listing.ID))

	favorites, err := uc.ListFavorites(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, favorites, 1)
	assert.Equal(t, listing.ID, favorites[0].ID)
}

func TestAddFavoriteUnknownListing(t *testing.T) {
	uc, _, _ := newFavoriteFixture(t)

	err := uc.AddFavorite(context.Background(), "user-1", "missing")

	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestRemoveFavorite(t *testing.T) {
	uc, _, listing := newFavoriteFixture(t)
	require.NoError(t, uc.AddFavorite(context.Background(), "user-1", listing.ID))

	require.NoError(t, uc.RemoveFavorite(context.Background(), "user-1", listing.ID))
	// Removing again is a no-op.
	require.NoError(t, uc.RemoveFavorite(context.Background(), "user-1", listing.ID))

	favorites, err := uc.ListFavorites(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestListFavoritesSkipsDeletedListings(t *testing.T) {
	uc, listingRepo, listing := newFavoriteFixture(t)
	require.NoError(t, uc.AddFavorite(context.Background(), "user-1", listing.ID))
	require.NoError(t, listingRepo.Delete(context.Background(), listing.ID))

	favorites, err := uc.ListFavorites(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, favorites)
}
