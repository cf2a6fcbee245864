package usecase

import (
	"context"
	"io"

	"rackup/internal/domain/entity"
	"rackup/internal/domain/repository"
	"rackup/pkg/errors"
)

const maxListingPage = 100

// ImageUploader stores an uploaded image and returns its public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, r io.Reader, contentType string) (string, error)
}

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	uploader    ImageUploader
}

func NewListingUseCase(listingRepo repository.ListingRepository, uploader ImageUploader) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		uploader:    uploader,
	}
}

type ListingInput struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description"`
	Category        string   `json:"category" validate:"required"`
	Images          []string `json:"images"`
	Locality        string   `json:"locality"`
	City            string   `json:"city" validate:"required"`
	Footfall        int      `json:"footfall" validate:"min=0"`
	ExpectedRevenue float64  `json:"expectedRevenue" validate:"min=0"`
	PricePerMonth   float64  `json:"pricePerMonth" validate:"required,min=0"`
	Size            string   `json:"size"`
	Plus            bool     `json:"plus"`
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, ownerID string, input ListingInput) (*entity.Listing, error) {
	listing := &entity.Listing{
		Title:           input.Title,
		Description:     input.Description,
		Category:        input.Category,
		Images:          input.Images,
		Locality:        input.Locality,
		City:            input.City,
		Footfall:        input.Footfall,
		ExpectedRevenue: input.ExpectedRevenue,
		PricePerMonth:   input.PricePerMonth,
		Size:            input.Size,
		Plus:            input.Plus,
		OwnerID:         ownerID,
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) GetListing(ctx context.Context, id string) (*entity.Listing, error) {
	return uc.listingRepo.GetByID(ctx, id)
}

func (uc *ListingUseCase) ListListings(ctx context.Context, limit int) ([]*entity.Listing, error) {
	if limit <= 0 || limit > maxListingPage {
		limit = maxListingPage
	}
	return uc.listingRepo.List(ctx, limit)
}

func (uc *ListingUseCase) UpdateListing(ctx context.Context, ownerID, id string, input ListingInput) (*entity.Listing, error) {
	listing, err := uc.authorizeOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	listing.Title = input.Title
	listing.Description = input.Description
	listing.Category = input.Category
	listing.Images = input.Images
	listing.Locality = input.Locality
	listing.City = input.City
	listing.Footfall = input.Footfall
	listing.ExpectedRevenue = input.ExpectedRevenue
	listing.PricePerMonth = input.PricePerMonth
	listing.Size = input.Size
	listing.Plus = input.Plus

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) DeleteListing(ctx context.Context, ownerID, id string) error {
	if _, err := uc.authorizeOwner(ctx, ownerID, id); err != nil {
		return err
	}
	return uc.listingRepo.Delete(ctx, id)
}

// AttachImage uploads one image and appends its URL to the listing.
func (uc *ListingUseCase) AttachImage(ctx context.Context, ownerID, id string, r io.Reader, contentType string) (*entity.Listing, error) {
	listing, err := uc.authorizeOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	url, err := uc.uploader.UploadImage(ctx, r, contentType)
	if err != nil {
		return nil, err
	}

	listing.Images = append(listing.Images, url)
	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) authorizeOwner(ctx context.Context, ownerID, id string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if listing.OwnerID != ownerID {
		return nil, errors.Forbidden("You do not own this listing", nil)
	}

	return listing, nil
}
