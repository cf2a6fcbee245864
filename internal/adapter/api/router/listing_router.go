package router

import (
	"github.com/labstack/echo/v4"

	"rackup/internal/adapter/api/handler"
	"rackup/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, listingHandler *handler.ListingHandler, authMiddleware *middleware.AuthMiddleware) {
	listings := e.Group("/api/listings")

	// Browsing is public; writes require the owner.
	listings.GET("", listingHandler.ListListings)
	listings.GET("/:id", listingHandler.GetListing)

	listings.POST("", listingHandler.CreateListing, authMiddleware.Authenticate)
	listings.PUT("/:id", listingHandler.UpdateListing, authMiddleware.Authenticate)
	listings.DELETE("/:id", listingHandler.DeleteListing, authMiddleware.Authenticate)
	listings.POST("/:id/images", listingHandler.UploadImage, authMiddleware.Authenticate)
}
