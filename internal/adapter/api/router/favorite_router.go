package router

import (
	"github.com/labstack/echo/v4"

	"rackup/internal/adapter/api/handler"
	"rackup/internal/adapter/api/middleware"
)

func SetupFavoriteRouter(e *echo.Echo, favoriteHandler *handler.FavoriteHandler, authMiddleware *middleware.AuthMiddleware) {
	favorites := e.Group("/api/favorites")
	favorites.Use(authMiddleware.Authenticate)

	favorites.GET("", favoriteHandler.ListFavorites)
	favorites.PUT("/:listingId", favoriteHandler.AddFavorite)
	favorites.DELETE("/:listingId", favoriteHandler.RemoveFavorite)
}
