package handler

import (
	"github.com/labstack/echo/v4"

	"rackup/internal/usecase"
	"rackup/pkg/response"
)

type FavoriteHandler struct {
	favoriteUseCase *usecase.FavoriteUseCase
}

func NewFavoriteHandler(favoriteUseCase *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUseCase: favoriteUseCase,
	}
}

func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	userID := c.Get("uid").(string)
	listingID := c.Param("listingId")

	if err := h.favoriteUseCase.AddFavorite(c.Request().Context(), userID, listingID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"listingId": listingID})
}

func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
	userID := c.Get("uid").(string)
	listingID := c.Param("listingId")

	if err := h.favoriteUseCase.RemoveFavorite(c.Request().Context(), userID, listingID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"listingId": listingID})
}

func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	userID := c.Get("uid").(string)

	listings, err := h.favoriteUseCase.ListFavorites(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}
