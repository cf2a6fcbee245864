package handler

import (
	"github.com/labstack/echo/v4"

	"rackup/internal/usecase"
	"rackup/pkg/response"
)

type LocationHandler struct {
	locationUseCase *usecase.LocationUseCase
}

func NewLocationHandler(locationUseCase *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{
		locationUseCase: locationUseCase,
	}
}

type importLocationsRequest struct {
	Rows []usecase.LocationRow `json:"rows" validate:"required,min=1"`
}

// ImportLocations loads location rows into the directory.
func (h *LocationHandler) ImportLocations(c echo.Context) error {
	var req importLocationsRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.locationUseCase.Import(c.Request().Context(), req.Rows)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *LocationHandler) ListStates(c echo.Context) error {
	states, err := h.locationUseCase.States(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, states)
}

func (h *LocationHandler) ListCities(c echo.Context) error {
	cities, err := h.locationUseCase.Cities(c.Request().Context(), c.QueryParam("state"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cities)
}

func (h *LocationHandler) SearchLocations(c echo.Context) error {
	result, err := h.locationUseCase.Search(c.Request().Context(), c.QueryParam("term"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}
