package router

import (
	"github.com/labstack/echo/v4"

	"rackup/internal/adapter/api/handler"
	"rackup/internal/adapter/api/middleware"
)

func SetupLocationRouter(e *echo.Echo, locationHandler *handler.LocationHandler, authMiddleware *middleware.AuthMiddleware) {
	locations := e.Group("/api/locations")

	locations.GET("/states", locationHandler.ListStates)
	locations.GET("/cities", locationHandler.ListCities)
	locations.GET("/search", locationHandler.SearchLocations)

	e.POST("/api/admin/locations/import", locationHandler.ImportLocations, authMiddleware.Authenticate)
}
