package router

import (
	"github.com/labstack/echo/v4"

	"rackup/internal/adapter/api/handler"
)

func SetupStatusRouter(e *echo.Echo, statusHandler *handler.StatusHandler) {
	status := e.Group("/api/status")

	status.POST("", statusHandler.CreateStatusCheck)
	status.GET("", statusHandler.ListStatusChecks)
}
