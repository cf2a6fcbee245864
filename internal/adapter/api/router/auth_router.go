package router

import (
	"github.com/labstack/echo/v4"

	"rackup/internal/adapter/api/handler"
	"rackup/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware) {
	auth := e.Group("/api/auth")

	auth.POST("/exchange", authHandler.Exchange)
	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate)
}
