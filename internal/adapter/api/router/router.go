package router

import (
	"github.com/labstack/echo/v4"

	"rackup/internal/adapter/api/handler"
	"rackup/internal/adapter/api/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Chat      *handler.ChatHandler
	WebSocket *handler.WebSocketHandler
	Listing   *handler.ListingHandler
	Favorite  *handler.FavoriteHandler
	Location  *handler.LocationHandler
	Status    *handler.StatusHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	SetupAuthRouter(e, h.Auth, authMiddleware)
	SetupChatRouter(e, h.Chat, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket)
	SetupListingRouter(e, h.Listing, authMiddleware)
	SetupFavoriteRouter(e, h.Favorite, authMiddleware)
	SetupLocationRouter(e, h.Location, authMiddleware)
	SetupStatusRouter(e, h.Status)
	SetupHealthRouter(e)
}
