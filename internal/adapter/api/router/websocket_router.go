package router

import (
	"github.com/labstack/echo/v4"

	"rackup/internal/adapter/api/handler"
)

// SetupWebSocketRouter registers the streaming chat endpoint. Authentication
// happens inside the handler from the token query parameter, because browser
// WebSocket clients cannot set an Authorization header.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/api/ws/chat", wsHandler.HandleChat)
}
