package router

import (
	"github.com/labstack/echo/v4"

	"rackup/internal/adapter/api/handler"
	"rackup/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	conversations := e.Group("/api/conversations")
	conversations.Use(authMiddleware.Authenticate)

	conversations.POST("", chatHandler.CreateConversation)
	conversations.GET("", chatHandler.ListConversations)
	conversations.GET("/:id", chatHandler.GetConversation)
	conversations.POST("/:id/messages", chatHandler.SendMessage)
	conversations.GET("/:id/messages", chatHandler.ListMessages)
}
