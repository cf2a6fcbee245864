package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"rackup/internal/usecase"
	"rackup/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type createConversationRequest struct {
	ListingID string `json:"listingId" validate:"required"`
	// Accepted for wire compatibility; the owner is always resolved from the
	// listing itself.
	OwnerID string `json:"ownerId"`
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// CreateConversation opens (or returns) the caller's conversation about a
// listing.
func (h *ChatHandler) CreateConversation(c echo.Context) error {
	var req createConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	conversation, err := h.chatUseCase.CreateConversation(c.Request().Context(), userID, usecase.CreateConversationInput{
		ListingID: req.ListingID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, conversation)
}

// ListConversations returns the caller's conversations, most recent activity
// first.
func (h *ChatHandler) ListConversations(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversations, err := h.chatUseCase.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

func (h *ChatHandler) GetConversation(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversation, err := h.chatUseCase.GetConversation(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversation)
}

// SendMessage persists a message over REST and fans it out to any attached
// streaming sessions.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), userID, c.Param("id"), req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

// ListMessages returns a conversation's messages, oldest first.
func (h *ChatHandler) ListMessages(c echo.Context) error {
	userID := c.Get("uid").(string)

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	messages, err := h.chatUseCase.ListMessages(c.Request().Context(), userID, c.Param("id"), limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}
