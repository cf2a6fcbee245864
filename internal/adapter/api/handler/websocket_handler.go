package handler

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "rackup/internal/infrastructure/websocket"
	"rackup/internal/usecase"
	"rackup/pkg/errors"
	"rackup/pkg/logger"
)

type WebSocketHandler struct {
	registry    *ws.Registry
	chatUseCase *usecase.ChatUseCase
	authUseCase *usecase.AuthUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // You should restrict this in production
	},
}

func NewWebSocketHandler(registry *ws.Registry, chatUseCase *usecase.ChatUseCase, authUseCase *usecase.AuthUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		registry:    registry,
		chatUseCase: chatUseCase,
		authUseCase: authUseCase,
	}
}

// HandleChat runs one streaming session: authenticate, authorize against the
// conversation, attach, then pump frames until the peer goes away. Sessions
// that fail authentication or authorization are closed with a policy
// violation before ever attaching.
func (h *WebSocketHandler) HandleChat(c echo.Context) error {
	token := c.QueryParam("token")
	conversationID := c.QueryParam("conversationId")

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := ws.NewClient(conversationID, "", conn)

	if token == "" || conversationID == "" {
		client.Close(gorillaws.ClosePolicyViolation, "token and conversationId are required")
		return nil
	}

	userID, err := h.authUseCase.Resolve(c.Request().Context(), token)
	if err != nil {
		client.Close(gorillaws.ClosePolicyViolation, "invalid token")
		return nil
	}
	client.UserID = userID

	if _, err := h.chatUseCase.GetConversation(c.Request().Context(), userID, conversationID); err != nil {
		client.Close(gorillaws.ClosePolicyViolation, "not a participant")
		return nil
	}

	h.registry.Attach(conversationID, client)
	logger.Info("websocket: %s attached to %s", userID, conversationID)

	go client.WritePump()
	h.readPump(client)

	return nil
}

// readPump drives the session until the connection drops or the client is
// closed. Detach happens exactly once, on the way out, so a session that was
// dropped mid-broadcast never resurrects itself in the registry.
func (h *WebSocketHandler) readPump(client *ws.Client) {
	defer func() {
		h.registry.Detach(client.ConversationID, client)
		client.Close(gorillaws.CloseNormalClosure, "")
		logger.Info("websocket: %s detached from %s", client.UserID, client.ConversationID)
	}()

	for {
		_, payload, err := client.Conn.ReadMessage()
		if err != nil {
			if gorillaws.IsUnexpectedCloseError(err, gorillaws.CloseNormalClosure, gorillaws.CloseGoingAway) {
				logger.Debug("websocket: read from %s failed: %v", client.UserID, err)
			}
			return
		}

		var frame ws.InboundFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			continue
		}

		switch frame.Type {
		case ws.FrameTypeMessage:
			h.handleMessage(client, frame.Text)
		case ws.FrameTypePing:
			h.deliverToSender(client, ws.NewPongFrame())
		default:
			// Unknown frame types are ignored so older clients keep working.
		}
	}
}

// handleMessage feeds an inbound frame through the same ingestion path REST
// uses. Rejections go back to the sender alone; the conversation's other
// connections never see them.
func (h *WebSocketHandler) handleMessage(client *ws.Client, text string) {
	ctx := context.Background()

	if _, err := h.chatUseCase.SendMessage(ctx, client.UserID, client.ConversationID, text); err != nil {
		code, message := "INTERNAL_ERROR", "Failed to send message"
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			code, message = appErr.Code, appErr.Message
		}
		h.deliverToSender(client, ws.NewErrorFrame(code, message))
	}
}

func (h *WebSocketHandler) deliverToSender(client *ws.Client, frame interface{}) {
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	if err := client.Deliver(payload); err != nil {
		logger.Debug("websocket: direct delivery to %s failed: %v", client.UserID, err)
	}
}
