package websocket

import "rackup/internal/domain/entity"

// Frame types exchanged over the chat stream. Inbound frames with any other
// type are ignored so that newer clients stay compatible with older servers.
const (
	FrameTypeMessage = "msg"
	FrameTypePing    = "ping"
	FrameTypePong    = "pong"
	FrameTypeError   = "error"
)

// InboundFrame is what an attached client sends: {"type":"msg","text":...}
// or {"type":"ping"}.
type InboundFrame struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// MessageFrame carries a persisted message to attached clients.
type MessageFrame struct {
	Type    string          `json:"type"`
	Message *entity.Message `json:"message"`
}

func NewMessageFrame(message *entity.Message) MessageFrame {
	return MessageFrame{Type: FrameTypeMessage, Message: message}
}

// PongFrame acknowledges a liveness probe.
type PongFrame struct {
	Type string `json:"type"`
}

func NewPongFrame() PongFrame {
	return PongFrame{Type: FrameTypePong}
}

// ErrorFrame surfaces a rejected operation to the originating session only.
type ErrorFrame struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewErrorFrame(code, message string) ErrorFrame {
	return ErrorFrame{Type: FrameTypeError, Code: code, Message: message}
}
