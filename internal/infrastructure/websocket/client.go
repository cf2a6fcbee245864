package websocket

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"rackup/pkg/logger"
)

const (
	sendBufferSize = 256
	writeWait      = 10 * time.Second
)

var ErrClientClosed = errors.New("client closed")
var errSendBufferFull = errors.New("send buffer full")

// Client is the live handle for one attached streaming session. It exists only
// for the duration of the attachment and is never persisted.
type Client struct {
	ConversationID string
	UserID         string
	Conn           *websocket.Conn
	Send           chan []byte

	done chan struct{}
	once sync.Once
}

func NewClient(conversationID, userID string, conn *websocket.Conn) *Client {
	return &Client{
		ConversationID: conversationID,
		UserID:         userID,
		Conn:           conn,
		Send:           make(chan []byte, sendBufferSize),
		done:           make(chan struct{}),
	}
}

// Deliver enqueues payload for the write pump. It fails when the client is
// closed or its buffer is full; a slow reader must not stall fan-out to the
// rest of the conversation. The closed check runs on its own: in a combined
// select a closed client with buffer space would race the two ready cases and
// intermittently report success for a payload nothing will ever drain.
func (c *Client) Deliver(payload []byte) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	select {
	case c.Send <- payload:
		return nil
	default:
		return errSendBufferFull
	}
}

// Close terminates the session. Safe to call from any goroutine, any number
// of times.
func (c *Client) Close(code int, reason string) {
	c.once.Do(func() {
		close(c.done)
		if c.Conn != nil {
			deadline := time.Now().Add(writeWait)
			c.Conn.SetWriteDeadline(deadline)
			c.Conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
			c.Conn.Close()
		}
	})
}

// Drop closes the session on the server's initiative, e.g. after a failed
// delivery.
func (c *Client) Drop(reason string) {
	c.Close(websocket.CloseGoingAway, reason)
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// WritePump drains the send buffer onto the connection. Run in its own
// goroutine, one per client.
func (c *Client) WritePump() {
	for {
		select {
		case <-c.done:
			return
		case payload := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Debug("websocket: write to %s failed: %v", c.UserID, err)
				c.Close(websocket.CloseAbnormalClosure, "write failed")
				return
			}
		}
	}
}
