package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/realtime"
)

var _ realtime.Conn = (*socketConn)(nil)

// socketConn adapts a gorilla websocket connection to realtime.Conn.
// Writes from the relay, the hub and the session's own replies are
// serialized by mu because gorilla allows one concurrent writer.
type socketConn struct {
	conn         *websocket.Conn
	writeTimeout time.Duration

	mu     sync.Mutex
	closed bool
}

func newSocketConn(conn *websocket.Conn, writeTimeout time.Duration) *socketConn {
	return &socketConn{conn: conn, writeTimeout: writeTimeout}
}

// Send writes frame as a JSON text message.
func (c *socketConn) Send(frame any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return websocket.ErrCloseSent
	}
	if err := c.conn.SetWriteDeadline(c.deadline()); err != nil {
		return err
	}
	return c.conn.WriteJSON(frame)
}

// Close sends a close frame with code and reason, then drops the connection.
// Only the first call writes anything.
func (c *socketConn) Close(code int, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	msg := websocket.FormatCloseMessage(code, reason)
	writeErr := c.conn.WriteControl(websocket.CloseMessage, msg, c.deadline())
	closeErr := c.conn.Close()
	if writeErr != nil && writeErr != websocket.ErrCloseSent {
		return writeErr
	}
	return closeErr
}

func (c *socketConn) deadline() time.Time {
	if c.writeTimeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(c.writeTimeout)
}
