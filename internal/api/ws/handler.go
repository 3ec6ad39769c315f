package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/realtime"
)

// Handler upgrades HTTP requests to websocket sessions on the hub.
type Handler struct {
	hub          *realtime.Hub
	upgrader     websocket.Upgrader
	readLimit    int64
	writeTimeout time.Duration
	logger       *logger.Logger
}

// NewHandler creates a websocket handler. A non-positive readLimit leaves
// incoming frame size unbounded.
func NewHandler(hub *realtime.Hub, readLimit int64, writeTimeout time.Duration, logger *logger.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		readLimit:    readLimit,
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// ServeHTTP completes the upgrade, authenticates the connection from the
// token and userId query parameters and then reads frames until the peer
// goes away. Authentication failures are reported as close frames, so the
// upgrade always happens first.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		h.logger.Debug("WS handler: upgrade failed", "error", err.Error())
		return
	}
	if h.readLimit > 0 {
		raw.SetReadLimit(h.readLimit)
	}

	conn := newSocketConn(raw, h.writeTimeout)
	query := r.URL.Query()
	session, err := h.hub.Connect(conn, query.Get("token"), query.Get("userId"))
	if err != nil {
		return
	}

	h.readLoop(raw, session)
}

func (h *Handler) readLoop(raw *websocket.Conn, session *realtime.Session) {
	for {
		messageType, data, err := raw.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				session.Close(nil)
			} else {
				session.Close(err)
			}
			_ = raw.Close()
			return
		}

		switch messageType {
		case websocket.TextMessage:
			session.HandleText(data)
		case websocket.BinaryMessage:
			session.HandleBinary(data)
		}
	}
}
