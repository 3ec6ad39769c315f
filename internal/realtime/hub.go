package realtime

import (
	"errors"

	"github.com/google/uuid"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
)

// Handshake errors returned by Hub.Connect.
var (
	ErrMissingToken     = errors.New("missing token")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrMissingUserID    = errors.New("missing user id")
	ErrIdentityMismatch = errors.New("token does not belong to user")
)

// TokenVerifier resolves the user a bearer token was issued to.
type TokenVerifier interface {
	ParseAccessToken(token string) (uuid.UUID, error)
}

// Hub owns the shared registries and authenticates new connections.
type Hub struct {
	presence       *Presence
	membership     *Membership
	relay          *Relay
	tokens         TokenVerifier
	logger         *logger.Logger
	strictIdentity bool
}

// Option configures a Hub.
type Option func(*Hub)

// WithStrictIdentity requires the userId query parameter to match the
// user the token was issued to.
func WithStrictIdentity(strict bool) Option {
	return func(h *Hub) {
		h.strictIdentity = strict
	}
}

// NewHub wires the registries, relay and token verifier together.
func NewHub(presence *Presence, membership *Membership, relay *Relay, tokens TokenVerifier, logger *logger.Logger, opts ...Option) *Hub {
	h := &Hub{
		presence:   presence,
		membership: membership,
		relay:      relay,
		tokens:     tokens,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Presence returns the presence registry.
func (h *Hub) Presence() *Presence {
	return h.presence
}

// Membership returns the conversation membership registry.
func (h *Hub) Membership() *Membership {
	return h.membership
}

// Connect runs the open handshake for conn. On failure conn is closed with a
// policy violation and no registry is touched. On success the user is
// registered as online; a connection it supersedes is closed.
func (h *Hub) Connect(conn Conn, token, userID string) (*Session, error) {
	s := newSession(h, conn)

	if token == "" {
		return nil, h.reject(s, CloseReasonUnauthorized, ErrMissingToken)
	}
	tokenUserID, err := h.tokens.ParseAccessToken(token)
	if err != nil {
		h.logger.Debug("Hub: token rejected", "error", err.Error())
		return nil, h.reject(s, CloseReasonInvalidToken, ErrInvalidToken)
	}
	if userID == "" {
		return nil, h.reject(s, CloseReasonMissingUserID, ErrMissingUserID)
	}
	if h.strictIdentity {
		claimed, err := uuid.Parse(userID)
		if err != nil || claimed != tokenUserID {
			return nil, h.reject(s, CloseReasonUnauthorized, ErrIdentityMismatch)
		}
	}

	s.userID = userID
	s.setState(StateAuthenticated)

	if prev, replaced := h.presence.Register(userID, conn); replaced {
		h.logger.Info("Hub: superseding existing connection", "user_id", userID)
		if err := prev.Close(CloseNormalClosure, CloseReasonSuperseded); err != nil {
			h.logger.Debug("Hub: failed to close superseded connection",
				"user_id", userID,
				"error", err.Error())
		}
	}
	s.setState(StateActive)

	h.logger.Info("Hub: connection opened", "user_id", userID)
	return s, nil
}

// Shutdown closes every live connection. Sessions clean up as their read
// loops observe the close.
func (h *Hub) Shutdown() {
	for userID, conn := range h.presence.Snapshot() {
		if err := conn.Close(CloseGoingAway, CloseReasonShutdown); err != nil {
			h.logger.Debug("Hub: failed to close connection on shutdown",
				"user_id", userID,
				"error", err.Error())
		}
	}
}

func (h *Hub) reject(s *Session, reason string, cause error) error {
	s.setState(StateClosed)
	if err := s.conn.Close(ClosePolicyViolation, reason); err != nil {
		h.logger.Debug("Hub: failed to close rejected connection", "error", err.Error())
	}
	h.logger.Info("Hub: connection rejected", "reason", reason)
	return cause
}
