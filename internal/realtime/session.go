package realtime

import (
	"encoding/json"
	"sync"
	"sync/atomic"
)

// State is a connection lifecycle state.
type State int32

const (
	StateConnecting State = iota
	StateAuthenticated
	StateActive
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAuthenticated:
		return "authenticated"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is the protocol state of one authenticated connection.
type Session struct {
	hub       *Hub
	conn      Conn
	userID    string
	state     atomic.Int32
	closeOnce sync.Once
}

func newSession(hub *Hub, conn Conn) *Session {
	s := &Session{hub: hub, conn: conn}
	s.setState(StateConnecting)
	return s
}

// UserID returns the user the session was opened for.
func (s *Session) UserID() string {
	return s.userID
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) setState(st State) {
	s.state.Store(int32(st))
}

// HandleText parses and dispatches one text frame.
func (s *Session) HandleText(data []byte) {
	if s.State() != StateActive {
		return
	}

	if !json.Valid(data) {
		s.replyError(ErrTextInvalidJSON)
		return
	}
	frame := decodeInbound(data)

	switch frame.Type {
	case FrameTypeJoin:
		if frame.ConversationID == "" {
			s.replyError(ErrTextMissingFields)
			return
		}
		s.hub.membership.Join(frame.ConversationID, s.userID)
		s.hub.logger.Debug("Session: joined conversation",
			"user_id", s.userID,
			"conversation_id", frame.ConversationID)
	case FrameTypeMessage:
		if frame.ConversationID == "" || frame.RecipientID == "" || !frame.HasCiphertext {
			s.replyError(ErrTextMissingFields)
			return
		}
		s.hub.relay.Relay(s.userID, frame.RecipientID, frame.ConversationID, frame.Ciphertext)
	default:
		s.replyError(ErrTextUnknownType)
	}
}

// HandleBinary ignores binary frames.
func (s *Session) HandleBinary([]byte) {}

// Close releases the session's registry entries. It is safe to call more
// than once and from concurrent close and error paths; only the first call
// has an effect. A session whose connection was superseded leaves the
// successor's entries untouched.
func (s *Session) Close(cause error) {
	s.closeOnce.Do(func() {
		s.setState(StateClosed)
		if s.hub.presence.UnregisterHandle(s.userID, s.conn) {
			s.hub.membership.Leave(s.userID)
		}

		if cause != nil {
			s.hub.logger.Info("Session: connection closed",
				"user_id", s.userID,
				"cause", cause.Error())
			return
		}
		s.hub.logger.Info("Session: connection closed", "user_id", s.userID)
	})
}

func (s *Session) replyError(text string) {
	if err := s.conn.Send(ErrorFrame{Error: text}); err != nil {
		s.hub.logger.Warn("Session: failed to send error frame",
			"user_id", s.userID,
			"error", err.Error())
	}
}
