package realtime

// Close codes (RFC 6455) used by the connection lifecycle.
const (
	CloseNormalClosure   = 1000
	CloseGoingAway       = 1001
	ClosePolicyViolation = 1008
)

// Close reasons sent with ClosePolicyViolation during the handshake.
const (
	CloseReasonUnauthorized  = "Unsuccessful Authorization"
	CloseReasonInvalidToken  = "Invalid or Expired Token"
	CloseReasonMissingUserID = "Missing userId"
	CloseReasonSuperseded    = "Superseded by a new connection"
	CloseReasonShutdown      = "Server shutting down"
)

// Conn is a handle to one live client connection.
// Implementations must be safe for concurrent use: the owning session and
// any sender relaying to this user may write at the same time.
type Conn interface {
	Send(frame any) error
	Close(code int, reason string) error
}
