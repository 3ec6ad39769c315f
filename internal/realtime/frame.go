package realtime

import (
	"encoding/json"
	"time"
)

// Frame types.
const (
	FrameTypeJoin    = "join"
	FrameTypeMessage = "message"
)

// Error frame texts.
const (
	ErrTextInvalidJSON   = "Invalid JSON"
	ErrTextUnknownType   = "Unknown message type"
	ErrTextMissingFields = "Missing required fields"
)

// timestampLayout is ISO-8601 UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// InboundFrame is a client-to-server frame.
type InboundFrame struct {
	Type           string
	ConversationID string
	RecipientID    string
	Ciphertext     string
	// HasCiphertext is set when the ciphertext key carried a string, which
	// may be empty.
	HasCiphertext bool
}

// decodeInbound reads a syntactically valid JSON document into a frame.
// Anything other than an object yields a frame without a type. Fields whose
// value is not a string are treated as absent.
func decodeInbound(data []byte) InboundFrame {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return InboundFrame{}
	}

	var frame InboundFrame
	frame.Type, _ = stringField(fields, "type")
	frame.ConversationID, _ = stringField(fields, "conversationId")
	frame.RecipientID, _ = stringField(fields, "recipientId")
	frame.Ciphertext, frame.HasCiphertext = stringField(fields, "ciphertext")
	return frame
}

func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	var v *string
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return "", false
	}
	return *v, true
}

// DeliveryFrame is a live message pushed to a recipient.
type DeliveryFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversationId"`
	From           string `json:"from"`
	Ciphertext     string `json:"ciphertext"`
	Timestamp      string `json:"timestamp"`
}

// ErrorFrame reports a malformed or unknown frame back to its sender.
type ErrorFrame struct {
	Error string `json:"error"`
}

// FormatTimestamp renders t as ISO-8601 UTC with milliseconds.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
