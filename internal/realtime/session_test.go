package realtime

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/mocks"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/testutil"
)

type hubFixture struct {
	hub    *Hub
	queue  *recordingQueue
	tokens *mocks.TokenManager
}

func newHubFixture(t *testing.T, opts ...Option) *hubFixture {
	t.Helper()
	tokens := mocks.NewTokenManager(t)
	queue := &recordingQueue{}
	presence := NewPresence()
	lg := testutil.MakeNoopLogger()
	relay := NewRelay(presence, queue, lg)
	return &hubFixture{
		hub:    NewHub(presence, NewMembership(), relay, tokens, lg, opts...),
		queue:  queue,
		tokens: tokens,
	}
}

func (f *hubFixture) connect(t *testing.T, userID string) (*Session, *fakeConn) {
	t.Helper()
	token := "token-" + userID
	f.tokens.On("ParseAccessToken", token).Return(uuid.New(), nil).Maybe()
	conn := &fakeConn{}
	s, err := f.hub.Connect(conn, token, userID)
	require.NoError(t, err)
	return s, conn
}

func TestHub_ConnectRejections(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		userID     string
		tokenErr   error
		wantErr    error
		wantReason string
	}{
		{
			name:       "missing token",
			token:      "",
			userID:     "u",
			wantErr:    ErrMissingToken,
			wantReason: CloseReasonUnauthorized,
		},
		{
			name:       "invalid token",
			token:      "bad",
			userID:     "u",
			tokenErr:   errors.New("signature is invalid"),
			wantErr:    ErrInvalidToken,
			wantReason: CloseReasonInvalidToken,
		},
		{
			name:       "missing user id",
			token:      "good",
			userID:     "",
			wantErr:    ErrMissingUserID,
			wantReason: CloseReasonMissingUserID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHubFixture(t)
			if tt.token != "" {
				f.tokens.On("ParseAccessToken", tt.token).Return(uuid.New(), tt.tokenErr).Once()
			}
			conn := &fakeConn{}

			s, err := f.hub.Connect(conn, tt.token, tt.userID)

			assert.Nil(t, s)
			assert.ErrorIs(t, err, tt.wantErr)
			closed, code, reason := conn.closeInfo()
			assert.Equal(t, 1, closed)
			assert.Equal(t, ClosePolicyViolation, code)
			assert.Equal(t, tt.wantReason, reason)
			assert.Zero(t, f.hub.Presence().Count())
		})
	}
}

func TestHub_ConnectRegistersPresence(t *testing.T) {
	f := newHubFixture(t)

	s, conn := f.connect(t, "A")

	assert.Equal(t, StateActive, s.State())
	assert.Equal(t, "A", s.UserID())
	got, ok := f.hub.Presence().Lookup("A")
	require.True(t, ok)
	assert.Same(t, conn, got)
}

func TestHub_StrictIdentity(t *testing.T) {
	owner := uuid.New()

	t.Run("mismatch rejected", func(t *testing.T) {
		f := newHubFixture(t, WithStrictIdentity(true))
		f.tokens.On("ParseAccessToken", "tok").Return(owner, nil).Once()
		conn := &fakeConn{}

		_, err := f.hub.Connect(conn, "tok", uuid.NewString())

		assert.ErrorIs(t, err, ErrIdentityMismatch)
		_, code, reason := conn.closeInfo()
		assert.Equal(t, ClosePolicyViolation, code)
		assert.Equal(t, CloseReasonUnauthorized, reason)
	})

	t.Run("match accepted", func(t *testing.T) {
		f := newHubFixture(t, WithStrictIdentity(true))
		f.tokens.On("ParseAccessToken", "tok").Return(owner, nil).Once()

		s, err := f.hub.Connect(&fakeConn{}, "tok", owner.String())

		require.NoError(t, err)
		assert.Equal(t, StateActive, s.State())
	})
}

func TestHub_SupersededConnection(t *testing.T) {
	f := newHubFixture(t)
	f.hub.Membership().Join("c1", "A")
	first, firstConn := f.connect(t, "A")
	second, secondConn := f.connect(t, "A")

	closed, code, reason := firstConn.closeInfo()
	assert.Equal(t, 1, closed)
	assert.Equal(t, CloseNormalClosure, code)
	assert.Equal(t, CloseReasonSuperseded, reason)

	// The superseded session's late cleanup leaves the successor in place.
	first.Close(nil)
	got, ok := f.hub.Presence().Lookup("A")
	require.True(t, ok)
	assert.Same(t, secondConn, got)
	assert.Contains(t, f.hub.Membership().MembersOf("c1"), "A")

	second.Close(nil)
	_, ok = f.hub.Presence().Lookup("A")
	assert.False(t, ok)
	assert.NotContains(t, f.hub.Membership().MembersOf("c1"), "A")
}

func TestSession_Join(t *testing.T) {
	f := newHubFixture(t)
	s, conn := f.connect(t, "A")

	s.HandleText([]byte(`{"type":"join","conversationId":"c1"}`))
	s.HandleText([]byte(`{"type":"join","conversationId":"c1"}`))

	assert.Equal(t, []string{"A"}, f.hub.Membership().MembersOf("c1"))
	assert.Empty(t, conn.sent(), "join is not acknowledged")
}

func TestSession_ErrorFrames(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		want  string
	}{
		{name: "invalid json", frame: `{"type":`, want: ErrTextInvalidJSON},
		{name: "trailing garbage", frame: `{"type":"join"} x`, want: ErrTextInvalidJSON},
		{name: "number", frame: `42`, want: ErrTextUnknownType},
		{name: "array", frame: `[]`, want: ErrTextUnknownType},
		{name: "null", frame: `null`, want: ErrTextUnknownType},
		{name: "unknown type", frame: `{"type":"bogus"}`, want: ErrTextUnknownType},
		{name: "unknown type with mistyped field", frame: `{"type":"bogus","conversationId":5}`, want: ErrTextUnknownType},
		{name: "non-string type", frame: `{"type":5}`, want: ErrTextUnknownType},
		{name: "missing type", frame: `{}`, want: ErrTextUnknownType},
		{name: "join without conversation", frame: `{"type":"join"}`, want: ErrTextMissingFields},
		{name: "join with numeric conversation", frame: `{"type":"join","conversationId":5}`, want: ErrTextMissingFields},
		{name: "message without recipient", frame: `{"type":"message","conversationId":"c1","ciphertext":"x"}`, want: ErrTextMissingFields},
		{name: "message with numeric recipient", frame: `{"type":"message","conversationId":"c1","recipientId":7,"ciphertext":"x"}`, want: ErrTextMissingFields},
		{name: "message without ciphertext", frame: `{"type":"message","conversationId":"c1","recipientId":"B"}`, want: ErrTextMissingFields},
		{name: "message with null ciphertext", frame: `{"type":"message","conversationId":"c1","recipientId":"B","ciphertext":null}`, want: ErrTextMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHubFixture(t)
			s, conn := f.connect(t, "A")

			s.HandleText([]byte(tt.frame))

			frames := conn.sent()
			require.Len(t, frames, 1)
			assert.Equal(t, map[string]string{"error": tt.want}, frames[0])
			assert.Zero(t, f.hub.Membership().Conversations())
			assert.Empty(t, f.queue.all())
			assert.Equal(t, StateActive, s.State())
		})
	}
}

func TestSession_EmptyCiphertextRelayed(t *testing.T) {
	f := newHubFixture(t)
	a, aConn := f.connect(t, "A")
	_, bConn := f.connect(t, "B")

	a.HandleText([]byte(`{"type":"message","conversationId":"c1","recipientId":"B","ciphertext":""}`))

	assert.Empty(t, aConn.sent())
	frames := bConn.sent()
	require.Len(t, frames, 1)
	assert.Equal(t, "", frames[0]["ciphertext"])
	jobs := f.queue.all()
	require.Len(t, jobs, 1)
	assert.Equal(t, "", jobs[0].Ciphertext)
}

func TestSession_BinaryIgnored(t *testing.T) {
	f := newHubFixture(t)
	s, conn := f.connect(t, "A")

	s.HandleBinary([]byte{0x01, 0x02})

	assert.Empty(t, conn.sent())
	assert.Equal(t, StateActive, s.State())
}

func TestSession_MessageToOfflineRecipient(t *testing.T) {
	f := newHubFixture(t)
	s, conn := f.connect(t, "A")

	s.HandleText([]byte(`{"type":"message","conversationId":"c1","recipientId":"B","ciphertext":"xyz"}`))

	assert.Empty(t, conn.sent())
	jobs := f.queue.all()
	require.Len(t, jobs, 1)
	assert.Equal(t, "A", jobs[0].SenderID)
	assert.Equal(t, "B", jobs[0].RecipientID)
}

func TestSession_EndToEnd(t *testing.T) {
	f := newHubFixture(t)
	a, aConn := f.connect(t, "A")
	b, bConn := f.connect(t, "B")

	a.HandleText([]byte(`{"type":"join","conversationId":"c1"}`))
	b.HandleText([]byte(`{"type":"join","conversationId":"c1"}`))
	a.HandleText([]byte(`{"type":"message","conversationId":"c1","recipientId":"B","ciphertext":"xyz"}`))

	assert.Empty(t, aConn.sent(), "sender gets no acknowledgement")
	frames := bConn.sent()
	require.Len(t, frames, 1)
	assert.Equal(t, "message", frames[0]["type"])
	assert.Equal(t, "c1", frames[0]["conversationId"])
	assert.Equal(t, "A", frames[0]["from"])
	assert.Equal(t, "xyz", frames[0]["ciphertext"])
	assert.NotEmpty(t, frames[0]["timestamp"])

	jobs := f.queue.all()
	require.Len(t, jobs, 1)
	assert.Equal(t, "A", jobs[0].SenderID)
	assert.Equal(t, "B", jobs[0].RecipientID)
	assert.Equal(t, "c1", jobs[0].ConversationID)
	assert.Equal(t, "xyz", jobs[0].Ciphertext)
	assert.Equal(t, []string{"A", "B"}, f.hub.Membership().MembersOf("c1"))
}

func TestSession_CloseCleansUpOnce(t *testing.T) {
	f := newHubFixture(t)
	a, _ := f.connect(t, "A")
	f.connect(t, "B")
	a.HandleText([]byte(`{"type":"join","conversationId":"c1"}`))
	a.HandleText([]byte(`{"type":"join","conversationId":"c2"}`))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				a.Close(nil)
				return
			}
			a.Close(errors.New("connection reset"))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, StateClosed, a.State())
	_, ok := f.hub.Presence().Lookup("A")
	assert.False(t, ok)
	assert.Empty(t, f.hub.Membership().MembersOf("c1"))
	assert.Empty(t, f.hub.Membership().MembersOf("c2"))
	_, ok = f.hub.Presence().Lookup("B")
	assert.True(t, ok)
}

func TestSession_IgnoresFramesAfterClose(t *testing.T) {
	f := newHubFixture(t)
	s, conn := f.connect(t, "A")
	s.Close(nil)

	s.HandleText([]byte(`{"type":"join","conversationId":"c1"}`))
	s.HandleText([]byte(`{"type":"bogus"}`))

	assert.Empty(t, conn.sent())
	assert.Zero(t, f.hub.Membership().Conversations())
}

func TestHub_Shutdown(t *testing.T) {
	f := newHubFixture(t)
	_, aConn := f.connect(t, "A")
	_, bConn := f.connect(t, "B")

	f.hub.Shutdown()

	for _, c := range []*fakeConn{aConn, bConn} {
		closed, code, reason := c.closeInfo()
		assert.Equal(t, 1, closed)
		assert.Equal(t, CloseGoingAway, code)
		assert.Equal(t, CloseReasonShutdown, reason)
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "unknown", State(42).String())
}
