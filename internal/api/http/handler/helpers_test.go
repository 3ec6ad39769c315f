package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/M-Abdullah-Q/e2ee-backend/internal/api/http/context"
)

var contextManager = httpcontext.NewManager()

// newRequest builds a request carrying mux vars and, unless userID is nil,
// an authenticated caller.
func newRequest(method, target, body string, vars map[string]string, userID uuid.UUID) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	if userID != uuid.Nil {
		r = r.WithContext(contextManager.SetUserIDToContext(r.Context(), userID))
	}
	return r
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, rec.Code)
	require.Equal(t, message, decodeBody(t, rec)["error"])
}
