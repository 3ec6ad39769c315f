package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/api/http/response"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

const bearerPrefix = "Bearer "

// TokenParser resolves the user id a bearer token was issued to.
type TokenParser interface {
	ParseAccessToken(token string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens and injects the user id into the
// request context.
type Authenticate struct {
	tokens         TokenParser
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens TokenParser, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid bearer token.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			response.Error(w, model.NewErrUnauthorized())
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			response.Error(w, model.NewErrMissingAuthorizationToken())
			return
		}

		userID, err := m.tokens.ParseAccessToken(token)
		if err != nil || userID == uuid.Nil {
			if err != nil {
				m.logger.Debug("Authenticate: token rejected",
					"path", r.URL.Path,
					"error", err.Error())
			}
			response.Error(w, model.NewErrInvalidAuthorizationToken())
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetUserIDToContext(r.Context(), userID)))
	})
}
