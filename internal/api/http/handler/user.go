package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/api/http/response"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

// UserService defines account operations.
type UserService interface {
	Signup(ctx context.Context, params model.SignupParams) (model.Session, error)
	Signin(ctx context.Context, params model.SigninParams) (model.Session, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	Search(ctx context.Context, key string) ([]model.User, error)
}

// User handles the /user endpoints.
type User struct {
	service UserService
	logger  *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(service UserService, logger *logger.Logger) *User {
	return &User{service: service, logger: logger}
}

// Signup registers an account and returns an access token.
func (h *User) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, model.NewErrInvalidInput())
		return
	}

	session, err := h.service.Signup(r.Context(), model.SignupParams{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		PublicKey: req.PublicKey,
	})
	if err != nil {
		h.logger.Info("User handler: signup failed",
			"username", req.Username,
			"error", err.Error())
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, signupResponse{
		Success:  true,
		Email:    session.User.Email,
		Username: session.User.Username,
		Token:    session.Token,
		UserID:   session.User.ID.String(),
		Message:  "User created successfully",
	})
}

// Signin authenticates an account, rotating its public key.
func (h *User) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, model.NewErrInvalidInput())
		return
	}

	session, err := h.service.Signin(r.Context(), model.SigninParams{
		EmailOrUsername: req.EmailOrUsername,
		Password:        req.Password,
		PublicKey:       req.PublicKey,
	})
	if err != nil {
		h.logger.Info("User handler: signin failed",
			"login", req.EmailOrUsername,
			"error", err.Error())
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, signinResponse{
		Success:   true,
		UserID:    session.User.ID.String(),
		Email:     session.User.Email,
		Username:  session.User.Username,
		PublicKey: session.User.PublicKey,
		Token:     session.Token,
	})
}

// GetByUsername returns a public profile.
func (h *User) GetByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, userProfile{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	})
}

// Search finds users by a username or email fragment.
func (h *User) Search(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.Search(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		response.Error(w, err)
		return
	}

	out := searchResponse{Users: make([]userSummary, 0, len(users))}
	for _, u := range users {
		out.Users = append(out.Users, userSummary{ID: u.ID.String(), Username: u.Username})
	}
	response.JSON(w, http.StatusOK, out)
}
