package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	passwordvalidator "github.com/wagslane/go-password-validator"
	"golang.org/x/crypto/bcrypt"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

const (
	// PasswordMinEntropyBits is the minimum password strength accepted on signup.
	PasswordMinEntropyBits = 50
	// PasswordHashCost is the bcrypt cost used for stored password hashes.
	PasswordHashCost = 10
	// SearchLimit caps the number of users returned by Search.
	SearchLimit = 20
)

// User implements account registration, login and lookup.
type User struct {
	store    model.UserStore
	tokens   model.TokenManager
	keyCache model.KeyCache
	logger   *logger.Logger
}

// NewUser creates a user service. keyCache may be nil.
func NewUser(store model.UserStore, tokens model.TokenManager, keyCache model.KeyCache, logger *logger.Logger) *User {
	return &User{
		store:    store,
		tokens:   tokens,
		keyCache: keyCache,
		logger:   logger,
	}
}

// Signup registers a new account and returns it with a fresh access token.
func (s *User) Signup(ctx context.Context, params model.SignupParams) (model.Session, error) {
	params.Email = strings.TrimSpace(params.Email)
	params.Username = strings.TrimSpace(params.Username)

	s.logger.Debug("User service: signing up user",
		"email", params.Email,
		"username", params.Username)

	if params.Email == "" || params.Username == "" || params.Password == "" || params.PublicKey == "" {
		return model.Session{}, model.NewErrInvalidInput()
	}
	if _, err := mail.ParseAddress(params.Email); err != nil {
		return model.Session{}, model.NewErrInvalidInput()
	}
	if err := passwordvalidator.Validate(params.Password, PasswordMinEntropyBits); err != nil {
		return model.Session{}, model.NewErrWeakPassword(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), PasswordHashCost)
	if err != nil {
		s.logger.Error("User service: failed to hash password",
			"username", params.Username,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.Create(ctx, model.User{
		Email:        params.Email,
		Username:     params.Username,
		PasswordHash: hash,
		PublicKey:    params.PublicKey,
	})
	if err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			s.logger.Info("User service: user already exists",
				"email", params.Email,
				"username", params.Username)
			return model.Session{}, model.NewErrUserExists()
		}
		s.logger.Error("User service: failed to create user",
			"username", params.Username,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		s.logger.Error("User service: failed to generate access token",
			"user_id", user.ID.String(),
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logger.Info("User service: user signed up", "user_id", user.ID.String())

	return model.Session{User: user, Token: token}, nil
}

// Signin checks credentials, rotates the stored public key to the one the
// client presents and returns a fresh access token.
func (s *User) Signin(ctx context.Context, params model.SigninParams) (model.Session, error) {
	login := strings.TrimSpace(params.EmailOrUsername)

	s.logger.Debug("User service: signing in user", "login", login)

	if login == "" || params.Password == "" || params.PublicKey == "" {
		return model.Session{}, model.NewErrInvalidInput()
	}

	user, err := s.store.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Session{}, model.NewErrLoginNotFound()
		}
		s.logger.Error("User service: failed to get user by login",
			"login", login,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get user by login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(params.Password)); err != nil {
		s.logger.Info("User service: invalid credentials", "user_id", user.ID.String())
		return model.Session{}, model.NewErrInvalidCredentials()
	}

	if user.PublicKey != params.PublicKey {
		updated, err := s.store.UpdatePublicKey(ctx, user.ID, params.PublicKey)
		if err != nil {
			s.logger.Error("User service: failed to update public key",
				"user_id", user.ID.String(),
				"error", err.Error())
			return model.Session{}, fmt.Errorf("failed to update public key: %w", err)
		}
		user = updated
		s.invalidateKey(ctx, user)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		s.logger.Error("User service: failed to generate access token",
			"user_id", user.ID.String(),
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logger.Info("User service: user signed in", "user_id", user.ID.String())

	return model.Session{User: user, Token: token}, nil
}

// GetByUsername returns the public profile of a user.
func (s *User) GetByUsername(ctx context.Context, username string) (model.User, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.NewErrUserNotFound()
		}
		s.logger.Error("User service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// Search returns users whose username or email contains key.
func (s *User) Search(ctx context.Context, key string) ([]model.User, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, model.NewErrInvalidInput()
	}

	users, err := s.store.Search(ctx, key, SearchLimit)
	if err != nil {
		s.logger.Error("User service: failed to search users",
			"key", key,
			"error", err.Error())
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return users, nil
}

func (s *User) invalidateKey(ctx context.Context, user model.User) {
	if s.keyCache == nil {
		return
	}
	if err := s.keyCache.Delete(ctx, user.ID); err != nil {
		s.logger.Warn("User service: failed to invalidate cached public key",
			"user_id", user.ID.String(),
			"error", err.Error())
	}
}
