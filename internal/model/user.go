package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByLogin(ctx context.Context, emailOrUsername string) (User, error)
	Search(ctx context.Context, key string, limit int) ([]User, error)
	UpdatePublicKey(ctx context.Context, id uuid.UUID, publicKey string) (User, error)
}

// User represents a registered account. PublicKey is the client's current
// identity key, opaque to the server.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash []byte
	PublicKey    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SignupParams contains parameters to register a user.
type SignupParams struct {
	Email     string
	Username  string
	Password  string
	PublicKey string
}

// SigninParams contains parameters to authenticate a user.
type SigninParams struct {
	EmailOrUsername string
	Password        string
	PublicKey       string
}

// Session is the result of a successful signup or signin.
type Session struct {
	User  User
	Token string
}
