package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, email, username, password_hash, public_key, created_at, updated_at`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	query := `INSERT INTO users (id, email, username, password_hash, public_key)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash, user.PublicKey,
	))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", translateError(err))
	}

	return saved, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// GetByLogin finds a user whose email or username equals emailOrUsername.
func (r *UserRepository) GetByLogin(ctx context.Context, emailOrUsername string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
			  WHERE email = $1 OR username = $1
			  ORDER BY (email = $1) DESC
			  LIMIT 1`

	user, err := scanUser(r.db.QueryRow(ctx, query, emailOrUsername))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by login: %w", err)
	}

	return user, nil
}

// Search returns up to limit users whose username or email contains key,
// ignoring case.
func (r *UserRepository) Search(ctx context.Context, key string, limit int) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
			  WHERE username ILIKE $1 OR email ILIKE $1
			  ORDER BY username
			  LIMIT $2`

	rows, err := r.db.Query(ctx, query, "%"+escapeLike(key)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) UpdatePublicKey(ctx context.Context, id uuid.UUID, publicKey string) (model.User, error) {
	query := `UPDATE users SET public_key = $2, updated_at = now()
			  WHERE id = $1
			  RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, id, publicKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to update public key: %w", err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.PublicKey,
		&user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE wildcards so that key matches literally.
func escapeLike(key string) string {
	return likeEscaper.Replace(key)
}
