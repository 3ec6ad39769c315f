package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

func TestNewRepositories(t *testing.T) {
	db := &Connection{}

	assert.Equal(t, db, NewUserRepository(db).db)
	assert.Equal(t, db, NewConversationRepository(db).db)
	assert.Equal(t, db, NewMessageRepository(db).db)
}

func TestConnection_PingWithoutPool(t *testing.T) {
	conn := &Connection{}

	assert.Error(t, conn.Ping(t.Context()))
	assert.NoError(t, conn.Close())
}

func TestTranslateError(t *testing.T) {
	plain := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: uniqueViolation}, want: model.ErrAlreadyExists},
		{name: "wrapped unique violation", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolation}), want: model.ErrAlreadyExists},
		{name: "foreign key violation", err: &pgconn.PgError{Code: foreignKeyViolation}, want: model.ErrNotFound},
		{name: "other pg error", err: &pgconn.PgError{Code: "42P01"}},
		{name: "non pg error", err: plain, want: plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)
			if tt.want == nil {
				assert.Same(t, tt.err, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "alice", escapeLike("alice"))
	assert.Equal(t, `50\%`, escapeLike("50%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
}
