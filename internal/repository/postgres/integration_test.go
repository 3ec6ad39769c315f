//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
	repo "github.com/M-Abdullah-Q/e2ee-backend/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "e2ee_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/e2ee_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func connect(t *testing.T) *repo.Connection {
	t.Helper()
	conn, err := repo.NewConnection(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func createUser(t *testing.T, users *repo.UserRepository, name string) model.User {
	t.Helper()
	u, err := users.Create(context.Background(), model.User{
		Email:        name + "@example.com",
		Username:     name,
		PasswordHash: []byte("hash"),
		PublicKey:    "pk-" + name,
	})
	require.NoError(t, err)
	return u
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	users := repo.NewUserRepository(connect(t))

	alice := createUser(t, users, "alice_"+uuid.NewString()[:8])
	require.NotEqual(t, uuid.Nil, alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	_, err := users.Create(ctx, model.User{
		Email:        alice.Email,
		Username:     "someone-else",
		PasswordHash: []byte("hash"),
		PublicKey:    "pk",
	})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	byID, err := users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Username, byID.Username)

	byName, err := users.GetByUsername(ctx, alice.Username)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byName.ID)

	byEmail, err := users.GetByLogin(ctx, alice.Email)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byEmail.ID)

	byLogin, err := users.GetByLogin(ctx, alice.Username)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byLogin.ID)

	_, err = users.GetByUsername(ctx, "nobody-"+uuid.NewString())
	assert.ErrorIs(t, err, model.ErrNotFound)

	found, err := users.Search(ctx, alice.Username[:8], 10)
	require.NoError(t, err)
	require.NotEmpty(t, found)
	assert.Equal(t, alice.ID, found[0].ID)

	none, err := users.Search(ctx, "%", 10)
	require.NoError(t, err)
	assert.Empty(t, none)

	rotated, err := users.UpdatePublicKey(ctx, alice.ID, "pk-rotated")
	require.NoError(t, err)
	assert.Equal(t, "pk-rotated", rotated.PublicKey)

	_, err = users.UpdatePublicKey(ctx, uuid.New(), "pk")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestConversationAndMessageRepositories(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	users := repo.NewUserRepository(conn)
	conversations := repo.NewConversationRepository(conn)
	messages := repo.NewMessageRepository(conn)

	a := createUser(t, users, "a_"+uuid.NewString()[:8])
	b := createUser(t, users, "b_"+uuid.NewString()[:8])

	_, err := conversations.GetByParticipants(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	conv, err := conversations.Create(ctx, model.Conversation{User1ID: a.ID, User2ID: b.ID})
	require.NoError(t, err)

	reversed, err := conversations.GetByParticipants(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, reversed.ID)

	_, err = conversations.Create(ctx, model.Conversation{User1ID: a.ID, User2ID: b.ID})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i, text := range []string{"first", "second", "third"} {
		_, err := messages.Create(ctx, model.Message{
			SenderID:       a.ID,
			RecipientID:    b.ID,
			ConversationID: conv.ID,
			Ciphertext:     text,
			Timestamp:      base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	_, err = messages.Create(ctx, model.Message{
		SenderID:       a.ID,
		RecipientID:    b.ID,
		ConversationID: uuid.New(),
		Ciphertext:     "orphan",
	})
	assert.ErrorIs(t, err, model.ErrNotFound)

	unseen, err := messages.GetReceivedAfter(ctx, b.ID, base)
	require.NoError(t, err)
	require.Len(t, unseen, 2)
	assert.Equal(t, "second", unseen[0].Ciphertext)
	assert.Equal(t, "third", unseen[1].Ciphertext)

	sent, err := messages.GetReceivedAfter(ctx, a.ID, base.Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, sent)
}
