package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/mocks"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/testutil"
)

func TestAttachment_Upload(t *testing.T) {
	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()
	key := owner.String() + "/" + id.String()
	body := bytes.NewReader([]byte("sealed"))

	storage := mocks.NewStorage(t)
	storage.On("Upload", mock.Anything, key, body, int64(6)).Return(nil).Once()
	s := NewAttachment(storage, testutil.MakeNoopLogger())

	require.NoError(t, s.Upload(ctx, owner, id, body, 6))
}

func TestAttachment_UploadFailure(t *testing.T) {
	storage := mocks.NewStorage(t)
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket gone")).Once()
	s := NewAttachment(storage, testutil.MakeNoopLogger())

	err := s.Upload(context.Background(), uuid.New(), uuid.New(), bytes.NewReader(nil), 0)

	assert.ErrorContains(t, err, "failed to upload attachment")
}

func TestAttachment_Download(t *testing.T) {
	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()
	key := owner.String() + "/" + id.String()

	t.Run("found", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, key).Return(true, nil).Once()
		storage.On("Download", mock.Anything, key).Return(io.NopCloser(bytes.NewReader([]byte("sealed"))), nil).Once()
		s := NewAttachment(storage, testutil.MakeNoopLogger())

		rc, err := s.Download(ctx, owner, id)
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "sealed", string(data))
	})

	t.Run("missing", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, key).Return(false, nil).Once()
		s := NewAttachment(storage, testutil.MakeNoopLogger())

		_, err := s.Download(ctx, owner, id)
		requireAPIError(t, err, http.StatusNotFound)
	})
}

func TestAttachment_Disabled(t *testing.T) {
	s := NewAttachment(nil, testutil.MakeNoopLogger())

	err := s.Upload(context.Background(), uuid.New(), uuid.New(), bytes.NewReader(nil), 0)
	requireAPIError(t, err, http.StatusServiceUnavailable)

	_, err = s.Download(context.Background(), uuid.New(), uuid.New())
	requireAPIError(t, err, http.StatusServiceUnavailable)
}

func TestAttachment_Delete(t *testing.T) {
	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()
	key := owner.String() + "/" + id.String()

	t.Run("deletes existing", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, key).Return(true, nil).Once()
		storage.On("Delete", mock.Anything, key).Return(nil).Once()

		require.NoError(t, NewAttachment(storage, testutil.MakeNoopLogger()).Delete(ctx, owner, id))
	})

	t.Run("missing", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, key).Return(false, nil).Once()

		err := NewAttachment(storage, testutil.MakeNoopLogger()).Delete(ctx, owner, id)
		requireAPIError(t, err, http.StatusNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, key).Return(true, nil).Once()
		storage.On("Delete", mock.Anything, key).Return(errors.New("denied")).Once()

		err := NewAttachment(storage, testutil.MakeNoopLogger()).Delete(ctx, owner, id)
		assert.ErrorContains(t, err, "failed to delete attachment")
	})

	t.Run("disabled", func(t *testing.T) {
		err := NewAttachment(nil, testutil.MakeNoopLogger()).Delete(ctx, owner, id)
		requireAPIError(t, err, http.StatusServiceUnavailable)
	})
}
