package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

// Attachment stores encrypted attachment blobs in object storage.
type Attachment struct {
	storage model.Storage
	logger  *logger.Logger
}

// NewAttachment creates an attachment service. A nil storage disables
// attachments; every call then fails with a 503 error.
func NewAttachment(storage model.Storage, logger *logger.Logger) *Attachment {
	return &Attachment{storage: storage, logger: logger}
}

// Upload stores size bytes from reader as ownerID's attachment.
func (s *Attachment) Upload(ctx context.Context, ownerID, attachmentID uuid.UUID, reader io.Reader, size int64) error {
	if s.storage == nil {
		return model.NewErrAttachmentsDisabled()
	}

	key := attachmentKey(ownerID, attachmentID)
	if err := s.storage.Upload(ctx, key, reader, size); err != nil {
		s.logger.Error("Attachment service: failed to upload",
			"key", key,
			"error", err.Error())
		return fmt.Errorf("failed to upload attachment: %w", err)
	}

	s.logger.Info("Attachment service: uploaded", "key", key, "size", size)
	return nil
}

// Download opens ownerID's attachment. The caller closes the reader.
func (s *Attachment) Download(ctx context.Context, ownerID, attachmentID uuid.UUID) (io.ReadCloser, error) {
	if s.storage == nil {
		return nil, model.NewErrAttachmentsDisabled()
	}

	key := attachmentKey(ownerID, attachmentID)
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		s.logger.Error("Attachment service: failed to stat",
			"key", key,
			"error", err.Error())
		return nil, fmt.Errorf("failed to check attachment: %w", err)
	}
	if !exists {
		return nil, model.NewErrAttachmentNotFound(attachmentID.String())
	}

	reader, err := s.storage.Download(ctx, key)
	if err != nil {
		s.logger.Error("Attachment service: failed to download",
			"key", key,
			"error", err.Error())
		return nil, fmt.Errorf("failed to download attachment: %w", err)
	}

	return reader, nil
}

func attachmentKey(ownerID, attachmentID uuid.UUID) string {
	return ownerID.String() + "/" + attachmentID.String()
}

// Delete removes ownerID's attachment. Deleting an absent attachment is a 404.
func (s *Attachment) Delete(ctx context.Context, ownerID, attachmentID uuid.UUID) error {
	if s.storage == nil {
		return model.NewErrAttachmentsDisabled()
	}

	key := attachmentKey(ownerID, attachmentID)
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check attachment: %w", err)
	}
	if !exists {
		return model.NewErrAttachmentNotFound(attachmentID.String())
	}

	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Error("Attachment service: failed to delete",
			"key", key,
			"error", err.Error())
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	s.logger.Info("Attachment service: deleted", "key", key)
	return nil
}
