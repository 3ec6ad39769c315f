package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/api/http/response"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

// MaxAttachmentSize bounds a single uploaded blob.
const MaxAttachmentSize int64 = 25 << 20

// AttachmentService stores encrypted blobs.
type AttachmentService interface {
	Upload(ctx context.Context, ownerID, attachmentID uuid.UUID, reader io.Reader, size int64) error
	Download(ctx context.Context, ownerID, attachmentID uuid.UUID) (io.ReadCloser, error)
	Delete(ctx context.Context, ownerID, attachmentID uuid.UUID) error
}

// Attachment handles the /attachments endpoints.
type Attachment struct {
	service        AttachmentService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAttachment creates a new Attachment handler.
func NewAttachment(service AttachmentService, contextManager model.ContextManager, logger *logger.Logger) *Attachment {
	return &Attachment{service: service, contextManager: contextManager, logger: logger}
}

// Upload stores the request body as the caller's attachment.
func (h *Attachment) Upload(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		response.Error(w, model.NewErrUnauthorized())
		return
	}
	attachmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, model.NewErrInvalidInput())
		return
	}
	if r.ContentLength > MaxAttachmentSize {
		response.Error(w, model.NewErrAttachmentTooLarge(MaxAttachmentSize))
		return
	}

	body := http.MaxBytesReader(w, r.Body, MaxAttachmentSize)
	if err := h.service.Upload(r.Context(), ownerID, attachmentID, body, r.ContentLength); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, model.NewErrAttachmentTooLarge(MaxAttachmentSize))
			return
		}
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, attachmentResponse{ID: attachmentID.String()})
}

// Download streams an attachment owned by the user in the path.
func (h *Attachment) Download(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerID, err1 := uuid.Parse(vars["userId"])
	attachmentID, err2 := uuid.Parse(vars["id"])
	if err1 != nil || err2 != nil {
		response.Error(w, model.NewErrInvalidInput())
		return
	}

	reader, err := h.service.Download(r.Context(), ownerID, attachmentID)
	if err != nil {
		response.Error(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("Attachment handler: download interrupted",
			"attachment_id", attachmentID.String(),
			"error", err.Error())
	}
}

// Delete removes one of the caller's attachments.
func (h *Attachment) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		response.Error(w, model.NewErrUnauthorized())
		return
	}
	attachmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, model.NewErrInvalidInput())
		return
	}

	if err := h.service.Delete(r.Context(), ownerID, attachmentID); err != nil {
		response.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
