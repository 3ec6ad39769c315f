package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/api/http/response"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

// KeysService looks up public keys.
type KeysService interface {
	GetPublicKey(ctx context.Context, userID uuid.UUID) (string, error)
}

// Keys handles the /keys endpoints.
type Keys struct {
	service KeysService
}

// NewKeys creates a new Keys handler.
func NewKeys(service KeysService) *Keys {
	return &Keys{service: service}
}

// Get returns the public key of the user in the path.
func (h *Keys) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		response.Error(w, model.NewErrInvalidInput())
		return
	}

	key, err := h.service.GetPublicKey(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, publicKeyResponse{PublicKey: key})
}
