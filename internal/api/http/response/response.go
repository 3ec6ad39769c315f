package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes body as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Error writes err as a JSON error. Errors that are not *model.APIError are
// reported as a generic 500 so internal details never reach clients.
func Error(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		JSON(w, apiErr.Status, ErrorBody{Error: apiErr.Message})
		return
	}
	JSON(w, http.StatusInternalServerError, ErrorBody{Error: "Internal server error"})
}
