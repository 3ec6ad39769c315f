package model

import (
	"fmt"
	"net/http"
)

// APIError is an error that is safe to show to clients.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func NewErrInvalidInput() *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: "Invalid inputs"}
}

func NewErrBadRequest() *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: "Bad Request"}
}

func NewErrWeakPassword(err error) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: err.Error()}
}

func NewErrUserNotFound() *APIError {
	return &APIError{Status: http.StatusNotFound, Message: "User not found"}
}

func NewErrLoginNotFound() *APIError {
	return &APIError{Status: http.StatusNotFound, Message: "User Not found"}
}

func NewErrUserExists() *APIError {
	return &APIError{Status: http.StatusConflict, Message: "User already exists"}
}

func NewErrInvalidCredentials() *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
}

func NewErrUnauthorized() *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: "Unauthorized"}
}

func NewErrMissingAuthorizationToken() *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: "Missing Auth token / Unauthorized"}
}

func NewErrInvalidAuthorizationToken() *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: "Invalid or expired token"}
}

func NewErrForbidden() *APIError {
	return &APIError{Status: http.StatusForbidden, Message: "Forbidden"}
}

func NewErrAttachmentNotFound(id string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: fmt.Sprintf("attachment %s not found", id)}
}

func NewErrAttachmentsDisabled() *APIError {
	return &APIError{Status: http.StatusServiceUnavailable, Message: "Attachments are not configured"}
}

func NewErrAttachmentTooLarge(limit int64) *APIError {
	return &APIError{Status: http.StatusRequestEntityTooLarge, Message: fmt.Sprintf("attachment exceeds %d bytes", limit)}
}
