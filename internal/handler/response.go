package handler

import (
	"net/http"

	apperrors "github.com/tabibi/patient-api/pkg/errors"
)

// Response is the standard API response envelope
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string) Response {
	return Response{
		Success: false,
		Error:   message,
	}
}

// StatusForError maps a service error to an HTTP status and client message.
func StatusForError(err error) (int, string) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return StatusForCode(appErr.Code), appErr.Message
	}
	return http.StatusInternalServerError, "internal server error"
}

// StatusForCode maps application error codes to HTTP status codes.
func StatusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrBadRequest:
		return http.StatusBadRequest
	case apperrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrForbidden:
		return http.StatusForbidden
	case apperrors.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
