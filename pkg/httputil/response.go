package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arogyacare/blood-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// RespondWithError sends an error response with the HTTP status mapped
// from the application error kind.
func RespondWithError(c *gin.Context, err error) {
	kind := errors.KindInternal
	message := "internal server error"

	if appErr, ok := err.(*errors.AppError); ok {
		kind = appErr.Kind
		message = appErr.Message
	}

	c.JSON(StatusForKind(kind), Response{
		Success: false,
		Error: &Error{
			Kind:    string(kind),
			Message: message,
		},
	})
}

// StatusForKind maps application error kinds to HTTP status codes.
func StatusForKind(kind errors.Kind) int {
	switch kind {
	case errors.KindInvalidBloodGroup, errors.KindMissingRequiredField:
		return http.StatusBadRequest
	case errors.KindNotFound:
		return http.StatusNotFound
	case errors.KindBackendUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
