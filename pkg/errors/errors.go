package errors

import (
	"errors"
	"fmt"
)

// Kind identifies the class of an application error.
type Kind string

const (
	KindInvalidBloodGroup    Kind = "invalid_blood_group"
	KindMissingRequiredField Kind = "missing_required_field"
	KindNotFound             Kind = "not_found"
	KindBackendUnavailable   Kind = "backend_unavailable"
	KindInternal             Kind = "internal"
)

// AppError represents an application error
type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

func InvalidBloodGroup(group string) *AppError {
	return &AppError{
		Kind:    KindInvalidBloodGroup,
		Message: fmt.Sprintf("invalid blood group %q", group),
	}
}

func MissingRequiredField(field string) *AppError {
	return &AppError{
		Kind:    KindMissingRequiredField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// BackendUnavailable wraps a persistence-layer failure. The condition
// is surfaced to the caller unchanged; no retry happens here.
func BackendUnavailable(err error) *AppError {
	return &AppError{
		Kind:    KindBackendUnavailable,
		Message: "backend unavailable",
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: "internal server error",
		Err:     err,
	}
}
