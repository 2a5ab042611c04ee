package helpers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// AppError carries the HTTP status and the message shown to the client. The
// wrapped Err is only logged.
type AppError struct {
	Status  int
	Message string
	Details map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Status: http.StatusConflict, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: message}
}

func NewTooManyRequestsError(message string) *AppError {
	return &AppError{Status: http.StatusTooManyRequests, Message: message}
}

// FromValidation turns validator errors into a 400 with per-field details.
func FromValidation(err error) *AppError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return &AppError{
			Status:  http.StatusBadRequest,
			Message: "Data yang dikirim tidak valid.",
			Details: FormatValidationErrors(validationErrors),
		}
	}
	return &AppError{Status: http.StatusBadRequest, Message: "Data yang dikirim tidak valid.", Err: err}
}

func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
