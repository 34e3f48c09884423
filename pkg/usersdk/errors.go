package usersdk

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/integra-admin/integra/pkg/httpx"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeValidation   = "validation_failed"
	CodeDuplicate    = "duplicate_account"
	CodeNotFound     = "not_found"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeUnavailable  = "unavailable"
	CodeInternal     = "internal_error"
)

// MessageInvalidCredentials is the single message for every failed login.
const MessageInvalidCredentials = "Username or password is incorrect."

// APIError is a non-2xx response. The server writes it and the client
// decodes it back.
type APIError struct {
	StatusCode int               `json:"-"`
	Message    string            `json:"message"`
	Code       string            `json:"code,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// WriteError writes e as the JSON error body.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
		Details: e.Details,
	})
}

var (
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    MessageInvalidCredentials,
	}

	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeUnauthorized,
		Message:    "Unauthorized.",
	}

	ErrForbidden = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       CodeForbidden,
		Message:    "Forbidden.",
	}

	ErrUnavailable = &APIError{
		StatusCode: http.StatusServiceUnavailable,
		Code:       CodeUnavailable,
		Message:    "The service is temporarily unavailable, please retry.",
	}

	ErrInternal = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternal,
		Message:    "An unexpected error occurred.",
	}
)

// NewValidationError builds a 400 with per-field details.
func NewValidationError(details map[string]string) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       CodeValidation,
		Message:    "One or more fields are invalid.",
		Details:    details,
	}
}

// StatusCode returns the HTTP status of an *APIError in err's chain, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
