package http

import (
	"errors"
	"net/http"

	"github.com/integra-admin/integra/internal/users/service"
	"github.com/integra-admin/integra/internal/users/store"
	"github.com/integra-admin/integra/pkg/slogx"
	"github.com/integra-admin/integra/pkg/usersdk"
)

var (
	errDuplicate = &usersdk.APIError{
		StatusCode: http.StatusBadRequest,
		Code:       usersdk.CodeDuplicate,
		Message:    "Username is already taken.",
	}

	errAccountNotFound = &usersdk.APIError{
		StatusCode: http.StatusNotFound,
		Code:       usersdk.CodeNotFound,
		Message:    "Account not found.",
	}
)

// writeError translates service errors into responses. Unexpected errors are
// logged with full detail and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		usersdk.NewValidationError(verr.Fields).WriteError(w)
	case errors.Is(err, service.ErrDuplicateAccount):
		errDuplicate.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		usersdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrAccountNotFound):
		errAccountNotFound.WriteError(w)
	case errors.Is(err, store.ErrUnavailable):
		log.Warn("store unavailable", "error", err)
		usersdk.ErrUnavailable.WriteError(w)
	default:
		log.Error("request failed", "error", err)
		usersdk.ErrInternal.WriteError(w)
	}
}

func writeBadBody(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Debug("bad request body", "error", err)
	usersdk.NewValidationError(map[string]string{"body": "must be a valid JSON object"}).WriteError(w)
}
