package http

import (
	"errors"
	"net/http"

	"github.com/zerohunger/backend/internal/backend/service"
	"github.com/zerohunger/backend/pkg/apisdk"
	"github.com/zerohunger/backend/pkg/slogx"
)

// writeServiceError maps account service errors onto API errors.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrEmailRequired):
		apisdk.WriteValidationError(w, "invalid user", map[string]string{"email": "required"})
	case errors.Is(err, service.ErrValidation):
		apisdk.WriteValidationError(w, err.Error(), nil)
	case errors.Is(err, service.ErrEmailTaken):
		apisdk.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrUserNotFound):
		apisdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		apisdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		apisdk.ErrForbidden.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		apisdk.ErrServerError.WriteError(w)
	}
}
