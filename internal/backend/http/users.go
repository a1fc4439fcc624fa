package http

import (
	"net/http"

	"github.com/zerohunger/backend/internal/backend/domain"
	"github.com/zerohunger/backend/internal/backend/service"
	"github.com/zerohunger/backend/pkg/apisdk"
	"github.com/zerohunger/backend/pkg/httpx"
)

const maxBodyBytes = 1 << 20

// UserHandler serves account creation and lookup for the mobile client.
type UserHandler struct {
	Accounts *service.AccountService
}

// HandleCreate registers an account.
//
//	@Summary		Create user
//	@Description	Creates an account identified by email. The domain part of the email is lower-cased.
//	@Description	Staff and superuser flags cannot be set here.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.CreateUserRequest		true	"New account"
//	@Success		201		{object}	apisdk.UserResponse
//	@Failure		400		{object}	apisdk.ValidationErrorResponse	"Missing or malformed fields"
//	@Failure		409		{object}	apisdk.ErrorResponse			"Email already registered"
//	@Failure		429		{object}	apisdk.ErrorResponse			"Rate limit exceeded"
//	@Router			/api/create-user [post].
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req apisdk.CreateUserRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		apisdk.WriteValidationError(w, "invalid request body", map[string]string{"body": err.Error()})
		return
	}

	if details := req.Validate(); details != nil {
		apisdk.WriteValidationError(w, "invalid user", details)
		return
	}

	u, err := h.Accounts.CreateUser(r.Context(), req.Email, req.Username, req.Password, domain.ExtraFields{})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, userView(u))
}

// HandleGet looks an account up by id or email.
//
//	@Summary		Get user
//	@Description	Looks an account up by id, or by email when no id is given.
//	@Tags			Users
//	@Produce		json
//	@Param			id		query		string	false	"User id (ULID)"
//	@Param			email	query		string	false	"Email address"
//	@Success		200		{object}	apisdk.UserResponse
//	@Failure		400		{object}	apisdk.ValidationErrorResponse	"Neither id nor email given"
//	@Failure		404		{object}	apisdk.ErrorResponse			"No such user"
//	@Router			/api/get-user [get].
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		u   domain.User
		err error
	)
	switch {
	case q.Get("id") != "":
		u, err = h.Accounts.GetUserByID(r.Context(), q.Get("id"))
	case q.Get("email") != "":
		u, err = h.Accounts.GetUserByEmail(r.Context(), q.Get("email"))
	default:
		apisdk.WriteValidationError(w, "a lookup key is required", map[string]string{
			"id":    "required without email",
			"email": "required without id",
		})
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userView(u))
}

func userView(u domain.User) apisdk.UserResponse {
	return apisdk.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		IsActive:    u.IsActive,
		DateJoined:  u.DateJoined,
		LastLogin:   u.LastLogin,
	}
}
