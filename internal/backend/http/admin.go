package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/zerohunger/backend/internal/backend/domain"
	"github.com/zerohunger/backend/internal/backend/service"
	"github.com/zerohunger/backend/pkg/apisdk"
	"github.com/zerohunger/backend/pkg/httpx"
	"github.com/zerohunger/backend/pkg/jwtx"
	"github.com/zerohunger/backend/pkg/slogx"
)

const adminSiteName = "ZeroHunger administration"

type adminCtxKey struct{}

type adminSession struct {
	user   domain.User
	claims *jwtx.SessionClaims
}

func withAdmin(ctx context.Context, s adminSession) context.Context {
	return context.WithValue(ctx, adminCtxKey{}, s)
}

func adminFromContext(ctx context.Context) (adminSession, bool) {
	s, ok := ctx.Value(adminCtxKey{}).(adminSession)
	return s, ok
}

// AdminHandler is the staff console mounted under /admin/. It dispatches to
// its own route table.
type AdminHandler struct {
	Accounts      *service.AccountService
	Sessions      *jwtx.SessionManager
	SecureCookies bool

	mux *http.ServeMux
}

// NewAdminHandler builds the console and registers its routes.
func NewAdminHandler(accounts *service.AccountService, sessions *jwtx.SessionManager, secureCookies bool) (*AdminHandler, error) {
	h := &AdminHandler{
		Accounts:      accounts,
		Sessions:      sessions,
		SecureCookies: secureCookies,
		mux:           http.NewServeMux(),
	}
	if err := h.Routes().Register(h.mux); err != nil {
		return nil, err
	}
	return h, nil
}

// Routes is the console's own table. Everything except login goes through
// the session check first; rate limits key on the logged in account.
func (h *AdminHandler) Routes() RouteTable {
	read := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, h.RequireStaff, httpx.RateLimitByUser(httpx.LenientLimit))
	}
	write := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, h.RequireStaff, httpx.RateLimitByUser(httpx.ModerateLimit))
	}

	return RouteTable{
		{
			Name: "admin-login", Method: http.MethodPost, Pattern: "/admin/login/{$}",
			Handler: httpx.Chain(http.HandlerFunc(h.HandleLogin),
				httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "email"),
			),
		},
		{Name: "admin-logout", Method: http.MethodPost, Pattern: "/admin/logout/{$}", Handler: write(h.HandleLogout)},
		{Name: "admin-index", Method: http.MethodGet, Pattern: "/admin/{$}", Handler: read(h.HandleIndex)},
		{Name: "admin-user-list", Method: http.MethodGet, Pattern: "/admin/users/{$}", Handler: read(h.HandleListUsers)},
		{Name: "admin-user-create", Method: http.MethodPost, Pattern: "/admin/users/{$}", Handler: write(h.HandleCreateUser)},
		{Name: "admin-user-detail", Method: http.MethodGet, Pattern: "/admin/users/{id}/{$}", Handler: read(h.HandleGetUser)},
	}
}

func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// RequireStaff admits requests carrying a valid session cookie whose account
// still exists and is active staff. The account is reloaded on every request
// so demotions take effect immediately.
func (h *AdminHandler) RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := slogx.FromContext(ctx)

		ck, err := r.Cookie(apisdk.AdminSessionCookie)
		if err != nil || ck.Value == "" {
			apisdk.ErrUnauthorized.WriteError(w)
			return
		}

		claims, err := h.Sessions.Verify(ck.Value)
		if err != nil {
			log.Info("admin session rejected", "err", err)
			h.clearCookie(w)
			apisdk.ErrUnauthorized.WriteError(w)
			return
		}

		u, err := h.Accounts.GetUserByID(ctx, claims.Subject)
		if errors.Is(err, service.ErrUserNotFound) {
			h.clearCookie(w)
			apisdk.ErrUnauthorized.WriteError(w)
			return
		}
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if !u.IsActive || !u.IsStaff {
			log.Warn("admin session for account no longer allowed", "user_id", u.ID)
			h.clearCookie(w)
			apisdk.ErrUnauthorized.WriteError(w)
			return
		}

		ctx = httpx.WithUserID(ctx, u.ID)
		ctx = withAdmin(ctx, adminSession{user: u, claims: claims})
		ctx = slogx.WithContext(ctx, log.With("admin_id", u.ID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// HandleLogin godoc
//
//	@Summary		Admin console login
//	@Description	Checks the credentials of an active staff account and sets the session cookie.
//	@Tags			Admin
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			email		formData	string	true	"Email"
//	@Param			password	formData	string	true	"Password"
//	@Success		200			{object}	apisdk.AdminLoginResponse
//	@Failure		400			{object}	apisdk.ValidationErrorResponse
//	@Failure		401			{object}	apisdk.ErrorResponse	"Wrong credentials or not a staff account"
//	@Failure		429			{object}	apisdk.ErrorResponse	"Rate limit exceeded"
//	@Router			/admin/login/ [post].
func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	details := map[string]string{}
	if email == "" {
		details["email"] = "required"
	}
	if password == "" {
		details["password"] = "required"
	}
	if len(details) > 0 {
		apisdk.WriteValidationError(w, "invalid login", details)
		return
	}

	u, err := h.Accounts.Authenticate(ctx, email, password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !u.IsStaff {
		log.Info("admin login refused for non-staff account", "user_id", u.ID)
		apisdk.ErrInvalidCredentials.WriteError(w)
		return
	}

	u, err = h.Accounts.RecordLogin(ctx, u)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	token, expiresAt, err := h.Sessions.Issue(u.ID, u.Email, u.IsStaff, u.IsSuperuser, time.Now())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     apisdk.AdminSessionCookie,
		Value:    token,
		Path:     "/admin/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("admin login", "user_id", u.ID)
	httpx.WriteJSON(w, http.StatusOK, apisdk.AdminLoginResponse{
		User:      userView(u),
		ExpiresAt: expiresAt,
	})
}

// HandleLogout godoc
//
//	@Summary	Admin console logout
//	@Tags		Admin
//	@Success	204
//	@Failure	401	{object}	apisdk.ErrorResponse
//	@Router		/admin/logout/ [post].
func (h *AdminHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if s, ok := adminFromContext(r.Context()); ok {
		h.Sessions.Revoke(s.claims)
	}
	h.clearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleIndex godoc
//
//	@Summary	Admin site index
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	apisdk.AdminIndexResponse
//	@Failure	401	{object}	apisdk.ErrorResponse
//	@Router		/admin/ [get].
func (h *AdminHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	s, _ := adminFromContext(r.Context())

	httpx.WriteJSON(w, http.StatusOK, apisdk.AdminIndexResponse{
		SiteName: adminSiteName,
		Models: []apisdk.AdminModel{
			{Name: "Users", URL: "/admin/users/"},
		},
		User: userView(s.user),
	})
}

// HandleListUsers godoc
//
//	@Summary	List users
//	@Tags		Admin
//	@Produce	json
//	@Param		limit	query		int	false	"Page size (1-100, default 25)"
//	@Param		offset	query		int	false	"Offset"
//	@Success	200		{object}	apisdk.UserListResponse
//	@Failure	400		{object}	apisdk.ValidationErrorResponse
//	@Failure	401		{object}	apisdk.ErrorResponse
//	@Router		/admin/users/ [get].
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	details := map[string]string{}

	limit, ok := intParam(q.Get("limit"))
	if !ok {
		details["limit"] = "must be an integer"
	}
	offset, ok := intParam(q.Get("offset"))
	if !ok || offset < 0 {
		details["offset"] = "must be a non-negative integer"
	}
	if len(details) > 0 {
		apisdk.WriteValidationError(w, "invalid paging", details)
		return
	}

	users, total, err := h.Accounts.ListUsers(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := apisdk.UserListResponse{
		Users:  make([]apisdk.UserResponse, 0, len(users)),
		Total:  total,
		Limit:  service.ClampLimit(limit),
		Offset: offset,
	}
	for _, u := range users {
		out.Users = append(out.Users, userView(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// intParam parses an optional integer query parameter; empty is zero.
func intParam(v string) (int, bool) {
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

// HandleGetUser godoc
//
//	@Summary	User detail
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	apisdk.UserResponse
//	@Failure	401	{object}	apisdk.ErrorResponse
//	@Failure	404	{object}	apisdk.ErrorResponse
//	@Router		/admin/users/{id}/ [get].
func (h *AdminHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.Accounts.GetUserByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userView(u))
}

// HandleCreateUser godoc
//
//	@Summary		Create user from the console
//	@Description	Like /api/create-user but the flags can be set. Setting is_staff or is_superuser needs a superuser session.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.AdminCreateUserRequest	true	"New account"
//	@Success		201		{object}	apisdk.UserResponse
//	@Failure		400		{object}	apisdk.ValidationErrorResponse
//	@Failure		401		{object}	apisdk.ErrorResponse
//	@Failure		403		{object}	apisdk.ErrorResponse	"Only superusers may grant staff or superuser"
//	@Failure		409		{object}	apisdk.ErrorResponse
//	@Router			/admin/users/ [post].
func (h *AdminHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, _ := adminFromContext(ctx)

	var req apisdk.AdminCreateUserRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		apisdk.WriteValidationError(w, "invalid request body", map[string]string{"body": err.Error()})
		return
	}
	if details := req.Validate(); details != nil {
		apisdk.WriteValidationError(w, "invalid user", details)
		return
	}

	if (req.IsStaff != nil || req.IsSuperuser != nil) && !s.user.IsSuperuser {
		slogx.FromContext(ctx).Warn("staff tried to grant privileges", "email", req.Email)
		writeServiceError(w, r, service.ErrForbidden)
		return
	}

	u, err := h.Accounts.CreateUser(ctx, req.Email, req.Username, req.Password, domain.ExtraFields{
		IsStaff:     req.IsStaff,
		IsSuperuser: req.IsSuperuser,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, userView(u))
}

func (h *AdminHandler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     apisdk.AdminSessionCookie,
		Value:    "",
		Path:     "/admin/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
