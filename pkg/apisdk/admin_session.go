package apisdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// AdminSession is a logged-in admin console session.
type AdminSession struct {
	client    *SDKClient
	cookie    *http.Cookie
	user      UserResponse
	expiresAt time.Time
}

// AdminLogin logs a staff account into the admin console.
func (c *SDKClient) AdminLogin(ctx context.Context, email, password string) (*AdminSession, error) {
	form := url.Values{"email": {email}, "password": {password}}

	resp, err := c.doRequest(ctx, http.MethodPost, "/admin/login/", strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"}, nil)
	if err != nil {
		return nil, err
	}

	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == AdminSessionCookie && ck.Value != "" {
			cookie = &http.Cookie{Name: ck.Name, Value: ck.Value}
		}
	}

	var out AdminLoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	if cookie == nil {
		return nil, fmt.Errorf("admin login: response carried no %s cookie", AdminSessionCookie)
	}

	return &AdminSession{
		client:    c,
		cookie:    cookie,
		user:      out.User,
		expiresAt: out.ExpiresAt,
	}, nil
}

// NewAdminSession wraps an existing session token.
func (c *SDKClient) NewAdminSession(token string) *AdminSession {
	return &AdminSession{
		client: c,
		cookie: &http.Cookie{Name: AdminSessionCookie, Value: token},
	}
}

// User is the account that logged in. Empty for sessions made with
// NewAdminSession.
func (s *AdminSession) User() UserResponse { return s.user }

func (s *AdminSession) ExpiresAt() time.Time { return s.expiresAt }

// Token is the raw session cookie value.
func (s *AdminSession) Token() string { return s.cookie.Value }

// Index fetches the admin site index.
func (s *AdminSession) Index(ctx context.Context) (*AdminIndexResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/admin/", nil, nil, s.cookie)
	if err != nil {
		return nil, err
	}

	var out AdminIndexResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers fetches one page of accounts, newest first.
func (s *AdminSession) ListUsers(ctx context.Context, limit, offset int) (*UserListResponse, error) {
	q := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}

	resp, err := s.client.doRequest(ctx, http.MethodGet, "/admin/users/?"+q.Encode(), nil, nil, s.cookie)
	if err != nil {
		return nil, err
	}

	var out UserListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches one account by id.
func (s *AdminSession) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/admin/users/"+url.PathEscape(id)+"/", nil, nil, s.cookie)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser creates an account from the admin console. Setting is_staff or
// is_superuser requires a superuser session.
func (s *AdminSession) CreateUser(ctx context.Context, req AdminCreateUserRequest) (*UserResponse, error) {
	if s.client.ValidateRequests {
		if details := req.Validate(); details != nil {
			return nil, NewValidationError("invalid user", details)
		}
	}

	resp, err := s.client.doJSON(ctx, http.MethodPost, "/admin/users/", req, s.cookie)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout asks the server to clear the session cookie. The server also
// remembers the token as revoked until it would have expired.
func (s *AdminSession) Logout(ctx context.Context) error {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/admin/logout/", nil, nil, s.cookie)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
