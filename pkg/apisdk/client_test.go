package apisdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreateUserRequestValidate(t *testing.T) {
	tests := []struct {
		name  string
		req   CreateUserRequest
		field string
	}{
		{"missing email", CreateUserRequest{Password: "pw"}, "email"},
		{"blank email", CreateUserRequest{Email: "   ", Password: "pw"}, "email"},
		{"malformed email", CreateUserRequest{Email: "not-an-email", Password: "pw"}, "email"},
		{"missing password", CreateUserRequest{Email: "a@b.org"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			require.Contains(t, errs, tt.field)
		})
	}

	require.Nil(t, CreateUserRequest{Email: "a@b.org", Username: "a", Password: "pw"}.Validate())
}

func TestAdminCreateUserRequestValidate(t *testing.T) {
	require.Nil(t, AdminCreateUserRequest{Email: "a@b.org"}.Validate(), "password is optional")
	require.Contains(t, AdminCreateUserRequest{}.Validate(), "email")
}

func TestClientCreateUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/create-user", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateUserRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Email == "taken@example.org" {
			ErrEmailTaken.WriteError(w)
			return
		}
		if req.Password == "" {
			WriteValidationError(w, "invalid user", map[string]string{"password": "required"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(UserResponse{ID: "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", Email: req.Email, IsActive: true})
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewSDKClient(srv.URL + "/")

	t.Run("created", func(t *testing.T) {
		u, err := c.CreateUser(ctx, CreateUserRequest{Email: "a@example.org", Password: "pw"})
		require.NoError(t, err)
		require.Equal(t, "a@example.org", u.Email)
		require.True(t, u.IsActive)
	})

	t.Run("conflict", func(t *testing.T) {
		_, err := c.CreateUser(ctx, CreateUserRequest{Email: "taken@example.org", Password: "pw"})
		require.ErrorIs(t, err, ErrEmailTaken)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	})

	t.Run("client side validation", func(t *testing.T) {
		_, err := c.CreateUser(ctx, CreateUserRequest{Email: "a@example.org"})
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, ErrorCodeValidation, apiErr.Code)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode, "built locally")
	})

	t.Run("server side validation", func(t *testing.T) {
		raw := NewSDKClient(srv.URL)
		raw.ValidateRequests = false

		_, err := raw.CreateUser(ctx, CreateUserRequest{Email: "a@example.org"})
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, ErrorCodeValidation, apiErr.Code)
		require.Equal(t, "required", apiErr.Details["password"])
	})
}

func TestClientGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/get-user", r.URL.Path)
		if r.URL.Query().Get("email") == "a+tag@example.org" {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(UserResponse{ID: "x", Email: "a+tag@example.org"})
			return
		}
		ErrNotFound.WriteError(w)
	}))
	defer srv.Close()

	c := NewSDKClient(srv.URL)

	u, err := c.GetUserByEmail(context.Background(), "a+tag@example.org")
	require.NoError(t, err, "query must be escaped")
	require.Equal(t, "x", u.ID)

	_, err = c.GetUserByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAdminLogin(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/login/":
			if r.PostFormValue("password") != "pw" {
				ErrInvalidCredentials.WriteError(w)
				return
			}
			http.SetCookie(w, &http.Cookie{Name: AdminSessionCookie, Value: "tok", HttpOnly: true})
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(AdminLoginResponse{
				User:      UserResponse{Email: r.PostFormValue("email"), IsStaff: true},
				ExpiresAt: expires,
			})
		case "/admin/users/":
			ck, err := r.Cookie(AdminSessionCookie)
			if err != nil || ck.Value != "tok" {
				ErrUnauthorized.WriteError(w)
				return
			}
			require.Equal(t, "10", r.URL.Query().Get("limit"))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(UserListResponse{Total: 1, Limit: 10, Users: []UserResponse{{ID: "u1"}}})
		case "/admin/logout/":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewSDKClient(srv.URL)

	_, err := c.AdminLogin(ctx, "admin@example.org", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	s, err := c.AdminLogin(ctx, "admin@example.org", "pw")
	require.NoError(t, err)
	require.Equal(t, "tok", s.Token())
	require.True(t, s.User().IsStaff)
	require.True(t, expires.Equal(s.ExpiresAt()))

	page, err := s.ListUsers(ctx, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "u1", page.Users[0].ID)

	_, err = c.NewAdminSession("forged").ListUsers(ctx, 10, 0)
	require.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, s.Logout(ctx))
}

func TestParseErrorResponseFallback(t *testing.T) {
	err := parseErrorResponse(&http.Response{StatusCode: http.StatusBadGateway}, []byte("<html>"))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}
