package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zerohunger/backend/internal/backend/domain"
	"github.com/zerohunger/backend/pkg/apisdk"
	"github.com/zerohunger/backend/pkg/idx"
)

func (e *testEnv) login(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"email": {email}, "password": {password}}
	return e.do(t, http.MethodPost, "/admin/login/", strings.NewReader(form.Encode()), func(r *http.Request) {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	})
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == apisdk.AdminSessionCookie {
			return ck
		}
	}
	t.Fatalf("no %s cookie in response", apisdk.AdminSessionCookie)
	return nil
}

func withCookie(ck *http.Cookie) func(*http.Request) {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
}

func (e *testEnv) seed(t *testing.T) (staff, super domain.User) {
	t.Helper()
	ctx := context.Background()

	staff, err := e.accounts.CreateUser(ctx, "staff@zerohunger.org", "staff", "staff-pass", domain.ExtraFields{IsStaff: domain.Bool(true)})
	require.NoError(t, err)
	super, err = e.accounts.CreateSuperuser(ctx, "root@zerohunger.org", "root", "root-pass", domain.ExtraFields{})
	require.NoError(t, err)
	_, err = e.accounts.CreateUser(ctx, "donor@zerohunger.org", "donor", "donor-pass", domain.ExtraFields{})
	require.NoError(t, err)
	_, err = e.accounts.CreateUser(ctx, "retired@zerohunger.org", "retired", "retired-pass", domain.ExtraFields{
		IsStaff: domain.Bool(true), IsActive: domain.Bool(false),
	})
	require.NoError(t, err)
	return staff, super
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)
	staff, _ := env.seed(t)

	t.Run("staff", func(t *testing.T) {
		rec := env.login(t, "staff@ZEROHUNGER.org", "staff-pass")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		ck := sessionCookie(t, rec)
		require.True(t, ck.HttpOnly)
		require.Equal(t, "/admin/", ck.Path)
		require.NotEmpty(t, ck.Value)

		resp := decode[apisdk.AdminLoginResponse](t, rec)
		require.Equal(t, staff.ID, resp.User.ID)
		require.NotNil(t, resp.User.LastLogin)
		require.True(t, resp.ExpiresAt.After(time.Now()))
	})

	for name, creds := range map[string][2]string{
		"wrong password": {"staff@zerohunger.org", "nope"},
		"not staff":      {"donor@zerohunger.org", "donor-pass"},
		"inactive staff": {"retired@zerohunger.org", "retired-pass"},
		"unknown":        {"ghost@zerohunger.org", "whatever"},
	} {
		t.Run(name, func(t *testing.T) {
			rec := env.login(t, creds[0], creds[1])
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, apisdk.ErrorCodeInvalidCredentials, decode[apisdk.ErrorResponse](t, rec).Error)
			require.Empty(t, rec.Result().Cookies())
		})
	}

	t.Run("refused login leaves last login unset", func(t *testing.T) {
		rec := env.login(t, "donor@zerohunger.org", "donor-pass")
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		u, err := env.accounts.GetUserByEmail(context.Background(), "donor@zerohunger.org")
		require.NoError(t, err)
		require.Nil(t, u.LastLogin)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := env.login(t, "", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get is not allowed", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/admin/login/", nil)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestAdminRequiresSession(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	for _, target := range []string{"/admin/", "/admin/users/", "/admin/users/" + idx.New().String() + "/"} {
		t.Run("no cookie "+target, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, target, nil)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	t.Run("forged cookie", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/admin/", nil, withCookie(&http.Cookie{Name: apisdk.AdminSessionCookie, Value: "a.b.c"}))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("session for deleted account", func(t *testing.T) {
		token, _, err := env.sessions.Issue(idx.New().String(), "gone@zerohunger.org", true, true, time.Now())
		require.NoError(t, err)

		rec := env.do(t, http.MethodGet, "/admin/", nil, withCookie(&http.Cookie{Name: apisdk.AdminSessionCookie, Value: token}))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("session for account that lost staff", func(t *testing.T) {
		donor, err := env.accounts.GetUserByEmail(context.Background(), "donor@zerohunger.org")
		require.NoError(t, err)

		// Claims say staff, but the account does not.
		token, _, err := env.sessions.Issue(donor.ID, donor.Email, true, false, time.Now())
		require.NoError(t, err)

		rec := env.do(t, http.MethodGet, "/admin/", nil, withCookie(&http.Cookie{Name: apisdk.AdminSessionCookie, Value: token}))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminConsole(t *testing.T) {
	env := newTestEnv(t)
	staff, super := env.seed(t)

	staffCk := sessionCookie(t, env.login(t, "staff@zerohunger.org", "staff-pass"))
	superCk := sessionCookie(t, env.login(t, "root@zerohunger.org", "root-pass"))

	t.Run("index", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/admin/", nil, withCookie(staffCk))
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[apisdk.AdminIndexResponse](t, rec)
		require.Equal(t, adminSiteName, resp.SiteName)
		require.Equal(t, staff.ID, resp.User.ID)
		require.Len(t, resp.Models, 1)
		require.Equal(t, "/admin/users/", resp.Models[0].URL)
	})

	t.Run("list", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/admin/users/?limit=2", nil, withCookie(staffCk))
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[apisdk.UserListResponse](t, rec)
		require.Equal(t, 4, resp.Total)
		require.Equal(t, 2, resp.Limit)
		require.Len(t, resp.Users, 2)
		require.Equal(t, "retired@zerohunger.org", resp.Users[0].Email, "newest first")

		rec = env.do(t, http.MethodGet, "/admin/users/?offset=-1", nil, withCookie(staffCk))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		rec = env.do(t, http.MethodGet, "/admin/users/?limit=ten", nil, withCookie(staffCk))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("detail", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/admin/users/"+super.ID+"/", nil, withCookie(staffCk))
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, decode[apisdk.UserResponse](t, rec).IsSuperuser)

		rec = env.do(t, http.MethodGet, "/admin/users/"+idx.New().String()+"/", nil, withCookie(staffCk))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("staff creates plain user", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/admin/users/", jsonBody(t, apisdk.AdminCreateUserRequest{
			Email: "volunteer@zerohunger.org",
		}), withCookie(staffCk))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		u := decode[apisdk.UserResponse](t, rec)
		require.False(t, u.IsStaff)
		require.True(t, u.IsActive)
	})

	t.Run("staff cannot grant privileges", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/admin/users/", jsonBody(t, apisdk.AdminCreateUserRequest{
			Email: "sneaky@zerohunger.org", IsSuperuser: domain.Bool(true),
		}), withCookie(staffCk))
		require.Equal(t, http.StatusForbidden, rec.Code)

		_, err := env.accounts.GetUserByEmail(context.Background(), "sneaky@zerohunger.org")
		require.Error(t, err)
	})

	t.Run("superuser grants staff", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/admin/users/", jsonBody(t, apisdk.AdminCreateUserRequest{
			Email: "coordinator@zerohunger.org", Password: "pw", IsStaff: domain.Bool(true),
		}), withCookie(superCk))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		u := decode[apisdk.UserResponse](t, rec)
		require.True(t, u.IsStaff)
		require.False(t, u.IsSuperuser)
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/admin/users/", jsonBody(t, apisdk.AdminCreateUserRequest{
			Email: "donor@ZEROHUNGER.org",
		}), withCookie(superCk))
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/admin/logout/", nil, withCookie(staffCk))
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, -1, sessionCookie(t, rec).MaxAge)

		rec = env.do(t, http.MethodGet, "/admin/", nil, withCookie(staffCk))
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = env.do(t, http.MethodGet, "/admin/", nil, withCookie(superCk))
		require.Equal(t, http.StatusOK, rec.Code, "other sessions unaffected")
	})
}
