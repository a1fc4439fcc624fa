package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zerohunger/backend/pkg/httpx"
)

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), tag("first"), tag("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteJSON(rec, http.StatusCreated, map[string]string{"status": "ok"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Email string `json:"email"`
	}

	decode := func(raw string) (body, error) {
		var v body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))
		err := httpx.DecodeJSON(httptest.NewRecorder(), req, 1<<10, &v)
		return v, err
	}

	v, err := decode(`{"email":"a@x.org"}` + "\n")
	require.NoError(t, err)
	require.Equal(t, "a@x.org", v.Email)

	_, err = decode(`{"email":"a@x.org"}{"x":1}`)
	require.ErrorIs(t, err, httpx.ErrTrailingData)

	_, err = decode(`{"email":"a@x.org"} garbage`)
	require.ErrorIs(t, err, httpx.ErrTrailingData)

	_, err = decode(`{"email":"a@x.org","admin":true}`)
	require.Error(t, err, "unknown fields are rejected")

	_, err = decode(`{"email":"` + strings.Repeat("a", 2<<10) + `"}`)
	require.Error(t, err, "oversized body")
}
