package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/book-inventory/internal/middleware"
	"github.com/iliyamo/book-inventory/internal/utils"
)

const secret = "jwt-test-secret"

func protectedServer(t *testing.T) *httptest.Server {
	t.Helper()
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id":  c.Get(middleware.CtxUserID),
			"username": c.Get(middleware.CtxUsername),
		})
	}, middleware.JWTAuth(secret))
	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url, authHeader string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestJWTAuthAcceptsFreshToken(t *testing.T) {
	ts := protectedServer(t)

	tok, err := utils.NewAccessToken(secret, 7, "admin@example.com", 60)
	require.NoError(t, err)

	resp := get(t, ts.URL+"/protected", "Bearer "+tok.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	ts := protectedServer(t)

	// A negative TTL mints an already-expired token.
	tok, err := utils.NewAccessToken(secret, 7, "admin@example.com", -1)
	require.NoError(t, err)

	resp := get(t, ts.URL+"/protected", "Bearer "+tok.Token)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	ts := protectedServer(t)

	for _, header := range []string{"", "Basic abc", "Bearer"} {
		resp := get(t, ts.URL+"/protected", header)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	ts := protectedServer(t)

	tok, err := utils.NewAccessToken("another-secret", 7, "admin@example.com", 60)
	require.NoError(t, err)

	resp := get(t, ts.URL+"/protected", "Bearer "+tok.Token)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
