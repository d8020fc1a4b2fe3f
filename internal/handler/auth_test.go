package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/book-inventory/internal/cache"
	"github.com/iliyamo/book-inventory/internal/config"
	"github.com/iliyamo/book-inventory/internal/handler"
	"github.com/iliyamo/book-inventory/internal/repository"
	"github.com/iliyamo/book-inventory/internal/router"
	"github.com/iliyamo/book-inventory/internal/utils"

	"github.com/labstack/echo/v4"
)

const (
	testSecret   = "test-secret"
	testUsername = "admin@example.com"
	testPassword = "password123"
)

func testConfig() config.Config {
	return config.Config{
		Env:          "test",
		JWTSecret:    testSecret,
		AccessTTLMin: 60,
		BcryptCost:   4, // bcrypt.MinCost keeps tests fast
		CORSOrigins:  "*",
	}
}

// newTestServer wires the full route table over in-memory stores.
func newTestServer(t *testing.T) (*httptest.Server, *repository.MemoryBookStore) {
	t.Helper()

	cfg := testConfig()
	users := repository.NewMemoryUserStore()
	hash, err := utils.HashPassword(testPassword, cfg.BcryptCost)
	require.NoError(t, err)
	users.Add(testUsername, hash)

	books := repository.NewMemoryBookStore()
	bh := handler.NewBookHandler(books, cache.NewBookList(nil, config.CacheConfig{}))
	bh.Publish = nil // no broker in tests
	ah := handler.NewAuthHandler(cfg, users)

	e := echo.New()
	router.RegisterRoutes(e, cfg, ah, bh)

	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)
	return ts, books
}

func postLogin(t *testing.T, baseURL, username, password string) (*http.Response, handler.Envelope) {
	t.Helper()
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	require.NoError(t, err)

	resp, err := http.Post(baseURL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var env handler.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, env := postLogin(t, ts.URL, testUsername, testPassword)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)
	require.NotEmpty(t, env.Token)

	tok, err := jwt.Parse(env.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, testUsername, claims["username"])
}

func TestLoginUnknownUserAndWrongPasswordAreIdentical(t *testing.T) {
	ts, _ := newTestServer(t)

	respUnknown, envUnknown := postLogin(t, ts.URL, "nobody@example.com", testPassword)
	respWrong, envWrong := postLogin(t, ts.URL, testUsername, "wrong-password")

	require.Equal(t, http.StatusUnauthorized, respUnknown.StatusCode)
	require.Equal(t, http.StatusUnauthorized, respWrong.StatusCode)
	// Same body for both failure modes: no user-enumeration signal.
	require.Equal(t, envUnknown, envWrong)
	require.Equal(t, "invalid credentials", envWrong.Message)
}

func TestLoginValidation(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, env := postLogin(t, ts.URL, "", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.False(t, env.Success)
	require.Len(t, env.Errors, 2)

	fields := []string{env.Errors[0].Field, env.Errors[1].Field}
	require.Contains(t, fields, "username")
	require.Contains(t, fields, "password")
}

func TestLoginNormalizesUsernameCase(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, _ := postLogin(t, ts.URL, "Admin@Example.com", testPassword)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
