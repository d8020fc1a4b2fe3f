package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/book-inventory/internal/handler"
	"github.com/iliyamo/book-inventory/internal/model"
)

// apiClient is a tiny helper for authenticated calls against the test server.
type apiClient struct {
	t       *testing.T
	baseURL string
	token   string
}

func login(t *testing.T, baseURL string) *apiClient {
	t.Helper()
	resp, env := postLogin(t, baseURL, testUsername, testPassword)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return &apiClient{t: t, baseURL: baseURL, token: env.Token}
}

func (a *apiClient) do(method, path string, body any) (int, handler.Envelope) {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(bs)
	}
	req, err := http.NewRequest(method, a.baseURL+path, reader)
	require.NoError(a.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	var env handler.Envelope
	require.NoError(a.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func (a *apiClient) book(env handler.Envelope) model.Book {
	a.t.Helper()
	bs, err := json.Marshal(env.Data)
	require.NoError(a.t, err)
	var b model.Book
	require.NoError(a.t, json.Unmarshal(bs, &b))
	return b
}

func validBody() map[string]any {
	return map[string]any{
		"title":    "The Go Programming Language",
		"author":   "Donovan & Kernighan",
		"price":    39.99,
		"category": "Programming",
	}
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	ts, _ := newTestServer(t)
	api := login(t, ts.URL)

	status, env := api.do(http.MethodPost, "/books", validBody())
	require.Equal(t, http.StatusCreated, status)
	created := api.book(env)

	_, err := uuid.Parse(created.ID)
	require.NoError(t, err, "identifier must be populated with the store shape")
	require.True(t, created.InStock, "inStock defaults to true when omitted")
	require.False(t, created.CreatedAt.IsZero())

	status, env = api.do(http.MethodGet, "/books/"+created.ID, nil)
	require.Equal(t, http.StatusOK, status)
	got := api.book(env)
	require.Equal(t, "The Go Programming Language", got.Title)
	require.Equal(t, "Donovan & Kernighan", got.Author)
	require.Equal(t, 39.99, got.Price)
	require.Equal(t, "Programming", got.Category)
}

func TestCreateValidation(t *testing.T) {
	ts, _ := newTestServer(t)
	api := login(t, ts.URL)

	status, env := api.do(http.MethodPost, "/books", map[string]any{
		"title":    "  ",
		"author":   "",
		"price":    -5,
		"category": "",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, env.Success)
	require.Len(t, env.Errors, 4)
}

func TestListReturnsAllBooks(t *testing.T) {
	ts, _ := newTestServer(t)
	api := login(t, ts.URL)

	for i := 0; i < 3; i++ {
		status, _ := api.do(http.MethodPost, "/books", validBody())
		require.Equal(t, http.StatusCreated, status)
	}

	status, env := api.do(http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusOK, status)

	bs, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var books []model.Book
	require.NoError(t, json.Unmarshal(bs, &books))
	require.Len(t, books, 3)
}

func TestUpdateMergesPartialFields(t *testing.T) {
	ts, _ := newTestServer(t)
	api := login(t, ts.URL)

	_, env := api.do(http.MethodPost, "/books", validBody())
	created := api.book(env)

	status, env := api.do(http.MethodPut, "/books/"+created.ID, map[string]any{
		"price":   44.50,
		"inStock": false,
	})
	require.Equal(t, http.StatusOK, status)
	updated := api.book(env)
	require.Equal(t, 44.50, updated.Price)
	require.False(t, updated.InStock)
	// Untouched fields survive the merge.
	require.Equal(t, created.Title, updated.Title)
	require.Equal(t, created.Author, updated.Author)
	require.Equal(t, created.Category, updated.Category)
}

func TestUpdateRejectsNegativePriceAndKeepsRecord(t *testing.T) {
	ts, _ := newTestServer(t)
	api := login(t, ts.URL)

	_, env := api.do(http.MethodPost, "/books", validBody())
	created := api.book(env)

	status, env := api.do(http.MethodPut, "/books/"+created.ID, map[string]any{"price": -1})
	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, env.Success)

	status, env = api.do(http.MethodGet, "/books/"+created.ID, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, created.Price, api.book(env).Price, "rejected update must leave the record unchanged")
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	ts, _ := newTestServer(t)
	api := login(t, ts.URL)

	_, env := api.do(http.MethodPost, "/books", validBody())
	created := api.book(env)

	status, env := api.do(http.MethodDelete, "/books/"+created.ID, nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	status, _ = api.do(http.MethodGet, "/books/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestMalformedIDRejectedBeforeLookup(t *testing.T) {
	ts, _ := newTestServer(t)
	api := login(t, ts.URL)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		var body any
		if method == http.MethodPut {
			body = map[string]any{"price": 10}
		}
		status, env := api.do(method, "/books/not-a-valid-id", body)
		require.Equal(t, http.StatusBadRequest, status, method)
		require.Equal(t, "invalid book id", env.Message, method)
	}

	// A well-formed but absent identifier is a 404, not a 400.
	status, _ := api.do(http.MethodGet, "/books/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestBooksRequireBearerToken(t *testing.T) {
	ts, _ := newTestServer(t)

	unauthenticated := &apiClient{t: t, baseURL: ts.URL}
	status, env := unauthenticated.do(http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.False(t, env.Success)

	garbage := &apiClient{t: t, baseURL: ts.URL, token: "garbage"}
	status, _ = garbage.do(http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}
