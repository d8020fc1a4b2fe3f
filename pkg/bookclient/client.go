// Package bookclient is the Go client for the book inventory API.  It wraps
// the REST surface (login plus book CRUD) behind typed calls, keeps the
// bearer token in an explicit Session, and provides the in-memory View used
// to search, filter and paginate the fetched list.
package bookclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Book mirrors the records served by the API.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	InStock   bool      `json:"inStock"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookInput carries the fields for creating or updating a book.  For updates
// nil fields are omitted from the request body so the server treats them as
// "leave unchanged".
type BookInput struct {
	Title    *string  `json:"title,omitempty"`
	Author   *string  `json:"author,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Category *string  `json:"category,omitempty"`
	InStock  *bool    `json:"inStock,omitempty"`
}

// FieldError is a single server-side validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is returned for any non-2xx response, decoded from the uniform
// {success, message, errors} envelope.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	if len(e.Fields) > 0 {
		parts := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			parts[i] = f.Field + ": " + f.Message
		}
		return fmt.Sprintf("api error %d: %s", e.Status, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("api error %d", e.Status)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
	Message string          `json:"message"`
	Errors  []FieldError    `json:"errors"`
}

// Client calls the inventory API.  It is safe for concurrent use; token
// state lives in the shared Session.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New builds a client for the given API base URL.  A nil session gets
// replaced by a fresh one; httpClient may be nil to use a default with a
// 10 second timeout.
func New(baseURL string, session *Session, httpClient *http.Client) *Client {
	if session == nil {
		session = NewSession()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		session: session,
	}
}

// Session exposes the session so callers can observe auth state.
func (c *Client) Session() *Session { return c.session }

// Login authenticates and stores the minted token in the session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	c.session.SetToken(env.Token)
	return nil
}

// Logout discards the session token.  The server keeps no session state, so
// this is purely client-side teardown.
func (c *Client) Logout() { c.session.Clear() }

// ListBooks fetches the complete book list.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	env, err := c.do(ctx, http.MethodGet, "/books", nil)
	if err != nil {
		return nil, err
	}
	var books []Book
	if err := json.Unmarshal(env.Data, &books); err != nil {
		return nil, fmt.Errorf("decode book list: %w", err)
	}
	return books, nil
}

// GetBook fetches a single record by identifier.
func (c *Client) GetBook(ctx context.Context, id string) (Book, error) {
	env, err := c.do(ctx, http.MethodGet, "/books/"+url.PathEscape(id), nil)
	if err != nil {
		return Book{}, err
	}
	return decodeBook(env.Data)
}

// CreateBook adds a record and returns it with its store-assigned fields.
func (c *Client) CreateBook(ctx context.Context, input BookInput) (Book, error) {
	env, err := c.do(ctx, http.MethodPost, "/books", input)
	if err != nil {
		return Book{}, err
	}
	return decodeBook(env.Data)
}

// UpdateBook applies a partial update and returns the merged record.
func (c *Client) UpdateBook(ctx context.Context, id string, input BookInput) (Book, error) {
	env, err := c.do(ctx, http.MethodPut, "/books/"+url.PathEscape(id), input)
	if err != nil {
		return Book{}, err
	}
	return decodeBook(env.Data)
}

// DeleteBook removes a record permanently.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/books/"+url.PathEscape(id), nil)
	return err
}

// Refresh re-fetches the full list into the view.  Callers invoke it once
// after construction and again after every mutation; the view never patches
// its copy locally.
func (c *Client) Refresh(ctx context.Context, view *View) error {
	books, err := c.ListBooks(ctx)
	if err != nil {
		return err
	}
	view.SetBooks(books)
	return nil
}

func decodeBook(raw json.RawMessage) (Book, error) {
	var b Book
	if err := json.Unmarshal(raw, &b); err != nil {
		return Book{}, fmt.Errorf("decode book: %w", err)
	}
	return b, nil
}

// do executes one API call and decodes the envelope.  Any 401 clears the
// session before the error is returned, so the next protected action routes
// the user back through login.
func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(bs)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Clear()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message, Fields: env.Errors}
	}
	return &env, nil
}
