package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/book-inventory/internal/cache"
	"github.com/iliyamo/book-inventory/internal/middleware"
	"github.com/iliyamo/book-inventory/internal/model"
	"github.com/iliyamo/book-inventory/internal/queue"
	"github.com/iliyamo/book-inventory/internal/repository"
)

// BookHandler bundles the dependencies for the book CRUD endpoints.  Cache
// may be a disabled instance and Publish may be nil; both are optional
// collaborators.
type BookHandler struct {
	Books   repository.BookStore
	Cache   *cache.BookList
	Publish func(ctx context.Context, ev queue.BookEvent) error
}

// NewBookHandler constructs a handler wired to the real event publisher.
func NewBookHandler(books repository.BookStore, listCache *cache.BookList) *BookHandler {
	if books == nil {
		panic("nil book store passed to NewBookHandler")
	}
	return &BookHandler{Books: books, Cache: listCache, Publish: queue.PublishBookEvent}
}

// ----- DTOs -----

type createBookReq struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Price    *float64 `json:"price"`
	Category string   `json:"category"`
	InStock  *bool    `json:"inStock"`
}

// updateBookReq carries a partial update; nil fields stay untouched.
type updateBookReq struct {
	Title    *string  `json:"title"`
	Author   *string  `json:"author"`
	Price    *float64 `json:"price"`
	Category *string  `json:"category"`
	InStock  *bool    `json:"inStock"`
}

// Create handles POST /books.
func (h *BookHandler) Create(c echo.Context) error {
	var req createBookReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	req.Category = strings.TrimSpace(req.Category)

	var errs []FieldError
	if req.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	}
	if req.Author == "" {
		errs = append(errs, FieldError{Field: "author", Message: "author is required"})
	}
	if req.Category == "" {
		errs = append(errs, FieldError{Field: "category", Message: "category is required"})
	}
	if req.Price == nil {
		errs = append(errs, FieldError{Field: "price", Message: "price is required"})
	} else if *req.Price <= 0 {
		errs = append(errs, FieldError{Field: "price", Message: "price must be a positive number"})
	}
	if len(errs) > 0 {
		return respondFieldErrors(c, errs)
	}

	book := model.Book{
		Title:    req.Title,
		Author:   req.Author,
		Price:    *req.Price,
		Category: req.Category,
		InStock:  true, // default when omitted
	}
	if req.InStock != nil {
		book.InStock = *req.InStock
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	created, err := h.Books.Create(ctx, book)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "could not create book")
	}
	h.afterMutation(c, queue.ActionCreated, created)
	return respondData(c, http.StatusCreated, created)
}

// List handles GET /books.  The full list goes back to the client; search,
// filter and pagination happen client-side.
func (h *BookHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if books, ok := h.Cache.Get(ctx); ok {
		c.Response().Header().Set("X-Cache", "HIT")
		return respondData(c, http.StatusOK, books)
	}

	books, err := h.Books.List(ctx)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "could not list books")
	}
	h.Cache.Set(ctx, books)
	return respondData(c, http.StatusOK, books)
}

// Get handles GET /books/:id.
func (h *BookHandler) Get(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid book id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	book, err := h.Books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return respondError(c, http.StatusNotFound, "book not found")
		}
		return respondError(c, http.StatusInternalServerError, "could not load book")
	}
	return respondData(c, http.StatusOK, book)
}

// Update handles PUT /books/:id with partial fields.  Provided fields are
// validated with the same rules as creation before anything is written, so
// a rejected update leaves the stored record unchanged.
func (h *BookHandler) Update(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid book id")
	}
	var req updateBookReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	var errs []FieldError
	patch := model.BookPatch{Price: req.Price, InStock: req.InStock}
	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		if t == "" {
			errs = append(errs, FieldError{Field: "title", Message: "title must not be empty"})
		}
		patch.Title = &t
	}
	if req.Author != nil {
		a := strings.TrimSpace(*req.Author)
		if a == "" {
			errs = append(errs, FieldError{Field: "author", Message: "author must not be empty"})
		}
		patch.Author = &a
	}
	if req.Category != nil {
		cat := strings.TrimSpace(*req.Category)
		if cat == "" {
			errs = append(errs, FieldError{Field: "category", Message: "category must not be empty"})
		}
		patch.Category = &cat
	}
	if req.Price != nil && *req.Price <= 0 {
		errs = append(errs, FieldError{Field: "price", Message: "price must be a positive number"})
	}
	if len(errs) > 0 {
		return respondFieldErrors(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	updated, err := h.Books.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return respondError(c, http.StatusNotFound, "book not found")
		}
		return respondError(c, http.StatusInternalServerError, "update failed")
	}
	h.afterMutation(c, queue.ActionUpdated, updated)
	return respondData(c, http.StatusOK, updated)
}

// Delete handles DELETE /books/:id.  Removal is permanent.
func (h *BookHandler) Delete(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid book id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Load first so the event carries the record that was removed.
	book, err := h.Books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return respondError(c, http.StatusNotFound, "book not found")
		}
		return respondError(c, http.StatusInternalServerError, "could not load book")
	}
	if err := h.Books.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return respondError(c, http.StatusNotFound, "book not found")
		}
		return respondError(c, http.StatusInternalServerError, "delete failed")
	}
	h.afterMutation(c, queue.ActionDeleted, book)
	return respondMessage(c, http.StatusOK, "book deleted")
}

// afterMutation invalidates the list cache and publishes an inventory event.
// Both are best effort and never fail the request.
func (h *BookHandler) afterMutation(c echo.Context, action string, book model.Book) {
	h.Cache.Invalidate(c.Request().Context())
	if h.Publish == nil {
		return
	}
	ev := queue.BookEvent{
		Action:     action,
		BookID:     book.ID,
		Title:      book.Title,
		Author:     book.Author,
		Category:   book.Category,
		Price:      book.Price,
		ActorID:    actorID(c),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = h.Publish(context.Background(), ev) }()
}

// bookID extracts the :id path parameter and checks its shape before any
// lookup happens.
func bookID(c echo.Context) (string, error) {
	id := strings.TrimSpace(c.Param("id"))
	if !repository.ValidBookID(id) {
		return "", repository.ErrInvalidBookID
	}
	return id, nil
}

// actorID extracts the authenticated user id from the echo context.  JWT
// numeric claims decode as float64; other shapes are tolerated because the
// actor id is informational only.
func actorID(c echo.Context) uint64 {
	switch t := c.Get(middleware.CtxUserID).(type) {
	case uint64:
		return t
	case int:
		return uint64(t)
	case int64:
		return uint64(t)
	case float64:
		return uint64(t)
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
