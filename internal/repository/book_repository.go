package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/book-inventory/internal/model"
)

// BookStore captures the persistence operations the handlers need.  The
// MySQL-backed BookRepo is the production implementation; tests use the
// in-memory store from memory.go.
type BookStore interface {
	Create(ctx context.Context, b model.Book) (model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	GetByID(ctx context.Context, id string) (model.Book, error)
	Update(ctx context.Context, id string, patch model.BookPatch) (model.Book, error)
	Delete(ctx context.Context, id string) error
}

// ValidBookID reports whether id has the store's identifier shape.  A
// malformed id is rejected before any lookup is attempted, distinct from
// "looked up but missing".
func ValidBookID(id string) bool {
	_, err := uuid.Parse(strings.TrimSpace(id))
	return err == nil
}

// Ensure BookRepo satisfies BookStore at compile time.
var _ BookStore = (*BookRepo)(nil)

// BookRepo persists books in the `books` table.
type BookRepo struct{ DB *sql.DB }

func NewBookRepo(db *sql.DB) *BookRepo { return &BookRepo{DB: db} }

const bookColumns = "id,title,author,price,category,in_stock,created_at,updated_at"

func scanBook(row interface{ Scan(...any) error }) (model.Book, error) {
	var b model.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Price, &b.Category, &b.InStock, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// Create inserts a book with a freshly assigned UUID and returns the stored
// record including the database-assigned timestamps.
func (r *BookRepo) Create(ctx context.Context, b model.Book) (model.Book, error) {
	b.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO books (id,title,author,price,category,in_stock) VALUES (?,?,?,?,?,?)",
		b.ID, b.Title, b.Author, b.Price, b.Category, b.InStock)
	if err != nil {
		return model.Book{}, err
	}
	return r.GetByID(ctx, b.ID)
}

// List returns every book ordered by creation time, newest first.
func (r *BookRepo) List(ctx context.Context) ([]model.Book, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookColumns+" FROM books ORDER BY created_at DESC, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// GetByID fetches a single book.  The caller is expected to have checked the
// identifier shape already; a missing row maps to ErrBookNotFound.
func (r *BookRepo) GetByID(ctx context.Context, id string) (model.Book, error) {
	b, err := scanBook(r.DB.QueryRowContext(ctx,
		"SELECT "+bookColumns+" FROM books WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Book{}, ErrBookNotFound
	}
	return b, err
}

// Update merges the non-nil patch fields into the stored record and persists
// the result.  The read and write are two statements; the store's own
// concurrency control serializes concurrent writers (last write wins, same
// as the original behavior).
func (r *BookRepo) Update(ctx context.Context, id string, patch model.BookPatch) (model.Book, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Book{}, err
	}
	applyPatch(&b, patch)
	_, err = r.DB.ExecContext(ctx,
		"UPDATE books SET title=?,author=?,price=?,category=?,in_stock=? WHERE id=?",
		b.Title, b.Author, b.Price, b.Category, b.InStock, id)
	if err != nil {
		return model.Book{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a book permanently.  Zero affected rows maps to
// ErrBookNotFound.
func (r *BookRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM books WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookNotFound
	}
	return nil
}

func applyPatch(b *model.Book, patch model.BookPatch) {
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Author != nil {
		b.Author = *patch.Author
	}
	if patch.Price != nil {
		b.Price = *patch.Price
	}
	if patch.Category != nil {
		b.Category = *patch.Category
	}
	if patch.InStock != nil {
		b.InStock = *patch.InStock
	}
}
