package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/book-inventory/internal/model"
)

func TestMemoryBookStoreCRUD(t *testing.T) {
	s := NewMemoryBookStore()
	ctx := context.Background()

	created, err := s.Create(ctx, model.Book{
		Title: "Neuromancer", Author: "Gibson", Price: 9.99, Category: "SF", InStock: true,
	})
	require.NoError(t, err)
	require.NoError(t, uuid.Validate(created.ID))
	require.False(t, created.CreatedAt.IsZero())

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	price := 12.0
	stock := false
	updated, err := s.Update(ctx, created.ID, model.BookPatch{Price: &price, InStock: &stock})
	require.NoError(t, err)
	require.Equal(t, 12.0, updated.Price)
	require.False(t, updated.InStock)
	require.Equal(t, "Neuromancer", updated.Title)

	require.NoError(t, s.Delete(ctx, created.ID))
	_, err = s.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, ErrBookNotFound)
	require.ErrorIs(t, s.Delete(ctx, created.ID), ErrBookNotFound)
}

func TestMemoryBookStoreListOrdersNewestFirst(t *testing.T) {
	s := NewMemoryBookStore()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := s.Create(ctx, model.Book{Title: title, Author: "a", Price: 1, Category: "c", InStock: true})
		require.NoError(t, err)
	}

	books, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	for i := 1; i < len(books); i++ {
		require.False(t, books[i].CreatedAt.After(books[i-1].CreatedAt))
	}
}

func TestMemoryUserStore(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	u := s.Add("admin@example.com", "hash")
	require.NotZero(t, u.ID)

	got, err := s.GetByUsername(ctx, "admin@example.com")
	require.NoError(t, err)
	require.Equal(t, u, got)

	_, err = s.GetByUsername(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestValidBookID(t *testing.T) {
	require.True(t, ValidBookID(uuid.NewString()))
	require.True(t, ValidBookID("  "+uuid.NewString()+" ")) // surrounding whitespace tolerated
	require.False(t, ValidBookID("not-a-uuid"))
	require.False(t, ValidBookID(""))
	require.False(t, ValidBookID("1234"))
}
