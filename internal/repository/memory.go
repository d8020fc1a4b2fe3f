package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/book-inventory/internal/model"
)

var _ BookStore = (*MemoryBookStore)(nil)

// MemoryBookStore is a mutex-guarded in-memory BookStore.  It backs the
// handler and client tests and doubles as a throwaway backend when no MySQL
// instance is around.
type MemoryBookStore struct {
	mu    sync.RWMutex
	books map[string]model.Book
}

func NewMemoryBookStore() *MemoryBookStore {
	return &MemoryBookStore{books: make(map[string]model.Book)}
}

func (s *MemoryBookStore) Create(_ context.Context, b model.Book) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now
	s.books[b.ID] = b
	return b, nil
}

func (s *MemoryBookStore) List(_ context.Context) ([]model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, b)
	}
	// Newest first, matching the SQL ordering.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryBookStore) GetByID(_ context.Context, id string) (model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[id]
	if !ok {
		return model.Book{}, ErrBookNotFound
	}
	return b, nil
}

func (s *MemoryBookStore) Update(_ context.Context, id string, patch model.BookPatch) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[id]
	if !ok {
		return model.Book{}, ErrBookNotFound
	}
	applyPatch(&b, patch)
	b.UpdatedAt = time.Now().UTC()
	s.books[id] = b
	return b, nil
}

func (s *MemoryBookStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[id]; !ok {
		return ErrBookNotFound
	}
	delete(s.books, id)
	return nil
}

// MemoryUserStore holds credential records in memory for tests.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]model.User
	next  uint64
}

var _ UserStore = (*MemoryUserStore)(nil)

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]model.User)}
}

// Add stores a credential record keyed by username and returns it.
func (s *MemoryUserStore) Add(username, passwordHash string) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	u := model.User{
		ID:           s.next,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	s.users[username] = u
	return u
}

func (s *MemoryUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return u, nil
}
