// Package cache provides a Redis-backed snapshot of the full book list.
// Only GET /books is cacheable in this service, so the cache stores the
// decoded record list under a single key instead of raw HTTP payloads.
// Every method is a no-op when the client is nil or the cache is disabled,
// so the service runs unchanged without Redis.
package cache

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/book-inventory/internal/config"
	"github.com/iliyamo/book-inventory/internal/model"
)

// BookList caches the result of listing all books.  Mutations must call
// Invalidate so readers never see a deleted or stale record for longer than
// the TTL.
type BookList struct {
	rdb *redis.Client
	cfg config.CacheConfig
}

// NewBookList builds a BookList cache.  A nil Redis client disables it.
func NewBookList(rdb *redis.Client, cfg config.CacheConfig) *BookList {
	return &BookList{rdb: rdb, cfg: cfg}
}

func (c *BookList) enabled() bool {
	return c != nil && c.rdb != nil && c.cfg.Enabled
}

func (c *BookList) key() string { return c.cfg.Prefix + ":all" }

// Get returns the cached list and true on a hit.  Decode failures are
// treated as misses; the corrupt entry is dropped.
func (c *BookList) Get(ctx context.Context) ([]model.Book, bool) {
	if !c.enabled() {
		return nil, false
	}
	bs, err := c.rdb.Get(ctx, c.key()).Bytes()
	if err != nil {
		return nil, false
	}
	var books []model.Book
	if err := json.Unmarshal(bs, &books); err != nil {
		log.Printf("book-cache: dropping undecodable entry: %v", err)
		_ = c.rdb.Del(ctx, c.key()).Err()
		return nil, false
	}
	return books, true
}

// Set stores the list with the configured TTL.  Failures are logged and
// ignored; the cache is best effort.
func (c *BookList) Set(ctx context.Context, books []model.Book) {
	if !c.enabled() {
		return
	}
	bs, err := json.Marshal(books)
	if err != nil {
		return
	}
	if err := c.rdb.SetEx(ctx, c.key(), bs, c.cfg.TTL).Err(); err != nil {
		log.Printf("book-cache: set failed: %v", err)
	}
}

// Invalidate drops the cached list after any mutation.
func (c *BookList) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Del(ctx, c.key()).Err(); err != nil {
		log.Printf("book-cache: invalidate failed: %v", err)
	}
}
