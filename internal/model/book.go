package model

import "time"

// Book represents a single inventory record as stored in the `books` table.
// The identifier is a store-assigned UUID string so that callers treat it as
// opaque; handlers never rely on database numbering.  JSON tags match the
// REST surface consumed by the client.
type Book struct {
	ID        string    `json:"id"`        // books.id (UUID, assigned on insert)
	Title     string    `json:"title"`     // books.title
	Author    string    `json:"author"`    // books.author
	Price     float64   `json:"price"`     // books.price
	Category  string    `json:"category"`  // books.category
	InStock   bool      `json:"inStock"`   // books.in_stock (default true)
	CreatedAt time.Time `json:"createdAt"` // books.created_at
	UpdatedAt time.Time `json:"updatedAt"` // books.updated_at
}

// BookPatch carries a partial update.  Nil fields are left untouched; set
// fields are validated with the same rules as creation before being merged.
type BookPatch struct {
	Title    *string
	Author   *string
	Price    *float64
	Category *string
	InStock  *bool
}
