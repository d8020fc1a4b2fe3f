package model

import "time"

// User represents the single credential record used for login.  The
// password is stored as a bcrypt hash and is never serialized; there are no
// JSON tags on purpose, handlers define their own response shapes.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username (unique, email-shaped)
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
