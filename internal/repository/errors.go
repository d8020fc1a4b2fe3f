// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// error strings.
package repository

import "errors"

// ErrBookNotFound is returned when a well-formed identifier does not resolve
// to a stored book.  Handlers translate this into an HTTP 404 response.
var ErrBookNotFound = errors.New("book not found")

// ErrInvalidBookID is returned when an identifier does not have the store's
// identifier shape.  The lookup is never attempted; handlers translate this
// into an HTTP 400 response.
var ErrInvalidBookID = errors.New("invalid book id")

// ErrUserNotFound is returned when no credential record exists for a
// username.  The auth handler folds this into the generic invalid-credentials
// response so that usernames cannot be enumerated.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameExists is returned when seeding a credential that already
// exists.
var ErrUsernameExists = errors.New("username already exists")
