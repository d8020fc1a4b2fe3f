// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// Inventory event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// BookEvent is published whenever a book is created, updated or deleted.
// It contains enough information for downstream consumers to log or trigger
// notifications without querying the primary database.
type BookEvent struct {
	Action     string  `json:"action"`
	BookID     string  `json:"book_id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	ActorID    uint64  `json:"actor_id"`
	OccurredAt string  `json:"occurred_at"`
}
