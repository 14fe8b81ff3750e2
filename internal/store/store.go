// Package store provides database access for all Pressroom entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
// Every mutation runs inside its own transaction, so a call either
// fully applies or leaves the database unchanged.
package store

// DeleteOutcome is the discriminated result of deleting a record that
// other rows may reference. Callers branch on the outcome instead of
// pattern-matching database error strings.
type DeleteOutcome int

const (
	// Deleted means the row was removed.
	Deleted DeleteOutcome = iota
	// BlockedByDependents means the delete was refused because dependent
	// rows still reference the target. The transaction was rolled back.
	BlockedByDependents
)

// foreignKeyViolation is the PostgreSQL SQLSTATE for a foreign-key
// constraint violation (class 23, integrity constraint violation).
const foreignKeyViolation = "23503"
