package models

// Session ties one BillState to an unguessable identifier.
// A session is owned by exactly one active user and is discarded when
// the user is done; nothing about it is durable.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// State is the bill owned by this session.
	State *BillState

	// CreatedAt is the Unix timestamp when the session was opened.
	CreatedAt int64
}
