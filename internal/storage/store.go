// Package storage provides the abstraction for session storage.
package storage

import (
	"context"
	"errors"

	"tabsplit/internal/models"
)

// ErrSessionNotFound is returned when a session ID matches nothing,
// either because it never existed or because it was discarded.
var ErrSessionNotFound = errors.New("session not found")

// Store defines the interface for session storage operations.
// This abstraction allows swapping backends without changing the
// service layer; the in-scope implementation is in-memory only, since
// a bill lives no longer than the session that owns it.
type Store interface {
	// CreateSession registers a new session. The session.ID and
	// CreatedAt fields will be populated by the store.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session by its ID.
	// Returns ErrSessionNotFound if it does not exist.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// SaveSession writes back a mutated session.
	// Returns ErrSessionNotFound if it does not exist.
	SaveSession(ctx context.Context, session *models.Session) error

	// DeleteSession discards a session and its bill.
	DeleteSession(ctx context.Context, sessionID string) error

	// Close releases any resources held by the store.
	Close() error
}
