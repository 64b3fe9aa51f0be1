// Package service exposes bill-splitting sessions over a small
// HTTP/JSON surface. Each user action is one synchronous transaction:
// load the session, apply exactly one mutation, save, and return a
// freshly recomputed snapshot. There is no background work and no
// partial update is ever observable.
package service

import (
	"context"
	"io"
	"log/slog"

	"tabsplit/internal/bill"
	"tabsplit/internal/importer"
	"tabsplit/internal/models"
	"tabsplit/internal/storage"
)

// SessionService owns the mutation/recompute cycle for every session.
type SessionService struct {
	store storage.Store

	// maxImportRows caps one CSV import; zero means the importer default.
	maxImportRows int
}

// NewSessionService creates a SessionService with the given storage
// backend.
func NewSessionService(store storage.Store, maxImportRows int) *SessionService {
	return &SessionService{store: store, maxImportRows: maxImportRows}
}

// CreateSession opens a new session with an empty bill.
func (s *SessionService) CreateSession(ctx context.Context) (*Snapshot, error) {
	session := &models.Session{State: models.NewBillState()}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	slog.Info("Session created", "session_id", session.ID)
	return buildSnapshot(session), nil
}

// GetSnapshot returns the current state and all derived views.
func (s *SessionService) GetSnapshot(ctx context.Context, sessionID string) (*Snapshot, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return buildSnapshot(session), nil
}

// DeleteSession discards a session and its bill.
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	slog.Info("Session deleted", "session_id", sessionID)
	return nil
}

// apply runs one mutation against a session's bill and saves the
// session. The mutation either fully succeeds or returns an error
// having written nothing, so the saved state is always consistent.
func (s *SessionService) apply(ctx context.Context, sessionID string, mutate func(*models.BillState) error) (*Snapshot, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := mutate(session.State); err != nil {
		return nil, err
	}
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return buildSnapshot(session), nil
}

// AddMember adds a member to the bill.
func (s *SessionService) AddMember(ctx context.Context, sessionID, name string) (*Snapshot, error) {
	snap, err := s.apply(ctx, sessionID, func(state *models.BillState) error {
		return bill.AddMember(state, name)
	})
	if err != nil {
		slog.Warn("AddMember rejected", "session_id", sessionID, "error", err)
		return nil, err
	}
	slog.Info("Member added", "session_id", sessionID, "member", name)
	return snap, nil
}

// RemoveMember removes a member and prunes their item assignments.
func (s *SessionService) RemoveMember(ctx context.Context, sessionID, name string) (*Snapshot, error) {
	snap, err := s.apply(ctx, sessionID, func(state *models.BillState) error {
		return bill.RemoveMember(state, name)
	})
	if err != nil {
		slog.Warn("RemoveMember rejected", "session_id", sessionID, "error", err)
		return nil, err
	}
	slog.Info("Member removed", "session_id", sessionID, "member", name)
	return snap, nil
}

// AddItem appends a line item to the bill.
func (s *SessionService) AddItem(ctx context.Context, sessionID, name string, cost float64, assigned []string) (*Snapshot, error) {
	snap, err := s.apply(ctx, sessionID, func(state *models.BillState) error {
		return bill.AddItem(state, name, cost, assigned)
	})
	if err != nil {
		slog.Warn("AddItem rejected", "session_id", sessionID, "error", err)
		return nil, err
	}
	slog.Info("Item added", "session_id", sessionID, "item", name, "cost", cost)
	return snap, nil
}

// UpdateItem edits an item's name and cost in place.
func (s *SessionService) UpdateItem(ctx context.Context, sessionID string, index int, name string, cost float64) (*Snapshot, error) {
	return s.apply(ctx, sessionID, func(state *models.BillState) error {
		return bill.UpdateItem(state, index, name, cost)
	})
}

// RemoveItem deletes one item by position.
func (s *SessionService) RemoveItem(ctx context.Context, sessionID string, index int) (*Snapshot, error) {
	return s.apply(ctx, sessionID, func(state *models.BillState) error {
		return bill.RemoveItem(state, index)
	})
}

// SetItemAssignment replaces the assignee set for one item.
func (s *SessionService) SetItemAssignment(ctx context.Context, sessionID string, index int, members []string) (*Snapshot, error) {
	return s.apply(ctx, sessionID, func(state *models.BillState) error {
		return bill.SetItemAssignment(state, index, members)
	})
}

// SetTax sets the shared tax amount.
func (s *SessionService) SetTax(ctx context.Context, sessionID string, value float64) (*Snapshot, error) {
	return s.apply(ctx, sessionID, func(state *models.BillState) error {
		return bill.SetTax(state, value)
	})
}

// SetTip sets the shared tip amount.
func (s *SessionService) SetTip(ctx context.Context, sessionID string, value float64) (*Snapshot, error) {
	return s.apply(ctx, sessionID, func(state *models.BillState) error {
		return bill.SetTip(state, value)
	})
}

// SetReceiptSubtotal records the receipt total for reconciliation.
func (s *SessionService) SetReceiptSubtotal(ctx context.Context, sessionID string, value float64) (*Snapshot, error) {
	return s.apply(ctx, sessionID, func(state *models.BillState) error {
		return bill.SetReceiptSubtotal(state, value)
	})
}

// ImportCSV parses one CSV document and appends its rows as unassigned
// items. The whole import succeeds or the bill is untouched.
func (s *SessionService) ImportCSV(ctx context.Context, sessionID string, r io.Reader) (*Snapshot, error) {
	rows, err := importer.ParseCSV(r, s.maxImportRows)
	if err != nil {
		slog.Warn("Import rejected", "session_id", sessionID, "error", err)
		return nil, err
	}
	snap, err := s.apply(ctx, sessionID, func(state *models.BillState) error {
		return bill.ImportItems(state, rows)
	})
	if err != nil {
		slog.Warn("Import rejected", "session_id", sessionID, "error", err)
		return nil, err
	}
	slog.Info("Items imported", "session_id", sessionID, "rows", len(rows))
	return snap, nil
}
