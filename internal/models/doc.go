// Package models defines the core domain models for Tabsplit.
//
// # Models
//
//   - BillState: everything one bill-splitting session knows: members,
//     line items, tax, tip, and an optional receipt subtotal
//   - BillItem: one purchased line item with a cost and assigned members
//   - Session: a uuid-keyed owner of exactly one BillState
//
// Members are identified by display name (strings, no user accounts).
// Names are trimmed and compared case-insensitively; see NormalizeName.
//
// # Design Principles
//
// 1. **No cached derived state**: totals, shares, and warnings are
// recomputed from BillState on demand (calculator and validation
// packages), so there is nothing to invalidate after a mutation.
// 2. **Shape only**: this package holds data and construction rules;
// every state transition lives in the bill package so its atomicity
// guarantees stay in one place.
// 3. **Avoid circular references**: items reference members by name, not
// by pointer, matching how the renderer and CSV import speak about them.
package models
