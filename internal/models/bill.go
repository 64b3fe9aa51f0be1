package models

// BillItem represents a single line item on a bill.
// Items can be shared among multiple members.
type BillItem struct {
	// Name is the description of the item (e.g., "Pizza", "Beer").
	Name string

	// Cost is the pre-tax price of this item. Never negative.
	Cost float64

	// Assigned is the list of member names who split this item equally.
	// Every entry must name a current member of the bill; the bill
	// package prunes this list whenever a member is removed.
	Assigned []string
}

// BillState is the complete state of one bill-splitting session.
// It carries no derived fields: subtotal, shares, and warnings are
// recomputed from it on every read.
type BillState struct {
	// Members is the ordered list of people splitting the bill.
	// Insertion order is the canonical display order. Names are unique
	// case-insensitively and never exceed MaxMembers entries.
	Members []string

	// Items are the line items on the bill, in entry order.
	Items []BillItem

	// Tax is the shared tax amount, allocated proportionally to each
	// member's pre-tax share. Never negative.
	Tax float64

	// Tip is the shared tip amount, allocated like Tax. Never negative.
	Tip float64

	// ReceiptSubtotal is the user-supplied pre-tip receipt total, used
	// only for the reconciliation check. Zero means "not provided".
	ReceiptSubtotal float64
}

// NewBillState returns an empty bill: no members, no items, zero tax
// and tip. One is created per session.
func NewBillState() *BillState {
	return &BillState{}
}
