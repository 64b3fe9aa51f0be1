package service

import (
	"tabsplit/internal/calculator"
	"tabsplit/internal/models"
	"tabsplit/internal/validation"
)

// Snapshot is the full output surface of one session, rebuilt from
// BillState after every read or mutation: the current state, the
// computed totals, both per-member tables, and every warning banner.
type Snapshot struct {
	SessionID string     `json:"session_id"`
	Members   []string   `json:"members"`
	Items     []ItemView `json:"items"`

	Subtotal        float64 `json:"subtotal"`
	Tax             float64 `json:"tax"`
	Tip             float64 `json:"tip"`
	GrandTotal      float64 `json:"grand_total"`
	ReceiptSubtotal float64 `json:"receipt_subtotal,omitempty"`

	// MemberShares is ordered by member insertion order.
	MemberShares []MemberShareView `json:"member_shares"`

	Warnings WarningsView `json:"warnings"`
}

// ItemView is one bill item as rendered.
type ItemView struct {
	Index    int      `json:"index"`
	Name     string   `json:"name"`
	Cost     float64  `json:"cost"`
	Assigned []string `json:"assigned"`
}

// MemberShareView is one row of the per-member tables: the pre-tax
// share, the proportional tax+tip slice, and the final amount owed,
// with the per-item breakdown behind the pre-tax figure.
type MemberShareView struct {
	Member string          `json:"member"`
	PreTax float64         `json:"pre_tax"`
	TaxTip float64         `json:"tax_tip"`
	Total  float64         `json:"total"`
	Items  []ItemShareView `json:"items,omitempty"`
}

// ItemShareView is one member's slice of one item.
type ItemShareView struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// WarningsView collects the consistency warnings for the screen.
type WarningsView struct {
	// UnassignedMembers are members with no assigned items.
	UnassignedMembers []string `json:"unassigned_members,omitempty"`
	// UnassignedItems are items nobody is paying for. Their cost is
	// excluded from every member total (see AllocationGap).
	UnassignedItems []string `json:"unassigned_items,omitempty"`
	// AllocationGap is the unassigned cost that no member total will
	// ever include; non-zero means the member totals cannot sum to the
	// grand total.
	AllocationGap float64 `json:"allocation_gap,omitempty"`

	Reconciliation ReconciliationView `json:"reconciliation"`
}

// ReconciliationView reports the receipt check.
type ReconciliationView struct {
	Status string  `json:"status"`
	Diff   float64 `json:"diff,omitempty"`
}

// buildSnapshot recomputes every derived view from the state. Pure:
// calling it any number of times changes nothing.
func buildSnapshot(session *models.Session) *Snapshot {
	state := session.State

	items := make([]ItemView, len(state.Items))
	for i, item := range state.Items {
		items[i] = ItemView{
			Index:    i,
			Name:     item.Name,
			Cost:     item.Cost,
			Assigned: item.Assigned,
		}
	}

	splits := calculator.Splits(state)
	shares := make([]MemberShareView, 0, len(state.Members))
	for _, m := range state.Members {
		split := splits[m]
		view := MemberShareView{
			Member: m,
			PreTax: split.PreTax,
			TaxTip: split.TaxTip,
			Total:  split.Total,
		}
		for _, is := range split.Items {
			view.Items = append(view.Items, ItemShareView{Name: is.Name, Amount: is.Amount})
		}
		shares = append(shares, view)
	}

	rec := validation.ReceiptReconciliation(state)

	return &Snapshot{
		SessionID:       session.ID,
		Members:         state.Members,
		Items:           items,
		Subtotal:        calculator.Subtotal(state),
		Tax:             state.Tax,
		Tip:             state.Tip,
		GrandTotal:      calculator.GrandTotal(state),
		ReceiptSubtotal: state.ReceiptSubtotal,
		MemberShares:    shares,
		Warnings: WarningsView{
			UnassignedMembers: validation.UnassignedMembers(state),
			UnassignedItems:   validation.UnassignedItems(state),
			AllocationGap:     validation.AllocationGap(state),
			Reconciliation: ReconciliationView{
				Status: string(rec.Status),
				Diff:   rec.Diff,
			},
		},
	}
}
