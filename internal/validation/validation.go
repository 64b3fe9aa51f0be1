// Package validation derives the consistency warnings for a bill:
// members nobody assigned anything to, items nobody is paying for, and
// the reconciliation check against a user-supplied receipt total.
// Warnings never block a mutation; they guard against silently wrong
// splits by making the gaps visible.
package validation

import (
	"math"

	"tabsplit/internal/calculator"
	"tabsplit/internal/models"
)

// ReconciliationStatus classifies the receipt check.
type ReconciliationStatus string

const (
	// ReconciliationSkipped means no receipt subtotal was provided.
	ReconciliationSkipped ReconciliationStatus = "skipped"
	// ReconciliationMatch means computed subtotal + tax is within one
	// cent of the receipt.
	ReconciliationMatch ReconciliationStatus = "match"
	// ReconciliationMismatch means the receipt disagrees; Diff carries
	// computed minus receipt.
	ReconciliationMismatch ReconciliationStatus = "mismatch"
)

// Reconciliation is the result of comparing the computed taxed subtotal
// against the receipt.
type Reconciliation struct {
	Status ReconciliationStatus
	Diff   float64
}

// matchTolerance is the cent threshold shared with the engine's
// floating-point comparisons.
const matchTolerance = 0.01

// UnassignedMembers returns members, in display order, who appear in no
// item's assignment list.
func UnassignedMembers(state *models.BillState) []string {
	assigned := make(map[string]bool)
	for _, item := range state.Items {
		for _, name := range item.Assigned {
			assigned[name] = true
		}
	}

	var out []string
	for _, m := range state.Members {
		if !assigned[m] {
			out = append(out, m)
		}
	}
	return out
}

// UnassignedItems returns the names of items with an empty assignment
// list, in bill order.
func UnassignedItems(state *models.BillState) []string {
	var out []string
	for _, item := range state.Items {
		if len(item.Assigned) == 0 {
			out = append(out, item.Name)
		}
	}
	return out
}

// ReceiptReconciliation compares computed subtotal + tax against the
// user-supplied pre-tip receipt total. A zero receipt means the user
// never provided one and the check is skipped.
func ReceiptReconciliation(state *models.BillState) Reconciliation {
	if state.ReceiptSubtotal <= 0 {
		return Reconciliation{Status: ReconciliationSkipped}
	}
	diff := calculator.Subtotal(state) + state.Tax - state.ReceiptSubtotal
	if math.Abs(diff) < matchTolerance {
		return Reconciliation{Status: ReconciliationMatch, Diff: diff}
	}
	return Reconciliation{Status: ReconciliationMismatch, Diff: diff}
}

// AllocationGap is the cost that will never reach any member's total:
// subtotal minus the assigned pre-tax pool. Non-zero exactly when
// unassigned items exist, in which case the per-member totals cannot
// sum to the grand total.
func AllocationGap(state *models.BillState) float64 {
	return calculator.Subtotal(state) - calculator.TotalPreSplit(state)
}
