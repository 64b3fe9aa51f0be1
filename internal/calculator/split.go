// Package calculator is the allocation engine: pure functions from a
// BillState to totals and per-member shares. Nothing here mutates the
// state or caches results, so callers can recompute after every
// mutation without invalidation logic.
package calculator

import "tabsplit/internal/models"

// ItemShare is one member's slice of a single item.
type ItemShare struct {
	Name   string
	Amount float64 // this member's share of the item
}

// MemberSplit is the calculated split for one member.
type MemberSplit struct {
	// PreTax is the sum of this member's equal shares of assigned items.
	PreTax float64

	// TaxTip is this member's proportional slice of tax plus tip:
	// PreTax / totalPreSplit × (tax + tip).
	TaxTip float64

	// Total is the final amount owed: PreTax + TaxTip.
	Total float64

	// Items are the item shares that make up PreTax, in bill order.
	Items []ItemShare
}

// Subtotal is the sum of all item costs, assigned or not.
func Subtotal(state *models.BillState) float64 {
	var sum float64
	for _, item := range state.Items {
		sum += item.Cost
	}
	return sum
}

// GrandTotal is the subtotal plus tax and tip.
func GrandTotal(state *models.BillState) float64 {
	return Subtotal(state) + state.Tax + state.Tip
}

// MemberPreTaxShare is one member's pre-tax share: for each item they
// are assigned to, cost divided equally among that item's assignees.
// Equal split is the only policy; there are no weights.
func MemberPreTaxShare(state *models.BillState, member string) float64 {
	var sum float64
	for _, item := range state.Items {
		if len(item.Assigned) == 0 {
			continue
		}
		for _, a := range item.Assigned {
			if models.SameName(a, member) {
				sum += item.Cost / float64(len(item.Assigned))
				break
			}
		}
	}
	return sum
}

// TotalPreSplit is the sum of every member's pre-tax share. It equals
// Subtotal only when every item has at least one assignee: the cost of
// an unassigned item is excluded here and is never allocated to anyone.
// Validation surfaces that gap as a warning.
func TotalPreSplit(state *models.BillState) float64 {
	var sum float64
	for _, item := range state.Items {
		if len(item.Assigned) > 0 {
			sum += item.Cost
		}
	}
	return sum
}

// TaxTipShare is the member's proportional slice of tax plus tip.
// When nobody has any assigned cost yet the allocation is zero, not a
// division by zero.
func TaxTipShare(state *models.BillState, member string) float64 {
	pool := TotalPreSplit(state)
	if pool == 0 {
		return 0
	}
	return MemberPreTaxShare(state, member) / pool * (state.Tax + state.Tip)
}

// FinalTotal is the amount one member owes: pre-tax share plus their
// slice of tax and tip.
func FinalTotal(state *models.BillState, member string) float64 {
	return MemberPreTaxShare(state, member) + TaxTipShare(state, member)
}

// Splits computes every member's MemberSplit in one pass, keyed by
// member name. When every item has at least one assignee, the totals
// sum to GrandTotal within floating-point tolerance.
func Splits(state *models.BillState) map[string]*MemberSplit {
	splits := make(map[string]*MemberSplit, len(state.Members))
	for _, m := range state.Members {
		splits[m] = &MemberSplit{}
	}

	for _, item := range state.Items {
		if len(item.Assigned) == 0 {
			continue
		}
		perPerson := item.Cost / float64(len(item.Assigned))
		for _, member := range item.Assigned {
			split, ok := splits[member]
			if !ok {
				continue
			}
			split.PreTax += perPerson
			split.Items = append(split.Items, ItemShare{Name: item.Name, Amount: perPerson})
		}
	}

	pool := TotalPreSplit(state)
	surcharge := state.Tax + state.Tip
	for _, split := range splits {
		if pool > 0 {
			split.TaxTip = split.PreTax / pool * surcharge
		}
		split.Total = split.PreTax + split.TaxTip
	}

	return splits
}
