package calculator

import (
	"math"
	"testing"

	"tabsplit/internal/models"
)

const tolerance = 0.01

func TestSplits(t *testing.T) {
	tests := []struct {
		name         string
		state        *models.BillState
		validateFunc func(t *testing.T, splits map[string]*MemberSplit)
	}{
		{
			name: "shared pizza with tax and tip",
			state: &models.BillState{
				Members: []string{"Alice", "Bob"},
				Items: []models.BillItem{
					{Name: "Pizza", Cost: 20.0, Assigned: []string{"Alice", "Bob"}},
				},
				Tax: 2.0,
				Tip: 3.0,
			},
			validateFunc: func(t *testing.T, splits map[string]*MemberSplit) {
				// Each: pre-tax 10, tax+tip share (10/20)*5 = 2.50, total 12.50
				for _, person := range []string{"Alice", "Bob"} {
					split := splits[person]
					if math.Abs(split.PreTax-10.0) > tolerance {
						t.Errorf("%s pre-tax = %v, want 10.0", person, split.PreTax)
					}
					if math.Abs(split.TaxTip-2.5) > tolerance {
						t.Errorf("%s tax+tip = %v, want 2.5", person, split.TaxTip)
					}
					if math.Abs(split.Total-12.5) > tolerance {
						t.Errorf("%s total = %v, want 12.5", person, split.Total)
					}
				}
			},
		},
		{
			name: "uneven assignment allocates surcharge proportionally",
			state: &models.BillState{
				Members: []string{"Alice", "Bob"},
				Items: []models.BillItem{
					{Name: "Pizza", Cost: 20.0, Assigned: []string{"Alice", "Bob"}},
					{Name: "Salad", Cost: 10.0, Assigned: []string{"Alice"}},
				},
				Tax: 3.0,
			},
			validateFunc: func(t *testing.T, splits map[string]*MemberSplit) {
				// Alice: 10 + 10 = 20 pre-tax, tax 20*(3/30) = 2, total 22
				// Bob: 10 pre-tax, tax 1, total 11
				alice := splits["Alice"]
				if math.Abs(alice.PreTax-20.0) > tolerance {
					t.Errorf("Alice pre-tax = %v, want 20.0", alice.PreTax)
				}
				if math.Abs(alice.TaxTip-2.0) > tolerance {
					t.Errorf("Alice tax+tip = %v, want 2.0", alice.TaxTip)
				}
				if math.Abs(alice.Total-22.0) > tolerance {
					t.Errorf("Alice total = %v, want 22.0", alice.Total)
				}

				bob := splits["Bob"]
				if math.Abs(bob.PreTax-10.0) > tolerance {
					t.Errorf("Bob pre-tax = %v, want 10.0", bob.PreTax)
				}
				if math.Abs(bob.Total-11.0) > tolerance {
					t.Errorf("Bob total = %v, want 11.0", bob.Total)
				}
			},
		},
		{
			name: "no assigned cost means zero surcharge allocation",
			state: &models.BillState{
				Members: []string{"Alice", "Bob"},
				Items: []models.BillItem{
					{Name: "Drink", Cost: 6.0},
				},
				Tax: 2.0,
				Tip: 1.0,
			},
			validateFunc: func(t *testing.T, splits map[string]*MemberSplit) {
				for _, person := range []string{"Alice", "Bob"} {
					split := splits[person]
					if split.PreTax != 0 || split.TaxTip != 0 || split.Total != 0 {
						t.Errorf("%s split = %+v, want all zero", person, split)
					}
				}
			},
		},
		{
			name: "empty bill",
			state: &models.BillState{
				Members: []string{"Alice"},
			},
			validateFunc: func(t *testing.T, splits map[string]*MemberSplit) {
				if split := splits["Alice"]; split.Total != 0 {
					t.Errorf("Alice total = %v, want 0", split.Total)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits := Splits(tt.state)
			if len(splits) != len(tt.state.Members) {
				t.Fatalf("got %d splits, want %d", len(splits), len(tt.state.Members))
			}
			tt.validateFunc(t, splits)
		})
	}
}

func TestSplits_UnassignedItemCostDropped(t *testing.T) {
	// The cost of an item nobody is assigned to still counts in the
	// subtotal and grand total, but reaches no member's total. The sum
	// of member totals therefore falls short of the grand total by
	// exactly that cost plus its would-be surcharge share. Validation
	// surfaces this as a warning; it is intentional, not rounding.
	state := &models.BillState{
		Members: []string{"Alice", "Bob"},
		Items: []models.BillItem{
			{Name: "Pizza", Cost: 20.0, Assigned: []string{"Alice", "Bob"}},
			{Name: "Drink", Cost: 6.0},
		},
		Tax: 2.0,
		Tip: 3.0,
	}

	if got := Subtotal(state); math.Abs(got-26.0) > tolerance {
		t.Errorf("Subtotal = %v, want 26.0", got)
	}
	if got := GrandTotal(state); math.Abs(got-31.0) > tolerance {
		t.Errorf("GrandTotal = %v, want 31.0", got)
	}
	if got := TotalPreSplit(state); math.Abs(got-20.0) > tolerance {
		t.Errorf("TotalPreSplit = %v, want 20.0", got)
	}

	var sum float64
	for _, m := range state.Members {
		sum += FinalTotal(state, m)
	}
	// 20 assigned + 5 surcharge = 25; the drink's 6.00 is dropped.
	if math.Abs(sum-25.0) > tolerance {
		t.Errorf("sum of member totals = %v, want 25.0", sum)
	}
}

func TestSplits_SumMatchesGrandTotalWhenFullyAssigned(t *testing.T) {
	state := &models.BillState{
		Members: []string{"Alice", "Bob", "Charlie"},
		Items: []models.BillItem{
			{Name: "Pizza", Cost: 21.99, Assigned: []string{"Alice", "Bob", "Charlie"}},
			{Name: "Steak", Cost: 34.50, Assigned: []string{"Bob"}},
			{Name: "Wine", Cost: 18.25, Assigned: []string{"Alice", "Charlie"}},
		},
		Tax: 6.13,
		Tip: 14.90,
	}

	var sum float64
	for _, m := range state.Members {
		sum += FinalTotal(state, m)
	}
	if math.Abs(sum-GrandTotal(state)) > tolerance {
		t.Errorf("sum of member totals = %v, grand total = %v", sum, GrandTotal(state))
	}
}

func TestTaxTipShare_ZeroPool(t *testing.T) {
	state := &models.BillState{
		Members: []string{"Alice"},
		Tax:     5.0,
		Tip:     2.0,
	}
	if got := TaxTipShare(state, "Alice"); got != 0 {
		t.Errorf("TaxTipShare with empty pool = %v, want 0", got)
	}
}

func TestMemberPreTaxShare_CaseInsensitiveMember(t *testing.T) {
	state := &models.BillState{
		Members: []string{"Alice"},
		Items: []models.BillItem{
			{Name: "Pizza", Cost: 10.0, Assigned: []string{"Alice"}},
		},
	}
	if got := MemberPreTaxShare(state, "alice"); math.Abs(got-10.0) > tolerance {
		t.Errorf("MemberPreTaxShare(alice) = %v, want 10.0", got)
	}
}
