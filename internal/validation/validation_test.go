package validation

import (
	"math"
	"testing"

	"tabsplit/internal/models"
)

func TestUnassignedMembers(t *testing.T) {
	state := &models.BillState{
		Members: []string{"Alice", "Bob", "Charlie"},
		Items: []models.BillItem{
			{Name: "Pizza", Cost: 20.0, Assigned: []string{"Alice"}},
		},
	}

	got := UnassignedMembers(state)
	if len(got) != 2 || got[0] != "Bob" || got[1] != "Charlie" {
		t.Errorf("UnassignedMembers = %v, want [Bob Charlie]", got)
	}
}

func TestUnassignedMembers_NoneWhenAllAssigned(t *testing.T) {
	state := &models.BillState{
		Members: []string{"Alice", "Bob"},
		Items: []models.BillItem{
			{Name: "Pizza", Cost: 20.0, Assigned: []string{"Alice", "Bob"}},
		},
	}
	if got := UnassignedMembers(state); len(got) != 0 {
		t.Errorf("UnassignedMembers = %v, want empty", got)
	}
}

func TestUnassignedItems(t *testing.T) {
	state := &models.BillState{
		Members: []string{"Alice", "Bob"},
		Items: []models.BillItem{
			{Name: "Pizza", Cost: 20.0, Assigned: []string{"Alice", "Bob"}},
			{Name: "Drink", Cost: 6.0},
		},
	}

	got := UnassignedItems(state)
	if len(got) != 1 || got[0] != "Drink" {
		t.Errorf("UnassignedItems = %v, want [Drink]", got)
	}
}

func TestReceiptReconciliation(t *testing.T) {
	tests := []struct {
		name       string
		state      *models.BillState
		wantStatus ReconciliationStatus
		wantDiff   float64
	}{
		{
			name: "match",
			state: &models.BillState{
				Items:           []models.BillItem{{Name: "Pizza", Cost: 20.0}},
				Tax:             2.0,
				ReceiptSubtotal: 22.0,
			},
			wantStatus: ReconciliationMatch,
			wantDiff:   0.0,
		},
		{
			name: "mismatch reports signed diff",
			state: &models.BillState{
				Items:           []models.BillItem{{Name: "Pizza", Cost: 20.0}},
				Tax:             2.0,
				ReceiptSubtotal: 25.0,
			},
			wantStatus: ReconciliationMismatch,
			wantDiff:   -3.0,
		},
		{
			name: "sub-cent difference still matches",
			state: &models.BillState{
				Items:           []models.BillItem{{Name: "Pizza", Cost: 20.004}},
				Tax:             2.0,
				ReceiptSubtotal: 22.0,
			},
			wantStatus: ReconciliationMatch,
		},
		{
			name:       "skipped when no receipt provided",
			state:      &models.BillState{Items: []models.BillItem{{Name: "Pizza", Cost: 20.0}}},
			wantStatus: ReconciliationSkipped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ReceiptReconciliation(tt.state)
			if rec.Status != tt.wantStatus {
				t.Fatalf("status = %q, want %q", rec.Status, tt.wantStatus)
			}
			if tt.wantStatus == ReconciliationMismatch && math.Abs(rec.Diff-tt.wantDiff) > 0.001 {
				t.Errorf("diff = %v, want %v", rec.Diff, tt.wantDiff)
			}
		})
	}
}

func TestAllocationGap(t *testing.T) {
	state := &models.BillState{
		Members: []string{"Alice", "Bob"},
		Items: []models.BillItem{
			{Name: "Pizza", Cost: 20.0, Assigned: []string{"Alice", "Bob"}},
			{Name: "Drink", Cost: 6.0},
		},
	}
	if got := AllocationGap(state); math.Abs(got-6.0) > 0.001 {
		t.Errorf("AllocationGap = %v, want 6.0", got)
	}

	state.Items[1].Assigned = []string{"Bob"}
	if got := AllocationGap(state); got != 0 {
		t.Errorf("AllocationGap fully assigned = %v, want 0", got)
	}
}
