// Package bill implements the mutation operations over a BillState.
//
// Every operation is atomic from the caller's point of view: all
// validation happens before the first write, so a returned error means
// the state is exactly as it was. The one cross-entity invariant (item
// assignments only ever name current members) is enforced here, on
// every member removal and every assignment write.
package bill

import (
	"fmt"
	"math"

	"tabsplit/internal/models"
)

// AddMember appends a new member to the bill.
// The raw name is trimmed and validated; identity is case-insensitive,
// so "alice" and "Alice" cannot coexist.
func AddMember(state *models.BillState, rawName string) error {
	name, err := models.NormalizeName(rawName)
	if err != nil {
		return err
	}
	if len(state.Members) >= models.MaxMembers {
		return ErrCapacityExceeded
	}
	if state.HasMember(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateMember, name)
	}
	state.Members = append(state.Members, name)
	return nil
}

// RemoveMember removes a member and prunes them from every item's
// assignment list, so no item ever references a departed member.
func RemoveMember(state *models.BillState, name string) error {
	idx := -1
	for i, m := range state.Members {
		if models.SameName(m, name) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownMember, name)
	}
	state.Members = append(state.Members[:idx], state.Members[idx+1:]...)

	for i := range state.Items {
		item := &state.Items[i]
		kept := item.Assigned[:0]
		for _, a := range item.Assigned {
			if state.HasMember(a) {
				kept = append(kept, a)
			}
		}
		item.Assigned = kept
	}
	return nil
}

// AddItem appends a line item. The assigned list is filtered down to
// current members; unknown names are silently dropped at add time
// (assignments set later go through SetItemAssignment, which rejects
// unknown names instead).
func AddItem(state *models.BillState, name string, cost float64, assigned []string) error {
	if err := validateItem(name, cost); err != nil {
		return err
	}
	var filtered []string
	seen := make(map[string]bool, len(assigned))
	for _, a := range assigned {
		canonical, ok := state.CanonicalName(a)
		if !ok || seen[canonical] {
			continue
		}
		seen[canonical] = true
		filtered = append(filtered, canonical)
	}
	state.Items = append(state.Items, models.BillItem{
		Name:     name,
		Cost:     cost,
		Assigned: filtered,
	})
	return nil
}

// UpdateItem edits an item's name and cost in place. The same rules as
// AddItem apply; assignments are untouched.
func UpdateItem(state *models.BillState, index int, name string, cost float64) error {
	if index < 0 || index >= len(state.Items) {
		return ErrItemNotFound
	}
	if err := validateItem(name, cost); err != nil {
		return err
	}
	state.Items[index].Name = name
	state.Items[index].Cost = cost
	return nil
}

// RemoveItem deletes one item by position. No cascading effects.
func RemoveItem(state *models.BillState, index int) error {
	if index < 0 || index >= len(state.Items) {
		return ErrItemNotFound
	}
	state.Items = append(state.Items[:index], state.Items[index+1:]...)
	return nil
}

// SetItemAssignment replaces the assigned member set for one item.
// Unlike AddItem's filter, a stale or misspelled name here is an error:
// the caller picked it from a list, so an unknown name means the list
// was out of date.
func SetItemAssignment(state *models.BillState, index int, memberNames []string) error {
	if index < 0 || index >= len(state.Items) {
		return ErrItemNotFound
	}
	assigned := make([]string, 0, len(memberNames))
	seen := make(map[string]bool, len(memberNames))
	for _, name := range memberNames {
		canonical, ok := state.CanonicalName(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownMember, name)
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		assigned = append(assigned, canonical)
	}
	state.Items[index].Assigned = assigned
	return nil
}

// SetTax sets the shared tax amount.
func SetTax(state *models.BillState, value float64) error {
	if err := validateAmount(value); err != nil {
		return err
	}
	state.Tax = value
	return nil
}

// SetTip sets the shared tip amount.
func SetTip(state *models.BillState, value float64) error {
	if err := validateAmount(value); err != nil {
		return err
	}
	state.Tip = value
	return nil
}

// SetReceiptSubtotal records the user-supplied pre-tip receipt total.
// Zero clears it ("not provided").
func SetReceiptSubtotal(state *models.BillState, value float64) error {
	if err := validateAmount(value); err != nil {
		return err
	}
	state.ReceiptSubtotal = value
	return nil
}

// ItemRow is one externally-parsed row of a tabular import source.
type ItemRow struct {
	Name string
	Cost float64
}

// ImportItems appends one unassigned item per row. Rows pass the same
// validation as manual entry; the first bad row fails the whole import
// and leaves the bill unchanged. There is no partial import.
func ImportItems(state *models.BillState, rows []ItemRow) error {
	for i, row := range rows {
		if err := validateItem(row.Name, row.Cost); err != nil {
			return fmt.Errorf("%w: row %d: %v", ErrMalformedRow, i+1, err)
		}
	}
	for _, row := range rows {
		state.Items = append(state.Items, models.BillItem{
			Name: row.Name,
			Cost: row.Cost,
		})
	}
	return nil
}

func validateItem(name string, cost float64) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidItem)
	}
	if cost < 0 || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return fmt.Errorf("%w: cost %v", ErrInvalidItem, cost)
	}
	return nil
}

func validateAmount(value float64) error {
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %v", ErrNegativeAmount, value)
	}
	return nil
}
