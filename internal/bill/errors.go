package bill

import "errors"

// Sentinel errors for rejected mutations. Every rejection is a
// user-input problem: the caller surfaces the message and the bill
// keeps its prior state.
var (
	ErrCapacityExceeded = errors.New("bill already has the maximum of 12 members")
	ErrDuplicateMember  = errors.New("a member with that name already exists")
	ErrUnknownMember    = errors.New("no such member on this bill")
	ErrInvalidItem      = errors.New("item requires a name and a non-negative cost")
	ErrItemNotFound     = errors.New("no item at that position")
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrMissingColumns   = errors.New("import requires Name and Cost columns")
	ErrMalformedRow     = errors.New("import row is malformed")
)
