package models

import (
	"errors"
	"strings"
)

const (
	// MaxMembers is the most people one bill can be split between.
	MaxMembers = 12

	// MaxNameLength is the longest allowed member name after trimming.
	MaxNameLength = 30
)

var (
	ErrEmptyName   = errors.New("name must not be empty")
	ErrNameTooLong = errors.New("name must be at most 30 characters")
)

// NormalizeName trims surrounding whitespace from a raw member name and
// validates the result. The returned name preserves the user's casing;
// uniqueness checks fold case separately (see SameName).
func NormalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

// SameName reports whether two member names refer to the same member.
// Member identity is case-insensitive on the normalized name.
func SameName(a, b string) bool {
	return strings.EqualFold(a, b)
}

// HasMember reports whether name matches a current member of the state.
func (s *BillState) HasMember(name string) bool {
	_, ok := s.CanonicalName(name)
	return ok
}

// CanonicalName resolves name to the member entry it matches, with the
// casing the member was added under. Assignments always store the
// canonical form so that share lookups are plain string matches.
func (s *BillState) CanonicalName(name string) (string, bool) {
	for _, m := range s.Members {
		if SameName(m, name) {
			return m, true
		}
	}
	return "", false
}
