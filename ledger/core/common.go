package core

import (
	"time"
)

// Instead of implementing full value objects, alias types and helper methods
// keep the event payloads scalar and the filter predicates cheap.

// ItemIDString represents a catalog item identifier.
type ItemIDString = string

// HolderIDString represents a holder (library user) identifier.
type HolderIDString = string

// LoanIDString represents a loan identifier.
type LoanIDString = string

// FineIDString represents a fine identifier.
type FineIDString = string

// ReservationIDString represents a reservation identifier.
type ReservationIDString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and
// microsecond precision, matching what the storage layer round-trips.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
