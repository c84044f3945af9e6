package core

import (
	"errors"
	"fmt"
)

// The error taxonomy of the ledger. NotFound and Conflict are surfaced to the
// caller verbatim and never retried automatically; Invariant failures abort
// the decision and must never be masked as ordinary failures - they mean the
// per-item serialization was violated.

var (
	// ErrNotFound is the base error for unknown items, holders, loans, fines,
	// and reservations.
	ErrNotFound = errors.New("not found")

	// ErrConflict is the base error for business-rule violations. Every
	// rule-specific error below wraps it, so callers can match the class with
	// errors.Is(err, ErrConflict) and the rule with the specific sentinel.
	ErrConflict = errors.New("conflict")

	// ErrInvariantViolation is fatal: a derived counter or record left its
	// legal bounds. Never corrected silently.
	ErrInvariantViolation = errors.New("invariant violation")
)

var (
	ErrItemNotFound        = fmt.Errorf("item %w", ErrNotFound)
	ErrLoanNotFound        = fmt.Errorf("loan %w", ErrNotFound)
	ErrFineNotFound        = fmt.Errorf("fine %w", ErrNotFound)
	ErrReservationNotFound = fmt.Errorf("reservation %w", ErrNotFound)
)

var (
	// ErrItemUnavailable - issue requested but no copy is free.
	ErrItemUnavailable = fmt.Errorf("%w: no copy of the item is available", ErrConflict)

	// ErrDuplicateLoan - the holder already holds an unreturned loan of this item.
	ErrDuplicateLoan = fmt.Errorf("%w: holder already holds this item", ErrConflict)

	// ErrAlreadyOverdue - renewal requested after the due date passed.
	ErrAlreadyOverdue = fmt.Errorf("%w: loan is already overdue", ErrConflict)

	// ErrOutstandingFine - renewal requested while the holder has a pending fine.
	ErrOutstandingFine = fmt.Errorf("%w: holder has an outstanding fine", ErrConflict)

	// ErrRenewalLimitExceeded - the loan reached the policy's renewal maximum.
	ErrRenewalLimitExceeded = fmt.Errorf("%w: renewal limit exceeded", ErrConflict)

	// ErrAlreadyReturned - return requested for a loan that is already returned.
	ErrAlreadyReturned = fmt.Errorf("%w: loan is already returned", ErrConflict)

	// ErrItemAvailable - reservation requested while a copy is free; the holder
	// should issue directly.
	ErrItemAvailable = fmt.Errorf("%w: item has an available copy", ErrConflict)

	// ErrDuplicateReservation - the holder already has an open reservation for
	// this item.
	ErrDuplicateReservation = fmt.Errorf("%w: holder already has an open reservation for this item", ErrConflict)

	// ErrReservationNotCancelable - cancellation requested for a reservation
	// that is already fulfilled or canceled.
	ErrReservationNotCancelable = fmt.Errorf("%w: reservation is not cancelable", ErrConflict)

	// ErrItemAlreadyRegistered - re-registration with a different copy count.
	ErrItemAlreadyRegistered = fmt.Errorf("%w: item is already registered with a different copy count", ErrConflict)

	// ErrInvalidCopyCount - registration with fewer than one copy.
	ErrInvalidCopyCount = fmt.Errorf("%w: total copies must be at least 1", ErrConflict)
)

// ErrAvailabilityOutOfBounds reports the fatal 0 <= available <= total
// invariant break.
var ErrAvailabilityOutOfBounds = fmt.Errorf("%w: available copies out of bounds", ErrInvariantViolation)
