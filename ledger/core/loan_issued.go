package core

import (
	"time"
)

const LoanIssuedEventType = "LoanIssued"

// LoanIssued records that a copy of an item was lent to a holder.
// ReservationID is set when the loan fulfills a promoted reservation and
// empty otherwise.
type LoanIssued struct {
	LoanID        LoanIDString
	ItemID        ItemIDString
	HolderID      HolderIDString
	ReservationID ReservationIDString
	DueAt         time.Time
	OccurredAt    OccurredAtTS
}

// BuildLoanIssued creates a new LoanIssued event.
func BuildLoanIssued(
	loanID LoanIDString,
	itemID ItemIDString,
	holderID HolderIDString,
	reservationID ReservationIDString,
	dueAt time.Time,
	occurredAt time.Time,
) LoanIssued {
	return LoanIssued{
		LoanID:        loanID,
		ItemID:        itemID,
		HolderID:      holderID,
		ReservationID: reservationID,
		DueAt:         ToOccurredAt(dueAt),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanIssued) EventType() string {
	return LoanIssuedEventType
}

// HasOccurredAt returns when the event occurred.
func (e LoanIssued) HasOccurredAt() time.Time {
	return e.OccurredAt
}
