package core

import (
	"time"
)

const LoanReturnedEventType = "LoanReturned"

// LoanReturned records that a holder returned their copy of an item.
type LoanReturned struct {
	LoanID     LoanIDString
	ItemID     ItemIDString
	HolderID   HolderIDString
	OccurredAt OccurredAtTS
}

// BuildLoanReturned creates a new LoanReturned event.
func BuildLoanReturned(
	loanID LoanIDString,
	itemID ItemIDString,
	holderID HolderIDString,
	occurredAt time.Time,
) LoanReturned {
	return LoanReturned{
		LoanID:     loanID,
		ItemID:     itemID,
		HolderID:   holderID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanReturned) EventType() string {
	return LoanReturnedEventType
}

// HasOccurredAt returns when the event occurred.
func (e LoanReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}
