package core

import (
	"time"
)

const FineAssessedEventType = "FineAssessed"

// FineAssessed records that an overdue return produced a fine. The amount is
// in integer cents and already capped by policy.
type FineAssessed struct {
	FineID      FineIDString
	LoanID      LoanIDString
	ItemID      ItemIDString
	HolderID    HolderIDString
	AmountCents int64
	OverdueDays int
	Reason      string
	OccurredAt  OccurredAtTS
}

// BuildFineAssessed creates a new FineAssessed event.
func BuildFineAssessed(
	fineID FineIDString,
	loanID LoanIDString,
	itemID ItemIDString,
	holderID HolderIDString,
	amountCents int64,
	overdueDays int,
	reason string,
	occurredAt time.Time,
) FineAssessed {
	return FineAssessed{
		FineID:      fineID,
		LoanID:      loanID,
		ItemID:      itemID,
		HolderID:    holderID,
		AmountCents: amountCents,
		OverdueDays: overdueDays,
		Reason:      reason,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e FineAssessed) EventType() string {
	return FineAssessedEventType
}

// HasOccurredAt returns when the event occurred.
func (e FineAssessed) HasOccurredAt() time.Time {
	return e.OccurredAt
}
