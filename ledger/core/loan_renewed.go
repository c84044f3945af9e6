package core

import (
	"time"
)

const LoanRenewedEventType = "LoanRenewed"

// LoanRenewed records that a loan's due date was extended. RenewalCount is the
// total number of renewals after this one.
type LoanRenewed struct {
	LoanID       LoanIDString
	ItemID       ItemIDString
	HolderID     HolderIDString
	DueAt        time.Time
	RenewalCount int
	OccurredAt   OccurredAtTS
}

// BuildLoanRenewed creates a new LoanRenewed event.
func BuildLoanRenewed(
	loanID LoanIDString,
	itemID ItemIDString,
	holderID HolderIDString,
	dueAt time.Time,
	renewalCount int,
	occurredAt time.Time,
) LoanRenewed {
	return LoanRenewed{
		LoanID:       loanID,
		ItemID:       itemID,
		HolderID:     holderID,
		DueAt:        ToOccurredAt(dueAt),
		RenewalCount: renewalCount,
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanRenewed) EventType() string {
	return LoanRenewedEventType
}

// HasOccurredAt returns when the event occurred.
func (e LoanRenewed) HasOccurredAt() time.Time {
	return e.OccurredAt
}
