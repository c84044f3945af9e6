package core

import (
	"time"
)

const FinePaidEventType = "FinePaid"

// FinePaid records that a holder settled a pending fine in full.
type FinePaid struct {
	FineID     FineIDString
	HolderID   HolderIDString
	OccurredAt OccurredAtTS
}

// BuildFinePaid creates a new FinePaid event.
func BuildFinePaid(
	fineID FineIDString,
	holderID HolderIDString,
	occurredAt time.Time,
) FinePaid {
	return FinePaid{
		FineID:     fineID,
		HolderID:   holderID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e FinePaid) EventType() string {
	return FinePaidEventType
}

// HasOccurredAt returns when the event occurred.
func (e FinePaid) HasOccurredAt() time.Time {
	return e.OccurredAt
}
