package core

import (
	"time"
)

const ReservationPlacedEventType = "ReservationPlaced"

// ReservationPlaced records that a holder joined the waiting queue of a fully
// lent-out item. Queue position is derived from event order, not stored.
type ReservationPlaced struct {
	ReservationID ReservationIDString
	ItemID        ItemIDString
	HolderID      HolderIDString
	OccurredAt    OccurredAtTS
}

// BuildReservationPlaced creates a new ReservationPlaced event.
func BuildReservationPlaced(
	reservationID ReservationIDString,
	itemID ItemIDString,
	holderID HolderIDString,
	occurredAt time.Time,
) ReservationPlaced {
	return ReservationPlaced{
		ReservationID: reservationID,
		ItemID:        itemID,
		HolderID:      holderID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationPlaced) EventType() string {
	return ReservationPlacedEventType
}

// HasOccurredAt returns when the event occurred.
func (e ReservationPlaced) HasOccurredAt() time.Time {
	return e.OccurredAt
}
