package core

import (
	"time"
)

const ReservationPromotedEventType = "ReservationPromoted"

// ReservationPromoted records that a returned copy was earmarked for the
// oldest waiting reservation. The copy stays unavailable to other holders
// until the promoted holder claims it or cancels.
type ReservationPromoted struct {
	ReservationID ReservationIDString
	ItemID        ItemIDString
	HolderID      HolderIDString
	OccurredAt    OccurredAtTS
}

// BuildReservationPromoted creates a new ReservationPromoted event.
func BuildReservationPromoted(
	reservationID ReservationIDString,
	itemID ItemIDString,
	holderID HolderIDString,
	occurredAt time.Time,
) ReservationPromoted {
	return ReservationPromoted{
		ReservationID: reservationID,
		ItemID:        itemID,
		HolderID:      holderID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationPromoted) EventType() string {
	return ReservationPromotedEventType
}

// HasOccurredAt returns when the event occurred.
func (e ReservationPromoted) HasOccurredAt() time.Time {
	return e.OccurredAt
}
