package core

import (
	"time"
)

const ReservationCanceledEventType = "ReservationCanceled"

// ReservationCanceled records that a holder withdrew a waiting or promoted
// reservation. WasPromoted tells projections whether an earmarked copy is
// released back to availability.
type ReservationCanceled struct {
	ReservationID ReservationIDString
	ItemID        ItemIDString
	HolderID      HolderIDString
	WasPromoted   bool
	OccurredAt    OccurredAtTS
}

// BuildReservationCanceled creates a new ReservationCanceled event.
func BuildReservationCanceled(
	reservationID ReservationIDString,
	itemID ItemIDString,
	holderID HolderIDString,
	wasPromoted bool,
	occurredAt time.Time,
) ReservationCanceled {
	return ReservationCanceled{
		ReservationID: reservationID,
		ItemID:        itemID,
		HolderID:      holderID,
		WasPromoted:   wasPromoted,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationCanceled) EventType() string {
	return ReservationCanceledEventType
}

// HasOccurredAt returns when the event occurred.
func (e ReservationCanceled) HasOccurredAt() time.Time {
	return e.OccurredAt
}
