package queueposition

import (
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// QueuePosition represents the query result for one reservation.
//
// Position is the 1-based rank among waiting reservations in placement order
// and is 0 whenever the reservation is not waiting. Found is false when no
// reservation with the given ID was ever placed for the item.
type QueuePosition struct {
	ReservationID core.ReservationIDString
	ItemID        core.ItemIDString
	Found         bool
	Status        core.ReservationStatus
	Position      int
	QueueLength   int
}
