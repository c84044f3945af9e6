package cancelreservation

import (
	"time"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

const (
	commandType = "CancelReservation"
)

// Command represents the intent to withdraw a reservation.
type Command struct {
	ReservationID core.ReservationIDString
	ItemID        core.ItemIDString
	HolderID      core.HolderIDString
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	reservationID core.ReservationIDString,
	itemID core.ItemIDString,
	holderID core.HolderIDString,
	occurredAt time.Time,
) Command {
	return Command{
		ReservationID: reservationID,
		ItemID:        itemID,
		HolderID:      holderID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
