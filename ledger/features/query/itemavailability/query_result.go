package itemavailability

import (
	"time"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// ItemAvailability represents the query result describing the current
// circulation state of an item.
//
// AvailableCopies is the number of copies that could be issued to a walk-up
// holder right now: total copies minus active loans minus promotion earmarks
// that have not been claimed yet. EarliestDueAt is the due date of the active
// loan expiring soonest and is only populated while no copy is available; it
// is the zero time otherwise.
type ItemAvailability struct {
	ItemID          core.ItemIDString
	Registered      bool
	TotalCopies     int
	AvailableCopies int
	QueueLength     int
	EarliestDueAt   time.Time
}
