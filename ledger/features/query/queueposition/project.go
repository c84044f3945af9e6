package queueposition

import (
	"slices"

	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// ProjectQueuePosition implements the query logic to determine a reservation's
// standing in its item's FIFO queue.
// This is a pure function with no side effects - it takes the current domain events and a query
// and returns the projected position or terminal status.
func ProjectQueuePosition(history core.DomainEvents, query Query) QueuePosition {
	waitingOrder := make([]core.ReservationIDString, 0, 8)
	found := false
	status := core.ReservationStatus("")

	removeFromQueue := func(reservationID core.ReservationIDString) {
		waitingOrder = slices.DeleteFunc(waitingOrder, func(id core.ReservationIDString) bool {
			return id == reservationID
		})
	}

	for _, event := range history {
		switch e := event.(type) {
		case core.ReservationPlaced:
			waitingOrder = append(waitingOrder, e.ReservationID)
			if e.ReservationID == query.ReservationID {
				found = true
				status = core.ReservationStatusWaiting
			}

		case core.ReservationPromoted:
			removeFromQueue(e.ReservationID)
			if e.ReservationID == query.ReservationID {
				status = core.ReservationStatusPromoted
			}

		case core.ReservationCanceled:
			removeFromQueue(e.ReservationID)
			if e.ReservationID == query.ReservationID {
				status = core.ReservationStatusCanceled
			}

		case core.LoanIssued:
			if e.ReservationID != "" && e.ReservationID == query.ReservationID {
				status = core.ReservationStatusFulfilled
			}
		}
	}

	position := 0
	if status == core.ReservationStatusWaiting {
		if idx := slices.Index(waitingOrder, query.ReservationID); idx >= 0 {
			position = idx + 1
		}
	}

	return QueuePosition{
		ReservationID: query.ReservationID,
		ItemID:        query.ItemID,
		Found:         found,
		Status:        status,
		Position:      position,
		QueueLength:   len(waitingOrder),
	}
}

// BuildEventFilter creates the filter for querying events related to the specified item.
func BuildEventFilter(itemID core.ItemIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.LoanIssuedEventType,
			core.ReservationPlacedEventType,
			core.ReservationPromotedEventType,
			core.ReservationCanceledEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("ItemID", itemID),
		).
		Finalize()
}
