package cancelreservation

import (
	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// waitingReservation is one entry of the item's FIFO waitlist.
type waitingReservation struct {
	reservationID core.ReservationIDString
	holderID      core.HolderIDString
}

// state represents the current state projected from the event history.
type state struct {
	reservationStatus core.ReservationStatus
	waitingQueue      []waitingReservation
}

// Decide implements the business logic for canceling a reservation.
// This is a pure function with no side effects - it takes the current domain events and a command
// and returns the events that should be appended based on the business rules.
//
// Business Rules:
//
//	GIVEN: A reservation with ReservationID on item ItemID
//	WHEN: CancelReservation command is received
//	THEN: ReservationCanceled event is generated
//	AND: when the reservation was Promoted, the freed copy promotes the next
//	     waiting holder in the same atomic append
//	ERROR: NotFound if no reservation with this ReservationID was placed
//	ERROR: not cancelable if the reservation is already Fulfilled
//	IDEMPOTENCY: If the reservation is already Canceled, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.ItemID, command.ReservationID)

	switch s.reservationStatus {
	case "":
		return core.ErrorDecision(core.ErrReservationNotFound)

	case core.ReservationStatusCanceled:
		return core.IdempotentDecision()

	case core.ReservationStatusFulfilled:
		return core.ErrorDecision(core.ErrReservationNotCancelable)
	}

	wasPromoted := s.reservationStatus == core.ReservationStatusPromoted

	events := core.DomainEvents{
		core.BuildReservationCanceled(
			command.ReservationID,
			command.ItemID,
			command.HolderID,
			wasPromoted,
			command.OccurredAt,
		),
	}

	if wasPromoted && len(s.waitingQueue) > 0 {
		head := s.waitingQueue[0]
		events = append(events, core.BuildReservationPromoted(
			head.reservationID,
			command.ItemID,
			head.holderID,
			command.OccurredAt,
		))
	}

	return core.SuccessDecision(events[0], events[1:]...)
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, itemID core.ItemIDString, reservationID core.ReservationIDString) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.ReservationPlaced:
			if e.ItemID != itemID {
				continue
			}

			s.waitingQueue = append(s.waitingQueue, waitingReservation{
				reservationID: e.ReservationID,
				holderID:      e.HolderID,
			})

			if e.ReservationID == reservationID {
				s.reservationStatus = core.ReservationStatusWaiting
			}

		case core.ReservationPromoted:
			if e.ItemID != itemID {
				continue
			}

			s.waitingQueue = removeFromQueue(s.waitingQueue, e.ReservationID)

			if e.ReservationID == reservationID {
				s.reservationStatus = core.ReservationStatusPromoted
			}

		case core.ReservationCanceled:
			if e.ItemID != itemID {
				continue
			}

			s.waitingQueue = removeFromQueue(s.waitingQueue, e.ReservationID)

			if e.ReservationID == reservationID {
				s.reservationStatus = core.ReservationStatusCanceled
			}

		case core.LoanIssued:
			if e.ItemID == itemID && e.ReservationID == reservationID && e.ReservationID != "" {
				s.reservationStatus = core.ReservationStatusFulfilled
			}
		}
	}

	return s
}

func removeFromQueue(queue []waitingReservation, reservationID core.ReservationIDString) []waitingReservation {
	for i, entry := range queue {
		if entry.reservationID == reservationID {
			return append(queue[:i], queue[i+1:]...)
		}
	}

	return queue
}

// BuildEventFilter creates the filter for querying all events
// related to the specified item which are relevant for this feature/use-case.
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
