package reserveitem

import (
	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// state represents the current state projected from the event history.
type state struct {
	itemIsRegistered         bool
	totalCopies              int
	activeLoanCount          int
	unclaimedPromotionCount  int
	reservationWithThisID    bool
	holderHasOpenReservation bool
}

// Decide implements the business logic for placing a reservation.
// This is a pure function with no side effects - it takes the current domain events and a command
// and returns the events that should be appended based on the business rules.
//
// Business Rules:
//
//	GIVEN: An item with ItemID and a holder with HolderID
//	WHEN: ReserveItem command is received
//	THEN: ReservationPlaced event is generated, appended to the FIFO waitlist
//	ERROR: NotFound if the item is not registered
//	ERROR: ItemAvailable if a free copy exists - the holder should issue directly
//	ERROR: DuplicateReservation if the holder is already Waiting or Promoted for this item
//	IDEMPOTENCY: If a reservation with this ReservationID exists, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.ItemID, command.HolderID, command.ReservationID)

	if !s.itemIsRegistered {
		return core.ErrorDecision(core.ErrItemNotFound)
	}

	if s.reservationWithThisID {
		return core.IdempotentDecision()
	}

	if s.holderHasOpenReservation {
		return core.ErrorDecision(core.ErrDuplicateReservation)
	}

	available := s.totalCopies - s.activeLoanCount - s.unclaimedPromotionCount
	if available < 0 || s.activeLoanCount+s.unclaimedPromotionCount > s.totalCopies {
		return core.ErrorDecision(core.ErrAvailabilityOutOfBounds)
	}

	if available > 0 {
		return core.ErrorDecision(core.ErrItemAvailable)
	}

	return core.SuccessDecision(
		core.BuildReservationPlaced(
			command.ReservationID,
			command.ItemID,
			command.HolderID,
			command.OccurredAt,
		),
	)
}

// project builds the current state by replaying all events from the history.
func project(
	history core.DomainEvents,
	itemID core.ItemIDString,
	holderID core.HolderIDString,
	reservationID core.ReservationIDString,
) state {
	s := state{}
	openReservations := make(map[core.ReservationIDString]core.HolderIDString)

	for _, event := range history {
		switch e := event.(type) {
		case core.ItemAddedToInventory:
			if e.ItemID == itemID {
				s.itemIsRegistered = true
				s.totalCopies = e.TotalCopies
			}

		case core.LoanIssued:
			if e.ItemID != itemID {
				continue
			}

			s.activeLoanCount++

			// Claiming an earmarked copy closes the reservation as Fulfilled.
			if e.ReservationID != "" {
				delete(openReservations, e.ReservationID)
				s.unclaimedPromotionCount--
			}

		case core.LoanReturned:
			if e.ItemID == itemID {
				s.activeLoanCount--
			}

		case core.ReservationPlaced:
			if e.ItemID != itemID {
				continue
			}

			openReservations[e.ReservationID] = e.HolderID

			if e.ReservationID == reservationID {
				s.reservationWithThisID = true
			}

		case core.ReservationPromoted:
			if e.ItemID == itemID {
				s.unclaimedPromotionCount++
			}

		case core.ReservationCanceled:
			if e.ItemID != itemID {
				continue
			}

			delete(openReservations, e.ReservationID)

			if e.WasPromoted {
				s.unclaimedPromotionCount--
			}
		}
	}

	for _, openHolderID := range openReservations {
		if openHolderID == holderID {
			s.holderHasOpenReservation = true
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying all events
// related to the specified item which are relevant for this feature/use-case.
func BuildEventFilter(itemID core.ItemIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.ItemAddedToInventoryEventType,
			core.LoanIssuedEventType,
			core.LoanReturnedEventType,
			core.ReservationPlacedEventType,
			core.ReservationPromotedEventType,
			core.ReservationCanceledEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("ItemID", itemID),
		).
		Finalize()
}
