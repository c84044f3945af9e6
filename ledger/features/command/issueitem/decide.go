package issueitem

import (
	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// state represents the current state projected from the event history.
type state struct {
	itemIsRegistered      bool
	totalCopies           int
	activeLoans           map[core.LoanIDString]core.HolderIDString
	unclaimedPromotions   map[core.ReservationIDString]core.HolderIDString
	loanWithThisIDExists  bool
	promotedReservationID core.ReservationIDString
}

// Decide implements the business logic to determine whether a copy should be lent to a holder.
// This is a pure function with no side effects - it takes the current domain events and a command
// and returns the events that should be appended based on the business rules.
//
// Business Rules:
//
//	GIVEN: An item with ItemID and a holder with HolderID
//	WHEN: IssueItem command is received
//	THEN: LoanIssued event is generated with DueAt = OccurredAt + loan period
//	ERROR: NotFound if the item is not registered
//	ERROR: DuplicateLoan if the holder already holds an unreturned loan of this item
//	ERROR: ItemUnavailable if no copy is free and none is earmarked for this holder
//	IDEMPOTENCY: If a loan with this LoanID was already issued, no event generated (no-op)
//
// A copy earmarked by a promoted reservation is claimable only by that holder;
// the resulting LoanIssued carries the ReservationID, marking it Fulfilled.
func Decide(history core.DomainEvents, command Command, policy core.CirculationPolicy) core.DecisionResult {
	s := project(history, command.ItemID, command.HolderID, command.LoanID)

	if !s.itemIsRegistered {
		return core.ErrorDecision(core.ErrItemNotFound)
	}

	if s.loanWithThisIDExists {
		return core.IdempotentDecision()
	}

	if s.holderHasActiveLoan(command.HolderID) {
		return core.ErrorDecision(core.ErrDuplicateLoan)
	}

	available := s.totalCopies - len(s.activeLoans) - len(s.unclaimedPromotions)
	if available < 0 || len(s.activeLoans)+len(s.unclaimedPromotions) > s.totalCopies {
		return core.ErrorDecision(core.ErrAvailabilityOutOfBounds)
	}

	reservationID := s.promotedReservationID
	if reservationID == "" && available == 0 {
		return core.ErrorDecision(core.ErrItemUnavailable)
	}

	return core.SuccessDecision(
		core.BuildLoanIssued(
			command.LoanID,
			command.ItemID,
			command.HolderID,
			reservationID,
			policy.DueDateFrom(command.OccurredAt),
			command.OccurredAt,
		),
	)
}

func (s state) holderHasActiveLoan(holderID core.HolderIDString) bool {
	for _, activeHolderID := range s.activeLoans {
		if activeHolderID == holderID {
			return true
		}
	}

	return false
}

// project builds the current state by replaying all events from the history.
func project(
	history core.DomainEvents,
	itemID core.ItemIDString,
	holderID core.HolderIDString,
	loanID core.LoanIDString,
) state {
	s := state{
		activeLoans:         make(map[core.LoanIDString]core.HolderIDString),
		unclaimedPromotions: make(map[core.ReservationIDString]core.HolderIDString),
	}

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

			s.activeLoans[e.LoanID] = e.HolderID

			if e.LoanID == loanID {
				s.loanWithThisIDExists = true
			}

			if e.ReservationID != "" {
				delete(s.unclaimedPromotions, e.ReservationID)

				if e.ReservationID == s.promotedReservationID {
					s.promotedReservationID = ""
				}
			}

		case core.LoanReturned:
			if e.ItemID == itemID {
				delete(s.activeLoans, e.LoanID)
			}

		case core.ReservationPromoted:
			if e.ItemID != itemID {
				continue
			}

			s.unclaimedPromotions[e.ReservationID] = e.HolderID

			if e.HolderID == holderID {
				s.promotedReservationID = e.ReservationID
			}

		case core.ReservationCanceled:
			if e.ItemID != itemID {
				continue
			}

			delete(s.unclaimedPromotions, e.ReservationID)

			if e.ReservationID == s.promotedReservationID {
				s.promotedReservationID = ""
			}
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
			core.ReservationPromotedEventType,
			core.ReservationCanceledEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("ItemID", itemID),
		).
		Finalize()
}
