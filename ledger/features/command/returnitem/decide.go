package returnitem

import (
	"time"

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
	loanIsIssued   bool
	loanIsReturned bool
	dueAt          time.Time
	waitingQueue   []waitingReservation
}

// Decide implements the business logic for returning a lent copy.
// This is a pure function with no side effects - it takes the current domain events and a command
// and returns the events that should be appended based on the business rules.
//
// Business Rules:
//
//	GIVEN: A loan with LoanID on item ItemID
//	WHEN: ReturnItem command is received
//	THEN: LoanReturned event is generated
//	AND: FineAssessed event when the return is overdue by at least one whole day
//	AND: ReservationPromoted event for the waitlist head when one is waiting
//	ERROR: NotFound if no loan with this LoanID was issued
//	ERROR: AlreadyReturned if the loan is already returned
//
// All generated events commit in one atomic append, so a concurrent return of
// the same loan observes the LoanReturned event and fails with AlreadyReturned.
func Decide(history core.DomainEvents, command Command, policy core.CirculationPolicy) core.DecisionResult {
	s := project(history, command.ItemID, command.LoanID)

	if !s.loanIsIssued {
		return core.ErrorDecision(core.ErrLoanNotFound)
	}

	if s.loanIsReturned {
		return core.ErrorDecision(core.ErrAlreadyReturned)
	}

	events := core.DomainEvents{
		core.BuildLoanReturned(
			command.LoanID,
			command.ItemID,
			command.HolderID,
			command.OccurredAt,
		),
	}

	overdueDays, amountCents := policy.Settle(s.dueAt, command.OccurredAt)
	if amountCents > 0 {
		events = append(events, core.BuildFineAssessed(
			command.FineID,
			command.LoanID,
			command.ItemID,
			command.HolderID,
			amountCents,
			overdueDays,
			core.FineReasonOverdueReturn,
			command.OccurredAt,
		))
	}

	if len(s.waitingQueue) > 0 {
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
func project(history core.DomainEvents, itemID core.ItemIDString, loanID core.LoanIDString) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.LoanIssued:
			if e.ItemID == itemID && e.LoanID == loanID {
				s.loanIsIssued = true
				s.dueAt = e.DueAt
			}

		case core.LoanRenewed:
			if e.ItemID == itemID && e.LoanID == loanID {
				s.dueAt = e.DueAt
			}

		case core.LoanReturned:
			if e.ItemID == itemID && e.LoanID == loanID {
				s.loanIsReturned = true
			}

		case core.ReservationPlaced:
			if e.ItemID == itemID {
				s.waitingQueue = append(s.waitingQueue, waitingReservation{
					reservationID: e.ReservationID,
					holderID:      e.HolderID,
				})
			}

		case core.ReservationPromoted:
			if e.ItemID == itemID {
				s.waitingQueue = removeFromQueue(s.waitingQueue, e.ReservationID)
			}

		case core.ReservationCanceled:
			if e.ItemID == itemID {
				s.waitingQueue = removeFromQueue(s.waitingQueue, e.ReservationID)
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
			core.LoanRenewedEventType,
			core.LoanReturnedEventType,
			core.FineAssessedEventType,
			core.ReservationPlacedEventType,
			core.ReservationPromotedEventType,
			core.ReservationCanceledEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("ItemID", itemID),
		).
		Finalize()
}
