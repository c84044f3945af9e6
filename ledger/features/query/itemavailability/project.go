package itemavailability

import (
	"time"

	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// ProjectItemAvailability implements the query logic to determine the current
// circulation state of an item.
// This is a pure function with no side effects - it takes the current domain events and a query
// and returns the projected availability counters.
func ProjectItemAvailability(history core.DomainEvents, query Query) ItemAvailability {
	registered := false
	totalCopies := 0
	activeLoanDueDates := make(map[core.LoanIDString]time.Time)
	unclaimedPromotions := 0
	waiting := make(map[core.ReservationIDString]struct{})

	for _, event := range history {
		switch e := event.(type) {
		case core.ItemAddedToInventory:
			registered = true
			totalCopies = e.TotalCopies

		case core.LoanIssued:
			activeLoanDueDates[e.LoanID] = e.DueAt
			if e.ReservationID != "" {
				unclaimedPromotions--
			}

		case core.LoanRenewed:
			if _, ok := activeLoanDueDates[e.LoanID]; ok {
				activeLoanDueDates[e.LoanID] = e.DueAt
			}

		case core.LoanReturned:
			delete(activeLoanDueDates, e.LoanID)

		case core.ReservationPlaced:
			waiting[e.ReservationID] = struct{}{}

		case core.ReservationPromoted:
			delete(waiting, e.ReservationID)
			unclaimedPromotions++

		case core.ReservationCanceled:
			delete(waiting, e.ReservationID)
			if e.WasPromoted {
				unclaimedPromotions--
			}
		}
	}

	available := totalCopies - len(activeLoanDueDates) - unclaimedPromotions
	if available < 0 {
		available = 0
	}

	var earliestDueAt time.Time
	if available == 0 {
		for _, dueAt := range activeLoanDueDates {
			if earliestDueAt.IsZero() || dueAt.Before(earliestDueAt) {
				earliestDueAt = dueAt
			}
		}
	}

	return ItemAvailability{
		ItemID:          query.ItemID,
		Registered:      registered,
		TotalCopies:     totalCopies,
		AvailableCopies: available,
		QueueLength:     len(waiting),
		EarliestDueAt:   earliestDueAt,
	}
}

// BuildEventFilter creates the filter for querying events related to the specified item.
func BuildEventFilter(itemID core.ItemIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.ItemAddedToInventoryEventType,
			core.LoanIssuedEventType,
			core.LoanRenewedEventType,
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
