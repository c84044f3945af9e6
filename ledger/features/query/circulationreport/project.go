package circulationreport

import (
	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// ProjectCirculationReport implements the query logic to aggregate circulation activity.
// This is a pure function with no side effects - it takes the domain events of the
// reporting window and a query and returns the aggregated counters.
func ProjectCirculationReport(history core.DomainEvents, query Query) CirculationReport {
	report := CirculationReport{
		From:  query.From,
		Until: query.Until,
	}

	for _, event := range history {
		switch e := event.(type) {
		case core.ItemAddedToInventory:
			report.ItemsRegistered++

		case core.LoanIssued:
			report.LoansIssued++

		case core.LoanReturned:
			report.LoansReturned++

		case core.LoanRenewed:
			report.LoansRenewed++

		case core.ReservationPlaced:
			report.ReservationsPlaced++

		case core.ReservationPromoted:
			report.ReservationsPromoted++

		case core.ReservationCanceled:
			report.ReservationsCanceled++

		case core.FineAssessed:
			report.FinesAssessed++
			report.FineCentsAssessed += e.AmountCents

		case core.FinePaid:
			report.FinesPaid++
		}
	}

	return report
}

// BuildEventFilter creates the filter for querying all circulation events in the
// reporting window. No predicates are applied, the report spans every item and holder.
func BuildEventFilter(query Query) eventstore.Filter {
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
			core.FineAssessedEventType,
			core.FinePaidEventType,
		).
		OccurredBetween(query.From, query.Until).
		Finalize()
}
