package outstandingfines

import (
	"slices"

	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// ProjectOutstandingFines implements the query logic to determine a holder's pending fines.
// This is a pure function with no side effects - it takes the current domain events and a query
// and returns the projected state showing unpaid fines and their total.
func ProjectOutstandingFines(history core.DomainEvents, query Query) OutstandingFines {
	pending := make(map[core.FineIDString]*FineInfo)

	for _, event := range history {
		switch e := event.(type) {
		case core.FineAssessed:
			if e.HolderID == query.HolderID {
				pending[e.FineID] = &FineInfo{
					FineID:      e.FineID,
					LoanID:      e.LoanID,
					ItemID:      e.ItemID,
					AmountCents: e.AmountCents,
					OverdueDays: e.OverdueDays,
					Reason:      e.Reason,
					AssessedAt:  e.OccurredAt,
				}
			}

		case core.FinePaid:
			if e.HolderID == query.HolderID {
				delete(pending, e.FineID)
			}
		}
	}

	fines := make([]FineInfo, 0, len(pending))
	totalCents := int64(0)
	for _, finePtr := range pending {
		fines = append(fines, *finePtr)
		totalCents += finePtr.AmountCents
	}
	slices.SortFunc(fines, func(a, b FineInfo) int {
		return a.AssessedAt.Compare(b.AssessedAt)
	})

	return OutstandingFines{
		HolderID:   query.HolderID,
		Fines:      fines,
		TotalCents: totalCents,
		Count:      len(fines),
	}
}

// BuildEventFilter creates the filter for querying events related to the specified holder.
func BuildEventFilter(holderID core.HolderIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.FineAssessedEventType,
			core.FinePaidEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("HolderID", holderID),
		).
		Finalize()
}
