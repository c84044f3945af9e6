package currentloans

import (
	"slices"

	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// ProjectCurrentLoans implements the query logic to determine a holder's open loans.
// This is a pure function with no side effects - it takes the current domain events and a query
// and returns the projected state showing the loans currently held.
//
// Query Logic:
//
//	GIVEN: A holder with HolderID
//	WHEN: CurrentLoans query is executed
//	THEN: CurrentLoans struct is returned with the open lending state
//	INCLUDES: loan information (LoanID, ItemID, issue and due dates, renewal count, derived status)
//	EXCLUDES: loans that have been returned
func ProjectCurrentLoans(history core.DomainEvents, query Query) CurrentLoans {
	openLoans := make(map[core.LoanIDString]*LoanInfo)

	for _, event := range history {
		switch e := event.(type) {
		case core.LoanIssued:
			if e.HolderID == query.HolderID {
				openLoans[e.LoanID] = &LoanInfo{
					LoanID:   e.LoanID,
					ItemID:   e.ItemID,
					IssuedAt: e.OccurredAt,
					DueAt:    e.DueAt,
				}
			}

		case core.LoanRenewed:
			if loan, ok := openLoans[e.LoanID]; ok {
				loan.DueAt = e.DueAt
				loan.RenewalCount = e.RenewalCount
			}

		case core.LoanReturned:
			if e.HolderID == query.HolderID {
				delete(openLoans, e.LoanID)
			}
		}
	}

	loans := make([]LoanInfo, 0, len(openLoans))
	for _, loanPtr := range openLoans {
		loanPtr.Status = core.DeriveLoanStatus(loanPtr.DueAt, false, query.AsOf)
		loans = append(loans, *loanPtr)
	}
	slices.SortFunc(loans, func(a, b LoanInfo) int {
		return a.IssuedAt.Compare(b.IssuedAt)
	})

	return CurrentLoans{
		HolderID: query.HolderID,
		Loans:    loans,
		Count:    len(loans),
	}
}

// BuildEventFilter creates the filter for querying events related to the specified holder.
func BuildEventFilter(holderID core.HolderIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.LoanIssuedEventType,
			core.LoanRenewedEventType,
			core.LoanReturnedEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("HolderID", holderID),
		).
		Finalize()
}
