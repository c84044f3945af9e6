package loanhistory

import (
	"slices"

	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// ProjectLoanHistory implements the query logic to reconstruct a holder's lending history.
// This is a pure function with no side effects - it takes the current domain events and a query
// and returns the projected state including both open and returned loans.
func ProjectLoanHistory(history core.DomainEvents, query Query) LoanHistory {
	records := make(map[core.LoanIDString]*LoanRecord)

	for _, event := range history {
		switch e := event.(type) {
		case core.LoanIssued:
			if e.HolderID == query.HolderID {
				records[e.LoanID] = &LoanRecord{
					LoanID:   e.LoanID,
					ItemID:   e.ItemID,
					IssuedAt: e.OccurredAt,
					DueAt:    e.DueAt,
				}
			}

		case core.LoanRenewed:
			if record, ok := records[e.LoanID]; ok {
				record.DueAt = e.DueAt
				record.RenewalCount = e.RenewalCount
			}

		case core.LoanReturned:
			if record, ok := records[e.LoanID]; ok {
				record.ReturnedAt = e.OccurredAt
			}

		case core.FineAssessed:
			if record, ok := records[e.LoanID]; ok {
				record.FineID = e.FineID
				record.FineCents = e.AmountCents
			}
		}
	}

	loans := make([]LoanRecord, 0, len(records))
	for _, recordPtr := range records {
		returned := !recordPtr.ReturnedAt.IsZero()
		recordPtr.Status = core.DeriveLoanStatus(recordPtr.DueAt, returned, query.AsOf)
		loans = append(loans, *recordPtr)
	}
	slices.SortFunc(loans, func(a, b LoanRecord) int {
		return a.IssuedAt.Compare(b.IssuedAt)
	})

	return LoanHistory{
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
			core.FineAssessedEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("HolderID", holderID),
		).
		Finalize()
}
