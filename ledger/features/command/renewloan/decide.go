package renewloan

import (
	"time"

	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// state represents the current state projected from the event history.
type state struct {
	loanIsIssued     bool
	loanIsReturned   bool
	dueAt            time.Time
	renewalCount     int
	pendingFineCount int
}

// Decide implements the business logic for renewing a loan.
// This is a pure function with no side effects - it takes the current domain events and a command
// and returns the events that should be appended based on the business rules.
//
// Business Rules:
//
//	GIVEN: A loan with LoanID held by HolderID
//	WHEN: RenewLoan command is received
//	THEN: LoanRenewed event is generated with DueAt extended by one loan period
//	ERROR: NotFound if no loan with this LoanID was issued
//	ERROR: AlreadyReturned if the loan is already returned
//	ERROR: AlreadyOverdue if the due date has passed, regardless of fine status
//	ERROR: OutstandingFine if the holder has any pending fine on any loan
//	ERROR: RenewalLimitExceeded if the renewal count reached the policy maximum
//
// Renewal never changes the loan's holder or its returned state.
func Decide(history core.DomainEvents, command Command, policy core.CirculationPolicy) core.DecisionResult {
	s := project(history, command.LoanID, command.HolderID)

	if !s.loanIsIssued {
		return core.ErrorDecision(core.ErrLoanNotFound)
	}

	if s.loanIsReturned {
		return core.ErrorDecision(core.ErrAlreadyReturned)
	}

	if s.dueAt.Before(command.OccurredAt) {
		return core.ErrorDecision(core.ErrAlreadyOverdue)
	}

	if s.pendingFineCount > 0 {
		return core.ErrorDecision(core.ErrOutstandingFine)
	}

	if s.renewalCount >= policy.MaxRenewals {
		return core.ErrorDecision(core.ErrRenewalLimitExceeded)
	}

	return core.SuccessDecision(
		core.BuildLoanRenewed(
			command.LoanID,
			command.ItemID,
			command.HolderID,
			s.dueAt.Add(policy.LoanPeriod),
			s.renewalCount+1,
			command.OccurredAt,
		),
	)
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, loanID core.LoanIDString, holderID core.HolderIDString) state {
	s := state{}
	pendingFines := make(map[core.FineIDString]struct{})

	for _, event := range history {
		switch e := event.(type) {
		case core.LoanIssued:
			if e.LoanID == loanID {
				s.loanIsIssued = true
				s.dueAt = e.DueAt
			}

		case core.LoanRenewed:
			if e.LoanID == loanID {
				s.dueAt = e.DueAt
				s.renewalCount = e.RenewalCount
			}

		case core.LoanReturned:
			if e.LoanID == loanID {
				s.loanIsReturned = true
			}

		case core.FineAssessed:
			if e.HolderID == holderID {
				pendingFines[e.FineID] = struct{}{}
			}

		case core.FinePaid:
			if e.HolderID == holderID {
				delete(pendingFines, e.FineID)
			}
		}
	}

	s.pendingFineCount = len(pendingFines)

	return s
}

// BuildEventFilter creates the filter for querying all events
// related to the specified holder which are relevant for this feature/use-case.
// The holder predicate covers both the loan's own events and the holder's
// fines on other loans, which gate renewal eligibility.
func BuildEventFilter(holderID core.HolderIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.LoanIssuedEventType,
			core.LoanRenewedEventType,
			core.LoanReturnedEventType,
			core.FineAssessedEventType,
			core.FinePaidEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("HolderID", holderID),
		).
		Finalize()
}
