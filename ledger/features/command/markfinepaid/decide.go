package markfinepaid

import (
	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// state represents the current state projected from the event history.
type state struct {
	fineIsAssessed bool
	fineIsPaid     bool
}

// Decide implements the business logic for settling a fine.
// This is a pure function with no side effects - it takes the current domain events and a command
// and returns the events that should be appended based on the business rules.
//
// Business Rules:
//
//	GIVEN: A fine with FineID owed by HolderID
//	WHEN: MarkFinePaid command is received
//	THEN: FinePaid event is generated
//	ERROR: NotFound if no fine with this FineID was assessed
//	IDEMPOTENCY: If the fine is already paid, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.FineID)

	if !s.fineIsAssessed {
		return core.ErrorDecision(core.ErrFineNotFound)
	}

	if s.fineIsPaid {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildFinePaid(
			command.FineID,
			command.HolderID,
			command.OccurredAt,
		),
	)
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, fineID core.FineIDString) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.FineAssessed:
			if e.FineID == fineID {
				s.fineIsAssessed = true
			}

		case core.FinePaid:
			if e.FineID == fineID {
				s.fineIsPaid = true
			}
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying all events
// related to the specified fine which are relevant for this feature/use-case.
func BuildEventFilter(fineID core.FineIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.FineAssessedEventType,
			core.FinePaidEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("FineID", fineID),
		).
		Finalize()
}
