package core

// DecisionResult represents the outcome of a business decision in a Decide
// function.
//
// A decision may carry several events because some transitions are atomic
// units: returning an overdue loan emits LoanReturned plus FineAssessed plus,
// when a holder is waiting, ReservationPromoted - all of which must commit in
// one append or not at all.
//
// DecisionResult should only be constructed with the factory functions
// IdempotentDecision(), SuccessDecision(events...), or ErrorDecision(err).
type DecisionResult struct {
	Outcome string // "idempotent", "success", or "error"
	Events  DomainEvents
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision creates a DecisionResult indicating no state change is
// needed.
func IdempotentDecision() DecisionResult {
	return DecisionResult{
		Outcome: idempotentOutcome,
	}
}

// SuccessDecision creates a DecisionResult with one or more events to append
// atomically.
func SuccessDecision(event DomainEvent, additionalEvents ...DomainEvent) DecisionResult {
	events := DomainEvents{event}
	events = append(events, additionalEvents...)

	return DecisionResult{
		Outcome: successOutcome,
		Events:  events,
	}
}

// ErrorDecision creates a DecisionResult indicating a business rule violation.
// The error is surfaced to the caller; nothing is appended.
func ErrorDecision(err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Err:     err,
	}
}

// HasEventsToAppend returns true if there are events to append to the event
// store.
func (r DecisionResult) HasEventsToAppend() bool {
	return r.Outcome == successOutcome && len(r.Events) > 0
}

// IsIdempotent returns true if the decision required no state change.
func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
