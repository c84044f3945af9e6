package registeritem

import (
	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// state represents the current state projected from the event history.
type state struct {
	itemIsRegistered bool
	totalCopies      int
}

// Decide implements the business logic to determine whether an item should be registered.
// This is a pure function with no side effects - it takes the current domain events and a command
// and returns the events that should be appended based on the business rules.
//
// Business Rules:
//
//	GIVEN: An item with ItemID and a copy count
//	WHEN: RegisterItem command is received
//	THEN: ItemAddedToInventory event is generated
//	ERROR: invalid copy count if TotalCopies < 1
//	ERROR: already registered if the item exists with a different copy count
//	IDEMPOTENCY: If the item exists with the same copy count, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if command.TotalCopies < 1 {
		return core.ErrorDecision(core.ErrInvalidCopyCount)
	}

	s := project(history, command.ItemID)

	if s.itemIsRegistered {
		if s.totalCopies == command.TotalCopies {
			return core.IdempotentDecision()
		}

		return core.ErrorDecision(core.ErrItemAlreadyRegistered)
	}

	return core.SuccessDecision(
		core.BuildItemAddedToInventory(
			command.ItemID,
			command.TotalCopies,
			command.OccurredAt,
		),
	)
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, itemID core.ItemIDString) state {
	s := state{}

	for _, event := range history {
		if e, ok := event.(core.ItemAddedToInventory); ok && e.ItemID == itemID {
			s.itemIsRegistered = true
			s.totalCopies = e.TotalCopies
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
		).
		AndAnyPredicateOf(
			eventstore.P("ItemID", itemID),
		).
		Finalize()
}
