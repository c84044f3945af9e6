// Package memoryengine implements the event store contract on a mutex-guarded
// slice. It mirrors the Postgres engine's semantics - filtered queries return
// the stream's max sequence number, and appends fail with
// eventstore.ErrConcurrencyConflict when the filtered stream advanced past the
// expected sequence - so the full circulation workflow is testable without a
// database.
package memoryengine

import (
	"context"
	"errors"
	"slices"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/openshelf/circulation-ledger-go/eventstore"
)

type storedEvent struct {
	sequenceNumber eventstore.MaxSequenceNumberUint
	event          eventstore.StorableEvent
	payload        map[string]any
}

// EventStore is an in-memory engine with the same Query/Append contract as the
// Postgres engine. Safe for concurrent use.
type EventStore struct {
	mu     sync.Mutex
	events []storedEvent
	lastID eventstore.MaxSequenceNumberUint
}

// NewEventStore creates an empty in-memory engine.
func NewEventStore() *EventStore {
	return &EventStore{}
}

// Query retrieves the events matching the filter in sequence order, together
// with the max sequence number of this "dynamic event stream" at query time.
func (es *EventStore) Query(_ context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	es.mu.Lock()
	defer es.mu.Unlock()

	matching := es.matchingEvents(filter)

	eventStream := make(eventstore.StorableEvents, 0, len(matching))
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, stored := range matching {
		eventStream = append(eventStream, stored.event)
		maxSequenceNumber = stored.sequenceNumber
	}

	return eventStream, maxSequenceNumber, nil
}

// Append appends the events if the filtered stream's max sequence number still
// equals the expected one, otherwise it reports a concurrency conflict.
func (es *EventStore) Append(
	_ context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	es.mu.Lock()
	defer es.mu.Unlock()

	matching := es.matchingEvents(filter)

	currentMaxSequenceNumber := eventstore.MaxSequenceNumberUint(0)
	if len(matching) > 0 {
		currentMaxSequenceNumber = matching[len(matching)-1].sequenceNumber
	}

	if currentMaxSequenceNumber != expectedMaxSequenceNumber {
		return eventstore.ErrConcurrencyConflict
	}

	allEvents := eventstore.StorableEvents{event}
	allEvents = append(allEvents, additionalEvents...)

	for _, storable := range allEvents {
		payload := make(map[string]any)
		if err := jsoniter.ConfigFastest.Unmarshal(storable.PayloadJSON, &payload); err != nil {
			return errors.Join(eventstore.ErrAppendingEventFailed, err)
		}

		es.lastID++
		es.events = append(es.events, storedEvent{
			sequenceNumber: es.lastID,
			event:          storable,
			payload:        payload,
		})
	}

	return nil
}

// matchingEvents returns the stored events matching the filter in sequence
// order. Caller must hold the mutex.
func (es *EventStore) matchingEvents(filter eventstore.Filter) []storedEvent {
	matching := make([]storedEvent, 0)

	for _, stored := range es.events {
		if eventMatchesFilter(stored, filter) {
			matching = append(matching, stored)
		}
	}

	return matching
}

func eventMatchesFilter(stored storedEvent, filter eventstore.Filter) bool {
	if !filter.OccurredFrom().IsZero() && stored.event.OccurredAt.Before(filter.OccurredFrom()) {
		return false
	}

	if !filter.OccurredUntil().IsZero() && stored.event.OccurredAt.After(filter.OccurredUntil()) {
		return false
	}

	if len(filter.Items()) == 0 {
		return true
	}

	for _, item := range filter.Items() {
		if eventMatchesFilterItem(stored, item) {
			return true
		}
	}

	return false
}

func eventMatchesFilterItem(stored storedEvent, item eventstore.FilterItem) bool {
	if len(item.EventTypes()) > 0 && !slices.Contains(item.EventTypes(), stored.event.EventType) {
		return false
	}

	if len(item.Predicates()) == 0 {
		return true
	}

	if item.AllPredicatesMustMatch() {
		for _, predicate := range item.Predicates() {
			if !predicateMatches(stored.payload, predicate) {
				return false
			}
		}

		return true
	}

	for _, predicate := range item.Predicates() {
		if predicateMatches(stored.payload, predicate) {
			return true
		}
	}

	return false
}

func predicateMatches(payload map[string]any, predicate eventstore.FilterPredicate) bool {
	value, ok := payload[predicate.Key()]
	if !ok {
		return false
	}

	stringValue, ok := value.(string)
	if !ok {
		return false
	}

	return stringValue == predicate.Val()
}
