package shell

import (
	"encoding/json"
	"errors"

	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// ErrMappingToStorableEventFailedForDomainEvent is returned when domain event serialization fails.
var ErrMappingToStorableEventFailedForDomainEvent = errors.New("mapping to storable event failed for domain event")

// ErrMappingToStorableEventFailedForMetadata is returned when metadata serialization fails.
var ErrMappingToStorableEventFailedForMetadata = errors.New("mapping to storable event failed for metadata")

// StorableEventFrom converts a DomainEvent and EventMetadata to a StorableEvent.
func StorableEventFrom(event core.DomainEvent, metadata EventMetadata) (eventstore.StorableEvent, error) {
	payloadJSON, err := json.Marshal(event)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForMetadata, err)
	}

	storableEvent, err := eventstore.BuildStorableEvent(
		event.EventType(),
		event.HasOccurredAt(),
		payloadJSON,
		metadataJSON,
	)

	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	return storableEvent, nil
}

// StorableEventsFrom converts multiple DomainEvents sharing the same metadata
// to StorableEvents, preserving order. Used when a decision produces several
// events that must append atomically.
func StorableEventsFrom(events core.DomainEvents, metadata EventMetadata) (eventstore.StorableEvents, error) {
	storableEvents := make(eventstore.StorableEvents, 0, len(events))

	for _, event := range events {
		storableEvent, err := StorableEventFrom(event, metadata)
		if err != nil {
			return nil, err
		}

		storableEvents = append(storableEvents, storableEvent)
	}

	return storableEvents, nil
}

// StorableEventWithEmptyMetadataFrom converts a DomainEvent to a StorableEvent with empty metadata.
func StorableEventWithEmptyMetadataFrom(event core.DomainEvent) (eventstore.StorableEvent, error) {
	payloadJSON, err := json.Marshal(event)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	storableEvent, err := eventstore.BuildStorableEventWithEmptyMetadata(
		event.EventType(),
		event.HasOccurredAt(),
		payloadJSON,
	)

	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	return storableEvent, nil
}
