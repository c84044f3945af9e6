package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0)

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.ItemAddedToInventoryEventType:
		return unmarshalDomainEvent[core.ItemAddedToInventory](storableEvent.PayloadJSON)

	case core.LoanIssuedEventType:
		return unmarshalDomainEvent[core.LoanIssued](storableEvent.PayloadJSON)

	case core.LoanRenewedEventType:
		return unmarshalDomainEvent[core.LoanRenewed](storableEvent.PayloadJSON)

	case core.LoanReturnedEventType:
		return unmarshalDomainEvent[core.LoanReturned](storableEvent.PayloadJSON)

	case core.FineAssessedEventType:
		return unmarshalDomainEvent[core.FineAssessed](storableEvent.PayloadJSON)

	case core.FinePaidEventType:
		return unmarshalDomainEvent[core.FinePaid](storableEvent.PayloadJSON)

	case core.ReservationPlacedEventType:
		return unmarshalDomainEvent[core.ReservationPlaced](storableEvent.PayloadJSON)

	case core.ReservationPromotedEventType:
		return unmarshalDomainEvent[core.ReservationPromoted](storableEvent.PayloadJSON)

	case core.ReservationCanceledEventType:
		return unmarshalDomainEvent[core.ReservationCanceled](storableEvent.PayloadJSON)

	default:
		return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
	}
}

func unmarshalDomainEvent[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(E)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}
