package shell_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
	"github.com/openshelf/circulation-ledger-go/ledger/shell"
)

func Test_StorableEventFrom_And_DomainEventsFrom_RoundTrip(t *testing.T) {
	// arrange
	now := time.Now()
	issued := core.BuildLoanIssued("loan-1", "item-1", "holder-a", "res-1", now.Add(14*24*time.Hour), now)
	metadata := shell.BuildEventMetadata(uuid.New(), uuid.New(), uuid.New())

	// act
	storable, err := shell.StorableEventFrom(issued, metadata)
	require.NoError(t, err)

	history, err := shell.DomainEventsFrom(eventstore.StorableEvents{storable})
	require.NoError(t, err)

	// assert
	require.Len(t, history, 1)
	restored, ok := history[0].(core.LoanIssued)
	require.True(t, ok)
	assert.Equal(t, issued, restored)
}

func Test_StorableEventsFrom_PreservesOrderOfMultiEventDecisions(t *testing.T) {
	// arrange: the return-with-fine-and-promotion triple
	now := time.Now()
	events := core.DomainEvents{
		core.BuildLoanReturned("loan-1", "item-1", "holder-a", now),
		core.BuildFineAssessed("fine-1", "loan-1", "item-1", "holder-a", 2500, 5, core.FineReasonOverdueReturn, now),
		core.BuildReservationPromoted("res-1", "item-1", "holder-b", now),
	}
	metadata := shell.BuildEventMetadata(uuid.New(), uuid.New(), uuid.New())

	// act
	storables, err := shell.StorableEventsFrom(events, metadata)
	require.NoError(t, err)

	// assert
	require.Len(t, storables, 3)
	assert.Equal(t, core.LoanReturnedEventType, storables[0].EventType)
	assert.Equal(t, core.FineAssessedEventType, storables[1].EventType)
	assert.Equal(t, core.ReservationPromotedEventType, storables[2].EventType)
}

func Test_EventEnvelopeFrom_CarriesMetadataThrough(t *testing.T) {
	// arrange
	now := time.Now()
	messageID := uuid.New()
	causationID := uuid.New()
	correlationID := uuid.New()
	metadata := shell.BuildEventMetadata(messageID, causationID, correlationID)

	paid := core.BuildFinePaid("fine-1", "holder-a", now)
	storable, err := shell.StorableEventFrom(paid, metadata)
	require.NoError(t, err)

	// act
	envelope, err := shell.EventEnvelopeFrom(storable)
	require.NoError(t, err)

	// assert
	assert.Equal(t, paid, envelope.DomainEvent)
	assert.Equal(t, messageID.String(), envelope.EventMetadata.MessageID)
	assert.Equal(t, causationID.String(), envelope.EventMetadata.CausationID)
	assert.Equal(t, correlationID.String(), envelope.EventMetadata.CorrelationID)
}

func Test_DomainEventsFrom_FailsOnUnknownEventType(t *testing.T) {
	// arrange
	storable, err := shell.StorableEventWithEmptyMetadataFrom(
		core.BuildFinePaid("fine-1", "holder-a", time.Now()),
	)
	require.NoError(t, err)
	storable.EventType = "SomethingElse"

	// act
	_, err = shell.DomainEventsFrom(eventstore.StorableEvents{storable})

	// assert
	assert.Error(t, err)
}
