package eventstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/circulation-ledger-go/eventstore"
)

func Test_BuildStorableEvent(t *testing.T) {
	// arrange
	occurredAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	payload := []byte(`{"ItemID":"item-1","TotalCopies":3}`)
	metadata := []byte(`{"MessageID":"00000000-0000-0000-0000-000000000001"}`)

	// act
	event, err := eventstore.BuildStorableEvent("ItemAddedToInventory", occurredAt, payload, metadata)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "ItemAddedToInventory", event.EventType)
	assert.Equal(t, occurredAt, event.OccurredAt)
	assert.Equal(t, payload, event.PayloadJSON)
	assert.Equal(t, metadata, event.MetadataJSON)
}

func Test_BuildStorableEvent_RejectsInvalidPayloadJSON(t *testing.T) {
	// act
	_, err := eventstore.BuildStorableEvent(
		"ItemAddedToInventory",
		time.Now(),
		[]byte(`{"ItemID":`),
		[]byte(`{}`),
	)

	// assert
	assert.ErrorIs(t, err, eventstore.ErrInvalidPayloadJSON)
}

func Test_BuildStorableEvent_RejectsInvalidMetadataJSON(t *testing.T) {
	// act
	_, err := eventstore.BuildStorableEvent(
		"ItemAddedToInventory",
		time.Now(),
		[]byte(`{}`),
		[]byte(`not json`),
	)

	// assert
	assert.ErrorIs(t, err, eventstore.ErrInvalidMetadataJSON)
}

func Test_BuildStorableEventWithEmptyMetadata(t *testing.T) {
	// act
	event, err := eventstore.BuildStorableEventWithEmptyMetadata(
		"ItemAddedToInventory",
		time.Now(),
		[]byte(`{"ItemID":"item-1"}`),
	)

	// assert
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), event.MetadataJSON)
}
