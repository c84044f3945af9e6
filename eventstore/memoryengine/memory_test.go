package memoryengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/eventstore/memoryengine"
)

func storableEvent(t *testing.T, eventType string, occurredAt time.Time, payloadJSON string) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEventWithEmptyMetadata(eventType, occurredAt, []byte(payloadJSON))
	require.NoError(t, err)

	return event
}

func itemFilter(itemID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("LoanIssued", "LoanReturned").
		AndAnyPredicateOf(eventstore.P("ItemID", itemID)).
		Finalize()
}

func Test_QueryAndAppend_RoundTrip(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEventStore()
	now := time.Now().UTC()

	filter := itemFilter("item-1")

	events, maxSeq, err := store.Query(ctx, filter)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(0), maxSeq)

	// act
	err = store.Append(ctx, filter, maxSeq,
		storableEvent(t, "LoanIssued", now, `{"LoanID":"loan-1","ItemID":"item-1","HolderID":"holder-a"}`),
	)
	require.NoError(t, err)

	// assert
	events, maxSeq, err = store.Query(ctx, filter)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "LoanIssued", events[0].EventType)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(1), maxSeq)
}

func Test_Query_FiltersByPredicate(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEventStore()
	now := time.Now().UTC()

	filterItem1 := itemFilter("item-1")
	filterItem2 := itemFilter("item-2")

	require.NoError(t, store.Append(ctx, filterItem1, 0,
		storableEvent(t, "LoanIssued", now, `{"LoanID":"loan-1","ItemID":"item-1","HolderID":"holder-a"}`),
	))
	require.NoError(t, store.Append(ctx, filterItem2, 0,
		storableEvent(t, "LoanIssued", now, `{"LoanID":"loan-2","ItemID":"item-2","HolderID":"holder-b"}`),
	))

	// act
	events, _, err := store.Query(ctx, filterItem2)

	// assert
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Contains(t, string(events[0].PayloadJSON), "item-2")
}

func Test_Append_ConflictsWhenFilteredStreamAdvanced(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEventStore()
	now := time.Now().UTC()

	filter := itemFilter("item-1")

	_, maxSeq, err := store.Query(ctx, filter)
	require.NoError(t, err)

	// a competing writer advances the stream first
	require.NoError(t, store.Append(ctx, filter, maxSeq,
		storableEvent(t, "LoanIssued", now, `{"LoanID":"loan-1","ItemID":"item-1","HolderID":"holder-a"}`),
	))

	// act: append with the stale expected sequence number
	err = store.Append(ctx, filter, maxSeq,
		storableEvent(t, "LoanIssued", now, `{"LoanID":"loan-2","ItemID":"item-1","HolderID":"holder-b"}`),
	)

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
}

func Test_Append_UnrelatedStreamsDoNotConflict(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEventStore()
	now := time.Now().UTC()

	filterItem1 := itemFilter("item-1")
	filterItem2 := itemFilter("item-2")

	_, maxSeqItem2, err := store.Query(ctx, filterItem2)
	require.NoError(t, err)

	require.NoError(t, store.Append(ctx, filterItem1, 0,
		storableEvent(t, "LoanIssued", now, `{"LoanID":"loan-1","ItemID":"item-1","HolderID":"holder-a"}`),
	))

	// act: item-2's filtered stream did not advance
	err = store.Append(ctx, filterItem2, maxSeqItem2,
		storableEvent(t, "LoanIssued", now, `{"LoanID":"loan-2","ItemID":"item-2","HolderID":"holder-b"}`),
	)

	// assert
	assert.NoError(t, err)
}

func Test_Append_MultipleEventsAreAtomicInOrder(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEventStore()
	now := time.Now().UTC()

	filter := itemFilter("item-1")

	// act
	require.NoError(t, store.Append(ctx, filter, 0,
		storableEvent(t, "LoanReturned", now, `{"LoanID":"loan-1","ItemID":"item-1","HolderID":"holder-a"}`),
		storableEvent(t, "LoanIssued", now, `{"LoanID":"loan-2","ItemID":"item-1","HolderID":"holder-b"}`),
	))

	// assert
	events, maxSeq, err := store.Query(ctx, filter)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "LoanReturned", events[0].EventType)
	assert.Equal(t, "LoanIssued", events[1].EventType)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(2), maxSeq)
}

func Test_Query_RespectsOccurredRange(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEventStore()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	appendFilter := itemFilter("item-1")
	require.NoError(t, store.Append(ctx, appendFilter, 0,
		storableEvent(t, "LoanIssued", base, `{"LoanID":"loan-1","ItemID":"item-1"}`),
	))
	require.NoError(t, store.Append(ctx, appendFilter, 1,
		storableEvent(t, "LoanReturned", base.Add(48*time.Hour), `{"LoanID":"loan-1","ItemID":"item-1"}`),
	))

	rangedFilter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("LoanIssued", "LoanReturned").
		OccurredBetween(base.Add(24*time.Hour), base.Add(72*time.Hour)).
		Finalize()

	// act
	events, _, err := store.Query(ctx, rangedFilter)

	// assert
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "LoanReturned", events[0].EventType)
}
