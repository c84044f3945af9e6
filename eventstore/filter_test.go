package eventstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-ledger-go/eventstore"
)

//nolint:funlen
func Test_FilterBuilder_ValidCombinations(t *testing.T) {
	tests := []struct {
		name     string
		build    func() eventstore.Filter
		validate func(t *testing.T, filter eventstore.Filter)
	}{
		{
			name: "matching_any_event_creates_empty_filter",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().MatchingAnyEvent()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Empty(t, f.Items())
				assert.True(t, f.OccurredFrom().IsZero())
				assert.True(t, f.OccurredUntil().IsZero())
			},
		},
		{
			name: "event_types_only",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("LoanIssued", "LoanReturned").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"LoanIssued", "LoanReturned"}, f.Items()[0].EventTypes())
				assert.Empty(t, f.Items()[0].Predicates())
			},
		},
		{
			name: "event_types_with_any_predicate",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("LoanIssued").
					AndAnyPredicateOf(eventstore.P("ItemID", "item-1")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"LoanIssued"}, f.Items()[0].EventTypes())
				assert.Len(t, f.Items()[0].Predicates(), 1)
				assert.Equal(t, "ItemID", f.Items()[0].Predicates()[0].Key())
				assert.Equal(t, "item-1", f.Items()[0].Predicates()[0].Val())
				assert.False(t, f.Items()[0].AllPredicatesMustMatch())
			},
		},
		{
			name: "event_types_with_all_predicates",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("LoanIssued").
					AndAllPredicatesOf(
						eventstore.P("ItemID", "item-1"),
						eventstore.P("HolderID", "holder-a"),
					).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items()[0].Predicates(), 2)
				assert.True(t, f.Items()[0].AllPredicatesMustMatch())
			},
		},
		{
			name: "predicates_only",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyPredicateOf(eventstore.P("HolderID", "holder-a")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Empty(t, f.Items()[0].EventTypes())
				assert.Len(t, f.Items()[0].Predicates(), 1)
			},
		},
		{
			name: "multiple_items_combined_with_or",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("LoanIssued").
					AndAnyPredicateOf(eventstore.P("ItemID", "item-1")).
					OrMatching().
					AnyEventTypeOf("FineAssessed").
					AndAnyPredicateOf(eventstore.P("HolderID", "holder-a")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 2)
				assert.Equal(t, []string{"LoanIssued"}, f.Items()[0].EventTypes())
				assert.Equal(t, []string{"FineAssessed"}, f.Items()[1].EventTypes())
			},
		},
		{
			name: "occurred_between_restricts_the_whole_filter",
			build: func() eventstore.Filter {
				from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
				until := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("LoanIssued").
					OccurredBetween(from, until).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), f.OccurredFrom())
				assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), f.OccurredUntil())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.validate(t, tc.build())
		})
	}
}

func Test_FilterBuilder_SanitizesEventTypes(t *testing.T) {
	// arrange + act
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("LoanReturned", "LoanIssued", "", "LoanIssued").
		Finalize()

	// assert: empty removed, sorted, deduplicated
	assert.Equal(t, []string{"LoanIssued", "LoanReturned"}, filter.Items()[0].EventTypes())
}

func Test_FilterBuilder_SanitizesPredicates(t *testing.T) {
	// arrange + act
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyPredicateOf(
			eventstore.P("ItemID", "item-1"),
			eventstore.P("", "item-1"),
			eventstore.P("ItemID", ""),
			eventstore.P("ItemID", "item-1"),
		).
		Finalize()

	// assert: partial predicates removed, deduplicated
	assert.Len(t, filter.Items()[0].Predicates(), 1)
	assert.Equal(t, "ItemID", filter.Items()[0].Predicates()[0].Key())
}
