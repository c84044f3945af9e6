package eventstore

import (
	"slices"
	"time"
)

type FilterEventTypeString = string
type FilterKeyString = string
type FilterValString = string

/***** Filter *****/

// Filter selects the "dynamic event stream" for an operation: a disjunction of
// FilterItems, each combining event types with payload predicates, optionally
// restricted to an occurred-at range (used by date-ranged analytics reads).
type Filter struct {
	items         []FilterItem
	occurredFrom  time.Time
	occurredUntil time.Time
}

func (f Filter) Items() []FilterItem {
	return f.items
}

func (f Filter) OccurredFrom() time.Time {
	return f.occurredFrom
}

func (f Filter) OccurredUntil() time.Time {
	return f.occurredUntil
}

/***** FilterItem *****/

type FilterItem struct {
	eventTypes             []FilterEventTypeString
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) EventTypes() []FilterEventTypeString {
	return fi.eventTypes
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

/***** FilterPredicate *****/

type FilterPredicate struct {
	key FilterKeyString
	val FilterValString
}

// P builds a FilterPredicate matching a scalar payload attribute.
func P(key FilterKeyString, val FilterValString) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() FilterValString {
	return fp.val
}

/***** FilterBuilder *****/

// FilterBuilder builds a generic event filter to be used by engine
// implementations to generate queries in their specific query language.
// It only allows "useful" filter combinations for event-sourced workflows:
//
//   - empty filter
//   - (eventType OR eventType...)
//   - (predicate OR/AND predicate...)
//   - ((eventType OR eventType...) AND (predicate OR/AND predicate...))
//   - multiple such items combined with OR
//   - any of the above restricted to an occurred-at range
type FilterBuilder interface {
	// Matching starts a new FilterItem.
	Matching() EmptyFilterItemBuilder

	// MatchingAnyEvent directly creates an empty Filter.
	MatchingAnyEvent() Filter
}

type EmptyFilterItemBuilder interface {
	// AnyEventTypeOf adds one or multiple event types to the current FilterItem.
	// The input is sanitized: empty strings removed, sorted, deduplicated.
	AnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) FilterItemBuilderLackingPredicates

	// AnyPredicateOf adds one or multiple predicates of which ANY must match.
	// The input is sanitized: empty/partial predicates removed, sorted, deduplicated.
	AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes
}

type FilterItemBuilderLackingPredicates interface {
	// AndAnyPredicateOf adds one or multiple predicates of which ANY must match.
	AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder

	// AndAllPredicatesOf adds one or multiple predicates which must ALL match.
	AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder

	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// OccurredBetween restricts the whole filter to an occurred-at range.
	// Zero values leave the respective bound open.
	OccurredBetween(from time.Time, until time.Time) CompletedFilterItemBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

type FilterItemBuilderLackingEventTypes interface {
	// AndAnyEventTypeOf adds one or multiple event types to the current FilterItem.
	AndAnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) CompletedFilterItemBuilder

	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

type CompletedFilterItemBuilder interface {
	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// OccurredBetween restricts the whole filter to an occurred-at range.
	OccurredBetween(from time.Time, until time.Time) CompletedFilterItemBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

// filterBuilder implements all the stages of FilterBuilder.
type filterBuilder struct {
	filter            Filter
	currentFilterItem FilterItem
}

// BuildEventFilter creates a FilterBuilder which must eventually be finalized
// with Finalize() or MatchingAnyEvent().
func BuildEventFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) Matching() EmptyFilterItemBuilder {
	fb.currentFilterItem = FilterItem{}

	return fb
}

func (fb filterBuilder) MatchingAnyEvent() Filter {
	return fb.filter
}

func (fb filterBuilder) AnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) FilterItemBuilderLackingPredicates {

	fb.currentFilterItem.eventTypes = append(
		fb.currentFilterItem.eventTypes,
		sanitizeEventTypes(eventType, eventTypes...)...,
	)

	return fb
}

func (fb filterBuilder) AndAnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) CompletedFilterItemBuilder {

	fb.currentFilterItem.eventTypes = append(
		fb.currentFilterItem.eventTypes,
		sanitizeEventTypes(eventType, eventTypes...)...,
	)

	return fb
}

func (fb filterBuilder) AnyPredicateOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) FilterItemBuilderLackingEventTypes {

	fb.currentFilterItem.predicates = append(
		fb.currentFilterItem.predicates,
		sanitizePredicates(predicate, predicates...)...,
	)

	return fb
}

func (fb filterBuilder) AndAnyPredicateOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) CompletedFilterItemBuilder {

	fb.currentFilterItem.predicates = append(
		fb.currentFilterItem.predicates,
		sanitizePredicates(predicate, predicates...)...,
	)

	return fb
}

func (fb filterBuilder) AndAllPredicatesOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) CompletedFilterItemBuilder {

	fb.currentFilterItem.allPredicatesMustMatch = true

	fb.currentFilterItem.predicates = append(
		fb.currentFilterItem.predicates,
		sanitizePredicates(predicate, predicates...)...,
	)

	return fb
}

func (fb filterBuilder) OrMatching() EmptyFilterItemBuilder {
	fb.filter.items = append(fb.filter.items, fb.currentFilterItem)
	fb.currentFilterItem = FilterItem{}

	return fb
}

func (fb filterBuilder) OccurredBetween(from time.Time, until time.Time) CompletedFilterItemBuilder {
	fb.filter.occurredFrom = from
	fb.filter.occurredUntil = until

	return fb
}

func (fb filterBuilder) Finalize() Filter {
	fb.filter.items = append(fb.filter.items, fb.currentFilterItem)

	return fb.filter
}

func sanitizeEventTypes(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) []FilterEventTypeString {

	allEventTypes := append([]FilterEventTypeString{eventType}, eventTypes...)
	allEventTypes = slices.DeleteFunc(
		allEventTypes,
		func(e FilterEventTypeString) bool { return e == "" },
	)
	slices.Sort(allEventTypes)
	allEventTypes = slices.Compact(allEventTypes)
	allEventTypes = slices.Clip(allEventTypes)

	return allEventTypes
}

func sanitizePredicates(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) []FilterPredicate {

	allPredicates := append([]FilterPredicate{predicate}, predicates...)
	allPredicates = slices.DeleteFunc(
		allPredicates,
		func(p FilterPredicate) bool { return len(p.key) == 0 || len(p.val) == 0 },
	)
	slices.SortFunc(allPredicates, func(a, b FilterPredicate) int {
		if a.key != b.key {
			if a.key > b.key {
				return 1
			}

			return -1
		}

		if a.val != b.val {
			if a.val > b.val {
				return 1
			}

			return -1
		}

		return 0
	})
	allPredicates = slices.Compact(allPredicates)
	allPredicates = slices.Clip(allPredicates)

	return allPredicates
}
