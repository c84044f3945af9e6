package eventstore

import (
	"errors"
)

var (
	// ErrEmptyEventsTableName is returned when an empty events table name is supplied.
	ErrEmptyEventsTableName = errors.New("empty events table name supplied")

	// ErrNilDatabaseConnection is returned when a nil database connection is supplied to an engine factory.
	ErrNilDatabaseConnection = errors.New("nil database connection supplied")

	// ErrConcurrencyConflict is returned by Append when the stream selected by the
	// filter advanced past the expected max sequence number. Retryable.
	ErrConcurrencyConflict = errors.New("concurrency conflict, no rows were affected")

	// ErrBuildingQueryFailed is returned when SQL generation for a query or append fails.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingEventsFailed is returned when the database query execution fails.
	ErrQueryingEventsFailed = errors.New("querying events failed")

	// ErrScanningDBRowFailed is returned when scanning a database row fails.
	ErrScanningDBRowFailed = errors.New("scanning database row failed")

	// ErrBuildingStorableEventFailed is returned when a row cannot be converted to a StorableEvent.
	ErrBuildingStorableEventFailed = errors.New("building storable event failed")

	// ErrAppendingEventFailed is returned when the database execution of an append fails.
	ErrAppendingEventFailed = errors.New("appending event failed")

	// ErrGettingRowsAffectedFailed is returned when the affected row count cannot be read.
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
)

// MaxSequenceNumberUint is the maximum sequence number of a "dynamic event stream"
// at query time, used as the expected value for conditional appends.
type MaxSequenceNumberUint = uint
