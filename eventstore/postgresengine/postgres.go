package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/eventstore/postgresengine/internal/adapters"
)

const (
	defaultEventTableName          = "events"
	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgCloseRowsFailed          = "failed to close database rows"
	logMsgScanRowFailed            = "failed to scan database row"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgDBExecFailed             = "database execution failed during event append"
	logMsgRowsAffectedFailed       = "failed to get rows affected count"
	logMsgQueryCompleted           = "query completed"
	logMsgEventsAppended           = "events appended"
	logMsgConcurrencyConflict      = "concurrency conflict detected"
	logMsgSQLExecuted              = "executed sql for: "
	logMsgOperation                = "eventstore operation: "
	logAttrError                   = "error"
	logAttrQuery                   = "query"
	logAttrEventType               = "event_type"
	logAttrEventCount              = "event_count"
	logAttrDurationMS              = "duration_ms"
	logAttrExpectedEvents          = "expected_events"
	logAttrRowsAffected            = "rows_affected"
	logAttrExpectedSequence        = "expected_sequence"
	colEventType                   = "event_type"
	colOccurredAt                  = "occurred_at"
	colPayload                     = "payload"
	colMetadata                    = "metadata"
	colSequenceNumber              = "sequence_number"
	cteContext                     = "context"
	cteVals                        = "vals"
	dialectPostgres                = "postgres"
	aliasMaxSeq                    = "max_seq"
	castText                       = "?::text"
	castTimestamp                  = "?::timestamp with time zone"
	castJsonb                      = "?::jsonb"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
)

// EventStore is the PostgreSQL engine for the circulation ledger's event
// streams. It is configured with a database adapter plus optional logging,
// metrics, and tracing collectors.
type EventStore struct {
	db               adapters.DBAdapter
	eventTableName   string
	logger           eventstore.Logger
	contextualLogger eventstore.ContextualLogger
	metricsCollector eventstore.MetricsCollector
	tracingCollector eventstore.TracingCollector
}

type queryResultRow struct {
	eventType         string
	payload           []byte
	metadata          []byte
	occurredAt        time.Time
	maxSequenceNumber eventstore.MaxSequenceNumberUint
}

// NewEventStoreFromPGXPool creates a new engine using a pgx pool.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return applyOptions(EventStore{db: adapters.NewPGXAdapter(db), eventTableName: defaultEventTableName}, options)
}

// NewEventStoreFromPGXPoolWithReplica creates a new engine using a primary pgx
// pool and a replica pool for eventually consistent reads.
func NewEventStoreFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (EventStore, error) {
	if db == nil || replica == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return applyOptions(EventStore{db: adapters.NewPGXAdapterWithReplica(db, replica), eventTableName: defaultEventTableName}, options)
}

// NewEventStoreFromSQLDB creates a new engine using a sql.DB.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return applyOptions(EventStore{db: adapters.NewSQLAdapter(db), eventTableName: defaultEventTableName}, options)
}

// NewEventStoreFromSQLX creates a new engine using a sqlx.DB.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return applyOptions(EventStore{db: adapters.NewSQLXAdapter(db), eventTableName: defaultEventTableName}, options)
}

func applyOptions(es EventStore, options []Option) (EventStore, error) {
	for _, option := range options {
		if err := option(&es); err != nil {
			return EventStore{}, err
		}
	}

	return es, nil
}

// Query retrieves the events matching the filter in sequence order, together
// with the max sequence number of this "dynamic event stream" at query time.
func (es EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	var empty eventstore.StorableEvents

	ctx, span := es.startSpan(ctx, eventstore.QuerySpanName)

	sqlQuery, buildQueryErr := es.buildSelectQuery(filter)
	if buildQueryErr != nil {
		es.logError(ctx, logMsgBuildSelectQueryFailed, logAttrError, buildQueryErr.Error())
		es.finishSpan(span, eventstore.SpanStatusError)

		return empty, 0, buildQueryErr
	}

	start := time.Now()
	rows, queryErr := es.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	es.logQueryWithDuration(ctx, sqlQuery, eventstore.OperationNameQuery, duration)

	if queryErr != nil {
		es.logError(ctx, logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		es.recordError(ctx, eventstore.OperationNameQuery)
		es.finishSpan(span, eventstore.SpanStatusError)

		return empty, 0, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr)
	}
	defer es.closeRows(ctx, rows)

	eventStream, maxSequenceNumber, scanErr := es.processQueryResults(ctx, rows)
	if scanErr != nil {
		es.finishSpan(span, eventstore.SpanStatusError)

		return empty, 0, scanErr
	}

	es.recordDuration(ctx, eventstore.QueryDurationMetric, eventstore.OperationNameQuery, duration)
	es.logOperation(
		ctx,
		logMsgQueryCompleted,
		logAttrEventCount, len(eventStream),
		logAttrDurationMS, durationToMilliseconds(duration),
	)
	es.finishSpan(span, eventstore.SpanStatusOK)

	return eventStream, maxSequenceNumber, nil
}

// Append attempts to append one or multiple events respecting the concurrency
// constraint for this "dynamic event stream": the filter criteria must be the
// same as the ones used for the Query before making the business decision.
//
// The insert query appending multiple events atomically is heavier than the
// single-event one; a return that settles a fine and promotes a reservation is
// the intended multi-event case.
func (es EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	allEvents := eventstore.StorableEvents{event}
	allEvents = append(allEvents, additionalEvents...)

	ctx, span := es.startSpan(ctx, eventstore.AppendSpanName)

	sqlQuery, buildQueryErr := es.buildAppendQuery(ctx, allEvents, filter, expectedMaxSequenceNumber)
	if buildQueryErr != nil {
		es.finishSpan(span, eventstore.SpanStatusError)

		return buildQueryErr
	}

	rowsAffected, duration, execErr := es.executeAppendQuery(ctx, sqlQuery)
	if execErr != nil {
		es.recordError(ctx, eventstore.OperationNameAppend)
		es.finishSpan(span, eventstore.SpanStatusError)

		return execErr
	}

	if err := es.validateAppendResult(ctx, rowsAffected, len(allEvents), expectedMaxSequenceNumber); err != nil {
		es.finishSpan(span, eventstore.SpanStatusConflict)

		return err
	}

	es.recordDuration(ctx, eventstore.AppendDurationMetric, eventstore.OperationNameAppend, duration)
	es.logOperation(
		ctx,
		logMsgEventsAppended,
		logAttrEventCount, len(allEvents),
		logAttrDurationMS, durationToMilliseconds(duration),
	)
	es.finishSpan(span, eventstore.SpanStatusOK)

	return nil
}

func (es EventStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		es.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func (es EventStore) processQueryResults(ctx context.Context, rows adapters.DBRows) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	var empty eventstore.StorableEvents
	result := queryResultRow{}
	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for rows.Next() {
		rowScanErr := rows.Scan(&result.eventType, &result.occurredAt, &result.payload, &result.metadata, &result.maxSequenceNumber)
		if rowScanErr != nil {
			es.logError(ctx, logMsgScanRowFailed, logAttrError, rowScanErr.Error())

			return empty, 0, errors.Join(eventstore.ErrScanningDBRowFailed, rowScanErr)
		}

		event, buildStorableErr := eventstore.BuildStorableEvent(result.eventType, result.occurredAt, result.payload, result.metadata)
		if buildStorableErr != nil {
			es.logError(ctx, logMsgBuildStorableEventFailed, logAttrError, buildStorableErr.Error(), logAttrEventType, result.eventType)

			return empty, 0, errors.Join(eventstore.ErrBuildingStorableEventFailed, buildStorableErr)
		}

		eventStream = append(eventStream, event)
		maxSequenceNumber = result.maxSequenceNumber
	}

	return eventStream, maxSequenceNumber, nil
}

func (es EventStore) buildAppendQuery(
	ctx context.Context,
	allEvents eventstore.StorableEvents,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (sqlQueryString, error) {

	var sqlQuery sqlQueryString
	var buildQueryErr error

	switch len(allEvents) {
	case 1:
		sqlQuery, buildQueryErr = es.buildInsertQueryForSingleEvent(allEvents[0], filter, expectedMaxSequenceNumber)

	default:
		sqlQuery, buildQueryErr = es.buildInsertQueryForMultipleEvents(allEvents, filter, expectedMaxSequenceNumber)
	}

	if buildQueryErr != nil {
		es.logError(ctx, logMsgBuildInsertQueryFailed, logAttrError, buildQueryErr.Error(), logAttrEventCount, len(allEvents))

		return "", buildQueryErr
	}

	return sqlQuery, nil
}

func (es EventStore) executeAppendQuery(ctx context.Context, sqlQuery string) (
	rowsAffectedInt64,
	time.Duration,
	error,
) {

	start := time.Now()
	tag, execErr := es.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	es.logQueryWithDuration(ctx, sqlQuery, eventstore.OperationNameAppend, duration)

	if execErr != nil {
		es.logError(ctx, logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)

		return 0, duration, errors.Join(eventstore.ErrAppendingEventFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := tag.RowsAffected()
	if rowsAffectedErr != nil {
		es.logError(ctx, logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())

		return 0, duration, errors.Join(eventstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

func (es EventStore) validateAppendResult(
	ctx context.Context,
	rowsAffected int64,
	expectedEventCount int,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) error {

	if rowsAffected < int64(expectedEventCount) {
		es.incrementCounter(ctx, eventstore.ConcurrencyConflictMetric, eventstore.OperationNameAppend)
		es.logOperation(
			ctx,
			logMsgConcurrencyConflict,
			logAttrExpectedEvents, expectedEventCount,
			logAttrRowsAffected, rowsAffected,
			logAttrExpectedSequence, expectedMaxSequenceNumber,
		)

		return eventstore.ErrConcurrencyConflict
	}

	return nil
}

func (es EventStore) buildSelectQuery(filter eventstore.Filter) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.I(colSequenceNumber).Asc())

	selectStmt = es.addWhereClause(filter, selectStmt)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (es EventStore) buildInsertQueryForSingleEvent(
	event eventstore.StorableEvent,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (sqlQueryString, error) {

	builder := goqu.Dialect(dialectPostgres)

	cteStmt := builder.
		From(es.eventTableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq))

	cteStmt = es.addWhereClause(filter, cteStmt)

	// The insert only happens when the stream's max sequence still equals the
	// expected one - this is the optimistic lock.
	selectStmt := builder.
		From(cteContext).
		Select(goqu.V(event.EventType), goqu.V(event.OccurredAt), goqu.V(event.PayloadJSON), goqu.V(event.MetadataJSON)).
		Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber)))

	insertStmt := builder.
		Insert(es.eventTableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		FromQuery(selectStmt).
		With(cteContext, cteStmt)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (es EventStore) buildInsertQueryForMultipleEvents(
	events []eventstore.StorableEvent,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (sqlQueryString, error) {

	builder := goqu.Dialect(dialectPostgres)

	cteStmt := builder.
		From(es.eventTableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq))

	cteStmt = es.addWhereClause(filter, cteStmt)

	unionStatements := make([]*goqu.SelectDataset, len(events))
	for i, event := range events {
		unionStatements[i] = builder.
			Select(
				goqu.L(castText, event.EventType).As(colEventType),
				goqu.L(castTimestamp, event.OccurredAt).As(colOccurredAt),
				goqu.L(castJsonb, event.PayloadJSON).As(colPayload),
				goqu.L(castJsonb, event.MetadataJSON).As(colMetadata),
			)
	}

	valuesStmt := unionStatements[0]
	for i := 1; i < len(unionStatements); i++ {
		valuesStmt = valuesStmt.UnionAll(unionStatements[i])
	}

	valsEventType := fmt.Sprintf("%s.%s", cteVals, colEventType)
	valsOccurredAt := fmt.Sprintf("%s.%s", cteVals, colOccurredAt)
	valsPayload := fmt.Sprintf("%s.%s", cteVals, colPayload)
	valsMetadata := fmt.Sprintf("%s.%s", cteVals, colMetadata)

	insertStmt := builder.
		Insert(es.eventTableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		With(cteContext, cteStmt).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(valsEventType, valsOccurredAt, valsPayload, valsMetadata).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber))),
		)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (es EventStore) addWhereClause(filter eventstore.Filter, selectStmt *goqu.SelectDataset) *goqu.SelectDataset {
	itemsExpressions := make([]goqu.Expression, 0)

	for _, item := range filter.Items() {
		eventTypeExpressions := make([]goqu.Expression, 0)
		predicateExpressions := make([]goqu.Expression, 0)

		for _, eventType := range item.EventTypes() {
			eventTypeExpressions = append(
				eventTypeExpressions,
				goqu.Ex{colEventType: eventType},
			)
		}

		// eventTypes are always combined with OR
		eventTypesExpressionList := goqu.Or(eventTypeExpressions...)

		for _, predicate := range item.Predicates() {
			predicateExpressions = append(
				predicateExpressions,
				goqu.L(fmt.Sprintf(`%s @> '{"%s": "%s"}'`, colPayload, predicate.Key(), predicate.Val())),
			)
		}

		var predicatesExpressionList exp.ExpressionList

		if item.AllPredicatesMustMatch() {
			predicatesExpressionList = goqu.And(predicateExpressions...)
		} else {
			predicatesExpressionList = goqu.Or(predicateExpressions...)
		}

		itemsExpressions = append(
			itemsExpressions,
			goqu.And(eventTypesExpressionList, predicatesExpressionList),
		)
	}

	occurredAtExpressions := make([]goqu.Expression, 0)

	if !filter.OccurredFrom().IsZero() {
		occurredAtExpressions = append(
			occurredAtExpressions,
			goqu.C(colOccurredAt).Gte(filter.OccurredFrom()),
		)
	}

	if !filter.OccurredUntil().IsZero() {
		occurredAtExpressions = append(
			occurredAtExpressions,
			goqu.C(colOccurredAt).Lte(filter.OccurredUntil()),
		)
	}

	selectStmt = selectStmt.Where(
		goqu.And(
			goqu.Or(itemsExpressions...),
			goqu.And(occurredAtExpressions...),
		),
	)

	return selectStmt
}

func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
