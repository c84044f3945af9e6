package ledger

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
	"github.com/openshelf/circulation-ledger-go/ledger/features/command/cancelreservation"
	"github.com/openshelf/circulation-ledger-go/ledger/features/command/issueitem"
	"github.com/openshelf/circulation-ledger-go/ledger/features/command/markfinepaid"
	"github.com/openshelf/circulation-ledger-go/ledger/features/command/registeritem"
	"github.com/openshelf/circulation-ledger-go/ledger/features/command/renewloan"
	"github.com/openshelf/circulation-ledger-go/ledger/features/command/reserveitem"
	"github.com/openshelf/circulation-ledger-go/ledger/features/command/returnitem"
	"github.com/openshelf/circulation-ledger-go/ledger/features/query/circulationreport"
	"github.com/openshelf/circulation-ledger-go/ledger/features/query/currentloans"
	"github.com/openshelf/circulation-ledger-go/ledger/features/query/itemavailability"
	"github.com/openshelf/circulation-ledger-go/ledger/features/query/loanhistory"
	"github.com/openshelf/circulation-ledger-go/ledger/features/query/outstandingfines"
	"github.com/openshelf/circulation-ledger-go/ledger/features/query/queueposition"
	"github.com/openshelf/circulation-ledger-go/ledger/notify"
	"github.com/openshelf/circulation-ledger-go/ledger/shell"
)

// LoanOutcome reports the result of one loan in a batch operation.
// Err is nil for a committed transition and carries the rule violation
// (e.g. core.ErrAlreadyReturned) otherwise.
type LoanOutcome struct {
	LoanID core.LoanIDString
	Err    error
}

// CirculationService is the facade composing all circulation use cases on one
// event store. Safe for concurrent use; every command is an independent
// optimistically-locked transaction.
type CirculationService struct {
	eventStore       shell.EventStore
	policy           core.CirculationPolicy
	notifier         notify.PromotionNotifier
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector

	registerItem      registeritem.CommandHandler
	issueItem         issueitem.CommandHandler
	returnItem        returnitem.CommandHandler
	renewLoan         renewloan.CommandHandler
	reserveItem       reserveitem.CommandHandler
	cancelReservation cancelreservation.CommandHandler
	markFinePaid      markfinepaid.CommandHandler

	currentLoans      currentloans.QueryHandler
	loanHistory       loanhistory.QueryHandler
	outstandingFines  outstandingfines.QueryHandler
	itemAvailability  itemavailability.QueryHandler
	queuePosition     queueposition.QueryHandler
	circulationReport circulationreport.QueryHandler
}

// ServiceOption configures a CirculationService.
type ServiceOption func(*CirculationService)

// WithPolicy overrides the default circulation policy.
func WithPolicy(policy core.CirculationPolicy) ServiceOption {
	return func(s *CirculationService) {
		s.policy = policy
	}
}

// WithPromotionNotifier sets the collaborator receiving promotion notifications.
func WithPromotionNotifier(notifier notify.PromotionNotifier) ServiceOption {
	return func(s *CirculationService) {
		s.notifier = notifier
	}
}

// WithLogging sets the basic logger for the service.
func WithLogging(logger shell.Logger) ServiceOption {
	return func(s *CirculationService) {
		s.logger = logger
	}
}

// WithContextualLogging sets the context-aware logger for the service.
func WithContextualLogging(logger shell.ContextualLogger) ServiceOption {
	return func(s *CirculationService) {
		s.contextualLogger = logger
	}
}

// WithMetrics sets the metrics collector passed to the query handlers.
func WithMetrics(collector shell.MetricsCollector) ServiceOption {
	return func(s *CirculationService) {
		s.metricsCollector = collector
	}
}

// WithTracing sets the tracing collector passed to the query handlers.
func WithTracing(collector shell.TracingCollector) ServiceOption {
	return func(s *CirculationService) {
		s.tracingCollector = collector
	}
}

// NewCirculationService creates the facade with all handlers wired to the
// provided event store. Without options it uses the default policy and no
// promotion notifier.
func NewCirculationService(eventStore shell.EventStore, opts ...ServiceOption) *CirculationService {
	s := &CirculationService{
		eventStore: eventStore,
		policy:     core.DefaultCirculationPolicy(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerItem = registeritem.NewCommandHandler(eventStore)
	s.issueItem = issueitem.NewCommandHandler(eventStore, s.policy)
	s.returnItem = returnitem.NewCommandHandler(
		eventStore,
		s.policy,
		returnitem.WithPromotionObserver(s.onPromotion),
	)
	s.renewLoan = renewloan.NewCommandHandler(eventStore, s.policy)
	s.reserveItem = reserveitem.NewCommandHandler(eventStore)
	s.cancelReservation = cancelreservation.NewCommandHandler(
		eventStore,
		cancelreservation.WithPromotionObserver(s.onPromotion),
	)
	s.markFinePaid = markfinepaid.NewCommandHandler(eventStore)

	s.currentLoans = currentloans.NewQueryHandler(eventStore,
		queryOptionsFor(s, currentloans.WithMetrics, currentloans.WithTracing, currentloans.WithContextualLogging, currentloans.WithLogging)...)
	s.loanHistory = loanhistory.NewQueryHandler(eventStore,
		queryOptionsFor(s, loanhistory.WithMetrics, loanhistory.WithTracing, loanhistory.WithContextualLogging, loanhistory.WithLogging)...)
	s.outstandingFines = outstandingfines.NewQueryHandler(eventStore,
		queryOptionsFor(s, outstandingfines.WithMetrics, outstandingfines.WithTracing, outstandingfines.WithContextualLogging, outstandingfines.WithLogging)...)
	s.itemAvailability = itemavailability.NewQueryHandler(eventStore,
		queryOptionsFor(s, itemavailability.WithMetrics, itemavailability.WithTracing, itemavailability.WithContextualLogging, itemavailability.WithLogging)...)
	s.queuePosition = queueposition.NewQueryHandler(eventStore,
		queryOptionsFor(s, queueposition.WithMetrics, queueposition.WithTracing, queueposition.WithContextualLogging, queueposition.WithLogging)...)
	s.circulationReport = circulationreport.NewQueryHandler(eventStore,
		queryOptionsFor(s, circulationreport.WithMetrics, circulationreport.WithTracing, circulationreport.WithContextualLogging, circulationreport.WithLogging)...)

	return s
}

// queryOptionsFor assembles the observability options for one query handler
// from the collaborators configured on the service.
func queryOptionsFor[O any](
	s *CirculationService,
	withMetrics func(shell.MetricsCollector) O,
	withTracing func(shell.TracingCollector) O,
	withContextualLogging func(shell.ContextualLogger) O,
	withLogging func(shell.Logger) O,
) []O {

	opts := make([]O, 0, 4)

	if s.metricsCollector != nil {
		opts = append(opts, withMetrics(s.metricsCollector))
	}

	if s.tracingCollector != nil {
		opts = append(opts, withTracing(s.tracingCollector))
	}

	if s.contextualLogger != nil {
		opts = append(opts, withContextualLogging(s.contextualLogger))
	}

	if s.logger != nil {
		opts = append(opts, withLogging(s.logger))
	}

	return opts
}

/***** Commands *****/

// RegisterItem adds an item with the given number of copies to the inventory.
// Idempotent for a repeated registration with the same copy count.
func (s *CirculationService) RegisterItem(
	ctx context.Context,
	itemID core.ItemIDString,
	totalCopies int,
	at time.Time,
) error {

	_, err := s.registerItem.Handle(ctx, registeritem.BuildCommand(itemID, totalCopies, at))

	return err
}

// IssueItem lends a copy of the item to the holder under a caller-chosen loan ID.
// A holder with a promoted reservation for the item claims the earmarked copy,
// fulfilling the reservation.
func (s *CirculationService) IssueItem(
	ctx context.Context,
	loanID core.LoanIDString,
	itemID core.ItemIDString,
	holderID core.HolderIDString,
	at time.Time,
) error {

	_, err := s.issueItem.Handle(ctx, issueitem.BuildCommand(loanID, itemID, holderID, at))

	return err
}

// ReserveItem places the holder in the item's FIFO queue under a caller-chosen
// reservation ID. Fails with core.ErrItemAvailable while a free copy exists.
func (s *CirculationService) ReserveItem(
	ctx context.Context,
	reservationID core.ReservationIDString,
	itemID core.ItemIDString,
	holderID core.HolderIDString,
	at time.Time,
) error {

	_, err := s.reserveItem.Handle(ctx, reserveitem.BuildCommand(reservationID, itemID, holderID, at))

	return err
}

// CancelReservation drops a waiting reservation from the queue, or releases a
// promoted reservation's earmarked copy, promoting the next waiting holder.
func (s *CirculationService) CancelReservation(
	ctx context.Context,
	reservationID core.ReservationIDString,
	itemID core.ItemIDString,
	holderID core.HolderIDString,
	at time.Time,
) error {

	_, err := s.cancelReservation.Handle(ctx, cancelreservation.BuildCommand(reservationID, itemID, holderID, at))

	return err
}

// MarkFinePaid settles a pending fine. Idempotent for an already paid fine.
func (s *CirculationService) MarkFinePaid(
	ctx context.Context,
	fineID core.FineIDString,
	holderID core.HolderIDString,
	at time.Time,
) error {

	_, err := s.markFinePaid.Handle(ctx, markfinepaid.BuildCommand(fineID, holderID, at))

	return err
}

// ReturnBatch returns the given loans, one independent transaction per loan in
// ascending loan-id order. Partial success is allowed: each loan gets its own
// outcome and a failing loan never blocks the others.
func (s *CirculationService) ReturnBatch(
	ctx context.Context,
	loanIDs []core.LoanIDString,
	at time.Time,
) []LoanOutcome {

	outcomes := make([]LoanOutcome, 0, len(loanIDs))

	for _, loanID := range sortedLoanIDSet(loanIDs) {
		outcomes = append(outcomes, LoanOutcome{LoanID: loanID, Err: s.returnOne(ctx, loanID, at)})
	}

	return outcomes
}

func (s *CirculationService) returnOne(ctx context.Context, loanID core.LoanIDString, at time.Time) error {
	issued, err := s.resolveLoan(ctx, loanID)
	if err != nil {
		return err
	}

	fineID := uuid.NewString()

	_, err = s.returnItem.Handle(
		ctx,
		returnitem.BuildCommand(loanID, issued.ItemID, issued.HolderID, fineID, at),
	)

	return err
}

// RenewBatch renews the given loans, one independent transaction per loan in
// ascending loan-id order, with the same partial-success semantics as ReturnBatch.
func (s *CirculationService) RenewBatch(
	ctx context.Context,
	loanIDs []core.LoanIDString,
	at time.Time,
) []LoanOutcome {

	outcomes := make([]LoanOutcome, 0, len(loanIDs))

	for _, loanID := range sortedLoanIDSet(loanIDs) {
		outcomes = append(outcomes, LoanOutcome{LoanID: loanID, Err: s.renewOne(ctx, loanID, at)})
	}

	return outcomes
}

func (s *CirculationService) renewOne(ctx context.Context, loanID core.LoanIDString, at time.Time) error {
	issued, err := s.resolveLoan(ctx, loanID)
	if err != nil {
		return err
	}

	_, err = s.renewLoan.Handle(
		ctx,
		renewloan.BuildCommand(loanID, issued.ItemID, issued.HolderID, at),
	)

	return err
}

/***** Queries *****/

// CurrentLoans lists the holder's unreturned loans with derived statuses.
func (s *CirculationService) CurrentLoans(
	ctx context.Context,
	holderID core.HolderIDString,
	asOf time.Time,
) (currentloans.CurrentLoans, error) {

	return s.currentLoans.Handle(ctx, currentloans.BuildQuery(holderID, asOf))
}

// LoanHistory lists all loans the holder ever had, including returned ones.
func (s *CirculationService) LoanHistory(
	ctx context.Context,
	holderID core.HolderIDString,
	asOf time.Time,
) (loanhistory.LoanHistory, error) {

	return s.loanHistory.Handle(ctx, loanhistory.BuildQuery(holderID, asOf))
}

// OutstandingFines lists the holder's pending fines and their total in cents.
func (s *CirculationService) OutstandingFines(
	ctx context.Context,
	holderID core.HolderIDString,
) (outstandingfines.OutstandingFines, error) {

	return s.outstandingFines.Handle(ctx, outstandingfines.BuildQuery(holderID))
}

// ItemAvailability reports available copies, queue length and the earliest due
// date among active loans when no copy is available.
func (s *CirculationService) ItemAvailability(
	ctx context.Context,
	itemID core.ItemIDString,
) (itemavailability.ItemAvailability, error) {

	return s.itemAvailability.Handle(ctx, itemavailability.BuildQuery(itemID))
}

// QueuePosition reports a reservation's 1-based rank in its item's queue, or
// its terminal status once promoted, fulfilled or canceled.
func (s *CirculationService) QueuePosition(
	ctx context.Context,
	reservationID core.ReservationIDString,
	itemID core.ItemIDString,
) (queueposition.QueuePosition, error) {

	return s.queuePosition.Handle(ctx, queueposition.BuildQuery(reservationID, itemID))
}

// CirculationReport aggregates circulation activity in the given window using
// the eventual-consistency read path.
func (s *CirculationService) CirculationReport(
	ctx context.Context,
	from time.Time,
	until time.Time,
) (circulationreport.CirculationReport, error) {

	return s.circulationReport.Handle(ctx, circulationreport.BuildQuery(from, until))
}

/***** Internals *****/

// resolveLoan finds the loan's issue event to recover its item and holder.
func (s *CirculationService) resolveLoan(ctx context.Context, loanID core.LoanIDString) (core.LoanIssued, error) {
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.LoanIssuedEventType).
		AndAnyPredicateOf(eventstore.P("LoanID", loanID)).
		Finalize()

	ctx = eventstore.WithStrongConsistency(ctx)

	storableEvents, _, err := s.eventStore.Query(ctx, filter)
	if err != nil {
		return core.LoanIssued{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return core.LoanIssued{}, err
	}

	for _, event := range history {
		if issued, ok := event.(core.LoanIssued); ok {
			return issued, nil
		}
	}

	return core.LoanIssued{}, core.ErrLoanNotFound
}

// onPromotion raises the notification obligation for a committed promotion.
// Delivery failures are logged and never fail the command that promoted.
func (s *CirculationService) onPromotion(ctx context.Context, promoted core.ReservationPromoted) {
	if s.notifier == nil {
		return
	}

	promotion := notify.Promotion{
		ReservationID: promoted.ReservationID,
		ItemID:        promoted.ItemID,
		HolderID:      promoted.HolderID,
		PromotedAt:    promoted.OccurredAt,
	}

	if err := s.notifier.NotifyPromotion(ctx, promotion); err != nil {
		switch {
		case s.contextualLogger != nil:
			s.contextualLogger.ErrorContext(ctx, "promotion notification failed",
				"reservation_id", promoted.ReservationID, "error", err.Error())
		case s.logger != nil:
			s.logger.Error("promotion notification failed",
				"reservation_id", promoted.ReservationID, "error", err.Error())
		}
	}
}

// sortedLoanIDSet sorts the loan IDs ascending and drops duplicates, giving
// batches a stable lock order.
func sortedLoanIDSet(loanIDs []core.LoanIDString) []core.LoanIDString {
	sorted := slices.Clone(loanIDs)
	slices.Sort(sorted)

	return slices.Compact(sorted)
}
