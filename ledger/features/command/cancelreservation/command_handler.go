package cancelreservation

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
	"github.com/openshelf/circulation-ledger-go/ledger/shell"
)

// PromotionObserver is called after a ReservationPromoted event was committed,
// so callers can raise the notification obligation for the promoted holder.
type PromotionObserver func(ctx context.Context, promoted core.ReservationPromoted)

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It handles the core event sourcing workflow: Query -> Unmarshal -> Decide -> Append.
type CommandHandler struct {
	eventStore        shell.EventStore
	retryOptions      []shell.RetryOption
	promotionObserver PromotionObserver
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithPromotionObserver sets the observer invoked for committed promotions.
func WithPromotionObserver(observer PromotionObserver) Option {
	return func(h *CommandHandler) {
		h.promotionObserver = observer
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(eventStore shell.EventStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		eventStore: eventStore,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
// Concurrency conflicts are retried with exponential backoff; exhausting the
// retry budget surfaces as ErrBusy.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := h.executeCommand(retryCtx, command)
		isIdempotent = idempotent

		return execErr
	}, h.retryOptions...)

	if retryMetrics.RetriesExhausted {
		err = errors.Join(shell.ErrBusy, err)
	}

	if isIdempotent {
		return shell.NewIdempotentResult(retryMetrics), err
	}

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	filter := BuildEventFilter(command.ItemID)

	ctx = eventstore.WithStrongConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return false, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return false, err
	}

	result := Decide(history, command)

	if result.IsIdempotent() {
		return true, nil
	}

	if decideErr := result.HasError(); decideErr != nil {
		return false, decideErr
	}

	uid := uuid.New()
	eventMetadata := shell.BuildEventMetadata(uid, uid, uid)

	storables, marshalErr := shell.StorableEventsFrom(result.Events, eventMetadata)
	if marshalErr != nil {
		return false, marshalErr
	}

	if appendErr := h.eventStore.Append(ctx, filter, maxSequenceNumber, storables[0], storables[1:]...); appendErr != nil {
		return false, appendErr
	}

	if h.promotionObserver != nil {
		for _, event := range result.Events {
			if promoted, ok := event.(core.ReservationPromoted); ok {
				h.promotionObserver(ctx, promoted)
			}
		}
	}

	return false, nil
}
