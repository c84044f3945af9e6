package notify

import (
	"context"

	"github.com/openshelf/circulation-ledger-go/ledger/shell"
)

// LogNotifier records promotions in the log instead of calling an external
// collaborator. Useful for local development and tests.
type LogNotifier struct {
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
}

// NewLogNotifier creates a notifier writing to the provided logger.
func NewLogNotifier(logger shell.Logger) LogNotifier {
	return LogNotifier{logger: logger}
}

// NewContextualLogNotifier creates a notifier writing to the provided
// context-aware logger.
func NewContextualLogNotifier(logger shell.ContextualLogger) LogNotifier {
	return LogNotifier{contextualLogger: logger}
}

// NotifyPromotion logs the promotion and always succeeds.
func (n LogNotifier) NotifyPromotion(ctx context.Context, promotion Promotion) error {
	args := []any{
		"reservation_id", promotion.ReservationID,
		"item_id", promotion.ItemID,
		"holder_id", promotion.HolderID,
		"promoted_at", promotion.PromotedAt,
	}

	switch {
	case n.contextualLogger != nil:
		n.contextualLogger.InfoContext(ctx, "reservation promoted", args...)
	case n.logger != nil:
		n.logger.Info("reservation promoted", args...)
	}

	return nil
}
