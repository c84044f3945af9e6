package notify

import (
	"context"
	"time"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// Promotion describes a reservation that was just promoted to the head of
// its item's queue with a copy earmarked for the holder.
type Promotion struct {
	ReservationID core.ReservationIDString
	ItemID        core.ItemIDString
	HolderID      core.HolderIDString
	PromotedAt    time.Time
}

// PromotionNotifier delivers promotion notifications to the external
// notification/claim collaborator. Implementations must be safe for
// concurrent use.
//
// Delivery is best effort from the ledger's point of view: the Promoted
// state is already committed when NotifyPromotion is called, and a delivery
// failure must not roll it back.
type PromotionNotifier interface {
	NotifyPromotion(ctx context.Context, promotion Promotion) error
}
