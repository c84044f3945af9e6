package core

import (
	"time"
)

const ItemAddedToInventoryEventType = "ItemAddedToInventory"

// ItemAddedToInventory records that an item entered the catalog with a fixed
// number of copies.
type ItemAddedToInventory struct {
	ItemID      ItemIDString
	TotalCopies int
	OccurredAt  OccurredAtTS
}

// BuildItemAddedToInventory creates a new ItemAddedToInventory event.
func BuildItemAddedToInventory(
	itemID ItemIDString,
	totalCopies int,
	occurredAt time.Time,
) ItemAddedToInventory {
	return ItemAddedToInventory{
		ItemID:      itemID,
		TotalCopies: totalCopies,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ItemAddedToInventory) EventType() string {
	return ItemAddedToInventoryEventType
}

// HasOccurredAt returns when the event occurred.
func (e ItemAddedToInventory) HasOccurredAt() time.Time {
	return e.OccurredAt
}
