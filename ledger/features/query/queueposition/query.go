package queueposition

import (
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

const (
	queryType = "QueuePosition"
)

// Query represents the intent to check a reservation's place in an item's queue.
type Query struct {
	ReservationID core.ReservationIDString
	ItemID        core.ItemIDString
}

// BuildQuery creates a new Query with the provided reservation and item IDs.
func BuildQuery(reservationID core.ReservationIDString, itemID core.ItemIDString) Query {
	return Query{
		ReservationID: reservationID,
		ItemID:        itemID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
