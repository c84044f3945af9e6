package itemavailability

import (
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

const (
	queryType = "ItemAvailability"
)

// Query represents the intent to check how many copies of an item are available.
type Query struct {
	ItemID core.ItemIDString
}

// BuildQuery creates a new Query with the provided item ID.
func BuildQuery(itemID core.ItemIDString) Query {
	return Query{
		ItemID: itemID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
