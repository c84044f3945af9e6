package outstandingfines

import (
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

const (
	queryType = "OutstandingFines"
)

// Query represents the intent to list a holder's pending fines.
type Query struct {
	HolderID core.HolderIDString
}

// BuildQuery creates a new Query with the provided holder ID.
func BuildQuery(holderID core.HolderIDString) Query {
	return Query{
		HolderID: holderID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
