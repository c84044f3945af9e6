package loanhistory

import (
	"time"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

const (
	queryType = "LoanHistory"
)

// Query represents the intent to list a holder's full lending history.
type Query struct {
	HolderID core.HolderIDString
	AsOf     time.Time
}

// BuildQuery creates a new Query with the provided holder ID and as-of time.
func BuildQuery(holderID core.HolderIDString, asOf time.Time) Query {
	return Query{
		HolderID: holderID,
		AsOf:     core.ToOccurredAt(asOf),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
