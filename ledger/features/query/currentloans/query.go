package currentloans

import (
	"time"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

const (
	queryType = "CurrentLoans"
)

// Query represents the intent to list a holder's open loans.
// AsOf determines which of them count as Overdue.
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
