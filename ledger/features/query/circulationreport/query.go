package circulationreport

import (
	"time"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

const (
	queryType = "CirculationReport"
)

// Query represents the intent to aggregate circulation activity in a time window.
// The window is inclusive of From and Until.
type Query struct {
	From  time.Time
	Until time.Time
}

// BuildQuery creates a new Query with the provided reporting window.
func BuildQuery(from time.Time, until time.Time) Query {
	return Query{
		From:  core.ToOccurredAt(from),
		Until: core.ToOccurredAt(until),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
