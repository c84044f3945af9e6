package currentloans

import (
	"time"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// LoanInfo represents one open loan of the holder.
type LoanInfo struct {
	LoanID       core.LoanIDString
	ItemID       core.ItemIDString
	IssuedAt     time.Time
	DueAt        time.Time
	RenewalCount int
	Status       core.LoanStatus
}

// CurrentLoans represents the query result containing the holder's open loans,
// ordered by issue time (oldest first).
type CurrentLoans struct {
	HolderID core.HolderIDString
	Loans    []LoanInfo
	Count    int
}
