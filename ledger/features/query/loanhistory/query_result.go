package loanhistory

import (
	"time"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// LoanRecord represents one loan of the holder, open or closed.
// ReturnedAt is the zero time while the loan is open. FineID and FineCents
// are set when an overdue return assessed a fine against the loan.
type LoanRecord struct {
	LoanID       core.LoanIDString
	ItemID       core.ItemIDString
	IssuedAt     time.Time
	DueAt        time.Time
	ReturnedAt   time.Time
	RenewalCount int
	Status       core.LoanStatus
	FineID       core.FineIDString
	FineCents    int64
}

// LoanHistory represents the query result containing the holder's full lending
// history, ordered by issue time (oldest first).
type LoanHistory struct {
	HolderID core.HolderIDString
	Loans    []LoanRecord
	Count    int
}
