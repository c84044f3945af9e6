package outstandingfines

import (
	"time"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// FineInfo represents one pending fine of the holder.
type FineInfo struct {
	FineID      core.FineIDString
	LoanID      core.LoanIDString
	ItemID      core.ItemIDString
	AmountCents int64
	OverdueDays int
	Reason      string
	AssessedAt  time.Time
}

// OutstandingFines represents the query result containing the holder's pending
// fines, ordered by assessment time (oldest first).
type OutstandingFines struct {
	HolderID   core.HolderIDString
	Fines      []FineInfo
	TotalCents int64
	Count      int
}
