package returnitem

import (
	"time"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

const (
	commandType = "ReturnItem"
)

// Command represents the intent to return a lent copy.
// FineID is chosen by the caller up front and only used when the return turns
// out to be overdue, keeping Decide free of identifier generation.
type Command struct {
	LoanID     core.LoanIDString
	ItemID     core.ItemIDString
	HolderID   core.HolderIDString
	FineID     core.FineIDString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	loanID core.LoanIDString,
	itemID core.ItemIDString,
	holderID core.HolderIDString,
	fineID core.FineIDString,
	occurredAt time.Time,
) Command {
	return Command{
		LoanID:     loanID,
		ItemID:     itemID,
		HolderID:   holderID,
		FineID:     fineID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
