package renewloan

import (
	"time"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

const (
	commandType = "RenewLoan"
)

// Command represents the intent to extend a loan's due date.
type Command struct {
	LoanID     core.LoanIDString
	ItemID     core.ItemIDString
	HolderID   core.HolderIDString
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
	occurredAt time.Time,
) Command {
	return Command{
		LoanID:     loanID,
		ItemID:     itemID,
		HolderID:   holderID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
