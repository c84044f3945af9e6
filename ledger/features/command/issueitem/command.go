package issueitem

import (
	"time"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

const (
	commandType = "IssueItem"
)

// Command represents the intent to lend a copy of an item to a holder.
// LoanID is chosen by the caller so retried requests stay idempotent.
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
