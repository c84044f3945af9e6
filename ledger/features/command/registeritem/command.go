package registeritem

import (
	"time"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

const (
	commandType = "RegisterItem"
)

// Command represents the intent to register a catalog item with its copy count.
type Command struct {
	ItemID      core.ItemIDString
	TotalCopies int
	OccurredAt  core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(itemID core.ItemIDString, totalCopies int, occurredAt time.Time) Command {
	return Command{
		ItemID:      itemID,
		TotalCopies: totalCopies,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
