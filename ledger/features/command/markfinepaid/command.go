package markfinepaid

import (
	"time"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

const (
	commandType = "MarkFinePaid"
)

// Command represents the intent to settle a pending fine.
type Command struct {
	FineID     core.FineIDString
	HolderID   core.HolderIDString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	fineID core.FineIDString,
	holderID core.HolderIDString,
	occurredAt time.Time,
) Command {
	return Command{
		FineID:     fineID,
		HolderID:   holderID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
