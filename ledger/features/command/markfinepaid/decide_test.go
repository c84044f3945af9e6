package markfinepaid_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
	"github.com/openshelf/circulation-ledger-go/ledger/features/command/markfinepaid"
)

func Test_Decide_Success_WhenFineIsPending(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildFineAssessed("fine-1", "loan-1", "item-1", "holder-a", 2500, 5, core.FineReasonOverdueReturn, now.Add(-time.Hour)),
	}

	command := markfinepaid.BuildCommand("fine-1", "holder-a", now)

	// act
	result := markfinepaid.Decide(history, command)

	// assert
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)

	event, ok := result.Events[0].(core.FinePaid)
	assert.True(t, ok)
	assert.Equal(t, "fine-1", event.FineID)
	assert.Equal(t, "holder-a", event.HolderID)
}

func Test_Decide_Error_WhenFineIsUnknown(t *testing.T) {
	// arrange
	command := markfinepaid.BuildCommand("fine-1", "holder-a", time.Now())

	// act
	result := markfinepaid.Decide(core.DomainEvents{}, command)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrFineNotFound)
}

func Test_Decide_Idempotent_WhenFineIsAlreadyPaid(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildFineAssessed("fine-1", "loan-1", "item-1", "holder-a", 2500, 5, core.FineReasonOverdueReturn, now.Add(-2*time.Hour)),
		core.BuildFinePaid("fine-1", "holder-a", now.Add(-time.Hour)),
	}

	command := markfinepaid.BuildCommand("fine-1", "holder-a", now)

	// act
	result := markfinepaid.Decide(history, command)

	// assert
	assert.True(t, result.IsIdempotent())
}
