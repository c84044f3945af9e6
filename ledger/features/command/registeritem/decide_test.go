package registeritem_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
	"github.com/openshelf/circulation-ledger-go/ledger/features/command/registeritem"
)

func Test_Decide_Success_WhenItemIsNew(t *testing.T) {
	// arrange
	now := time.Now()
	command := registeritem.BuildCommand("item-1", 3, now)

	// act
	result := registeritem.Decide(core.DomainEvents{}, command)

	// assert
	assert.NoError(t, result.HasError())
	assert.False(t, result.IsIdempotent())
	assert.Len(t, result.Events, 1)

	event, ok := result.Events[0].(core.ItemAddedToInventory)
	assert.True(t, ok)
	assert.Equal(t, "item-1", event.ItemID)
	assert.Equal(t, 3, event.TotalCopies)
}

func Test_Decide_Idempotent_WhenItemExistsWithSameCopyCount(t *testing.T) {
	// arrange
	now := time.Now()
	history := core.DomainEvents{
		core.BuildItemAddedToInventory("item-1", 3, now.Add(-time.Hour)),
	}

	command := registeritem.BuildCommand("item-1", 3, now)

	// act
	result := registeritem.Decide(history, command)

	// assert
	assert.True(t, result.IsIdempotent())
	assert.Empty(t, result.Events)
}

func Test_Decide_Error_WhenItemExistsWithDifferentCopyCount(t *testing.T) {
	// arrange
	now := time.Now()
	history := core.DomainEvents{
		core.BuildItemAddedToInventory("item-1", 3, now.Add(-time.Hour)),
	}

	command := registeritem.BuildCommand("item-1", 5, now)

	// act
	result := registeritem.Decide(history, command)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrItemAlreadyRegistered)
	assert.ErrorIs(t, result.HasError(), core.ErrConflict)
}

func Test_Decide_Error_WhenCopyCountIsInvalid(t *testing.T) {
	// arrange
	command := registeritem.BuildCommand("item-1", 0, time.Now())

	// act
	result := registeritem.Decide(core.DomainEvents{}, command)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrInvalidCopyCount)
}
