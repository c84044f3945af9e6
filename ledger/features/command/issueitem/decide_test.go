package issueitem_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
	"github.com/openshelf/circulation-ledger-go/ledger/features/command/issueitem"
)

func Test_Decide_Success_WhenCopyIsAvailable(t *testing.T) {
	// arrange
	now := time.Now()
	policy := core.DefaultCirculationPolicy()

	history := core.DomainEvents{
		core.BuildItemAddedToInventory("item-1", 2, now.Add(-24*time.Hour)),
	}

	command := issueitem.BuildCommand("loan-1", "item-1", "holder-a", now)

	// act
	result := issueitem.Decide(history, command, policy)

	// assert
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)

	event, ok := result.Events[0].(core.LoanIssued)
	assert.True(t, ok)
	assert.Equal(t, "loan-1", event.LoanID)
	assert.Equal(t, "holder-a", event.HolderID)
	assert.Empty(t, event.ReservationID)
	assert.Equal(t, core.ToOccurredAt(now.Add(policy.LoanPeriod)), event.DueAt)
}

func Test_Decide_Error_WhenItemIsNotRegistered(t *testing.T) {
	// arrange
	command := issueitem.BuildCommand("loan-1", "item-1", "holder-a", time.Now())

	// act
	result := issueitem.Decide(core.DomainEvents{}, command, core.DefaultCirculationPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrItemNotFound)
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
}

func Test_Decide_Idempotent_WhenLoanWithSameIDExists(t *testing.T) {
	// arrange
	now := time.Now()
	policy := core.DefaultCirculationPolicy()

	history := core.DomainEvents{
		core.BuildItemAddedToInventory("item-1", 2, now.Add(-24*time.Hour)),
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(policy.LoanPeriod), now.Add(-time.Hour)),
	}

	command := issueitem.BuildCommand("loan-1", "item-1", "holder-a", now)

	// act
	result := issueitem.Decide(history, command, policy)

	// assert
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Error_WhenHolderAlreadyHoldsTheItem(t *testing.T) {
	// arrange
	now := time.Now()
	policy := core.DefaultCirculationPolicy()

	history := core.DomainEvents{
		core.BuildItemAddedToInventory("item-1", 2, now.Add(-24*time.Hour)),
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(policy.LoanPeriod), now.Add(-time.Hour)),
	}

	command := issueitem.BuildCommand("loan-2", "item-1", "holder-a", now)

	// act
	result := issueitem.Decide(history, command, policy)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrDuplicateLoan)
}

func Test_Decide_Success_AfterReturn_HolderCanBorrowAgain(t *testing.T) {
	// arrange
	now := time.Now()
	policy := core.DefaultCirculationPolicy()

	history := core.DomainEvents{
		core.BuildItemAddedToInventory("item-1", 1, now.Add(-48*time.Hour)),
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(policy.LoanPeriod), now.Add(-24*time.Hour)),
		core.BuildLoanReturned("loan-1", "item-1", "holder-a", now.Add(-time.Hour)),
	}

	command := issueitem.BuildCommand("loan-2", "item-1", "holder-a", now)

	// act
	result := issueitem.Decide(history, command, policy)

	// assert
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)
}

func Test_Decide_Error_WhenAllCopiesAreLentOut(t *testing.T) {
	// arrange
	now := time.Now()
	policy := core.DefaultCirculationPolicy()

	history := core.DomainEvents{
		core.BuildItemAddedToInventory("item-1", 1, now.Add(-24*time.Hour)),
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(policy.LoanPeriod), now.Add(-time.Hour)),
	}

	command := issueitem.BuildCommand("loan-2", "item-1", "holder-b", now)

	// act
	result := issueitem.Decide(history, command, policy)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrItemUnavailable)
}

func Test_Decide_Success_PromotedHolderClaimsEarmarkedCopy(t *testing.T) {
	// arrange: total=1, the only copy was returned and earmarked for holder-b
	now := time.Now()
	policy := core.DefaultCirculationPolicy()

	history := core.DomainEvents{
		core.BuildItemAddedToInventory("item-1", 1, now.Add(-72*time.Hour)),
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(policy.LoanPeriod), now.Add(-48*time.Hour)),
		core.BuildReservationPlaced("res-1", "item-1", "holder-b", now.Add(-24*time.Hour)),
		core.BuildLoanReturned("loan-1", "item-1", "holder-a", now.Add(-time.Hour)),
		core.BuildReservationPromoted("res-1", "item-1", "holder-b", now.Add(-time.Hour)),
	}

	command := issueitem.BuildCommand("loan-2", "item-1", "holder-b", now)

	// act
	result := issueitem.Decide(history, command, policy)

	// assert
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)

	event, ok := result.Events[0].(core.LoanIssued)
	assert.True(t, ok)
	assert.Equal(t, "res-1", event.ReservationID)
}

func Test_Decide_Error_EarmarkedCopyIsNotAvailableToOthers(t *testing.T) {
	// arrange: the only copy is earmarked for holder-b, holder-c wants it
	now := time.Now()
	policy := core.DefaultCirculationPolicy()

	history := core.DomainEvents{
		core.BuildItemAddedToInventory("item-1", 1, now.Add(-72*time.Hour)),
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(policy.LoanPeriod), now.Add(-48*time.Hour)),
		core.BuildReservationPlaced("res-1", "item-1", "holder-b", now.Add(-24*time.Hour)),
		core.BuildLoanReturned("loan-1", "item-1", "holder-a", now.Add(-time.Hour)),
		core.BuildReservationPromoted("res-1", "item-1", "holder-b", now.Add(-time.Hour)),
	}

	command := issueitem.BuildCommand("loan-2", "item-1", "holder-c", now)

	// act
	result := issueitem.Decide(history, command, policy)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrItemUnavailable)
}

func Test_Decide_Success_AfterPromotedReservationCanceled_CopyIsFreeAgain(t *testing.T) {
	// arrange
	now := time.Now()
	policy := core.DefaultCirculationPolicy()

	history := core.DomainEvents{
		core.BuildItemAddedToInventory("item-1", 1, now.Add(-72*time.Hour)),
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(policy.LoanPeriod), now.Add(-48*time.Hour)),
		core.BuildReservationPlaced("res-1", "item-1", "holder-b", now.Add(-24*time.Hour)),
		core.BuildLoanReturned("loan-1", "item-1", "holder-a", now.Add(-2*time.Hour)),
		core.BuildReservationPromoted("res-1", "item-1", "holder-b", now.Add(-2*time.Hour)),
		core.BuildReservationCanceled("res-1", "item-1", "holder-b", true, now.Add(-time.Hour)),
	}

	command := issueitem.BuildCommand("loan-2", "item-1", "holder-c", now)

	// act
	result := issueitem.Decide(history, command, policy)

	// assert
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)
}
