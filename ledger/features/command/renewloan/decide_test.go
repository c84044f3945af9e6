package renewloan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
	"github.com/openshelf/circulation-ledger-go/ledger/features/command/renewloan"
)

func testPolicy() core.CirculationPolicy {
	return core.CirculationPolicy{
		LoanPeriod:      14 * 24 * time.Hour,
		MaxRenewals:     2,
		FinePerDayCents: 500,
		MaxFineCents:    10000,
	}
}

func Test_Decide_Success_ExtendsDueDateByLoanPeriod(t *testing.T) {
	// arrange
	now := time.Now()
	policy := testPolicy()
	dueAt := core.ToOccurredAt(now.Add(48 * time.Hour))

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", dueAt, now.Add(-24*time.Hour)),
	}

	command := renewloan.BuildCommand("loan-1", "item-1", "holder-a", now)

	// act
	result := renewloan.Decide(history, command, policy)

	// assert
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)

	event, ok := result.Events[0].(core.LoanRenewed)
	assert.True(t, ok)
	assert.Equal(t, dueAt.Add(policy.LoanPeriod), event.DueAt)
	assert.Equal(t, 1, event.RenewalCount)
}

func Test_Decide_Success_SecondRenewalCountsUp(t *testing.T) {
	// arrange
	now := time.Now()
	policy := testPolicy()
	dueAt := core.ToOccurredAt(now.Add(48 * time.Hour))

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(-24*time.Hour), now.Add(-48*time.Hour)),
		core.BuildLoanRenewed("loan-1", "item-1", "holder-a", dueAt, 1, now.Add(-12*time.Hour)),
	}

	command := renewloan.BuildCommand("loan-1", "item-1", "holder-a", now)

	// act
	result := renewloan.Decide(history, command, policy)

	// assert
	assert.NoError(t, result.HasError())

	event, ok := result.Events[0].(core.LoanRenewed)
	assert.True(t, ok)
	assert.Equal(t, 2, event.RenewalCount)
	assert.Equal(t, dueAt.Add(policy.LoanPeriod), event.DueAt)
}

func Test_Decide_Error_WhenLoanIsUnknown(t *testing.T) {
	// arrange
	command := renewloan.BuildCommand("loan-1", "item-1", "holder-a", time.Now())

	// act
	result := renewloan.Decide(core.DomainEvents{}, command, testPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrLoanNotFound)
}

func Test_Decide_Error_WhenLoanIsAlreadyReturned(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(48*time.Hour), now.Add(-24*time.Hour)),
		core.BuildLoanReturned("loan-1", "item-1", "holder-a", now.Add(-time.Hour)),
	}

	command := renewloan.BuildCommand("loan-1", "item-1", "holder-a", now)

	// act
	result := renewloan.Decide(history, command, testPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrAlreadyReturned)
}

func Test_Decide_Error_WhenLoanIsOverdue_RegardlessOfFineStatus(t *testing.T) {
	// arrange: overdue AND a pending fine - AlreadyOverdue must win
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(-48*time.Hour), now.Add(-16*24*time.Hour)),
		core.BuildFineAssessed("fine-1", "loan-9", "item-9", "holder-a", 500, 1, core.FineReasonOverdueReturn, now.Add(-24*time.Hour)),
	}

	command := renewloan.BuildCommand("loan-1", "item-1", "holder-a", now)

	// act
	result := renewloan.Decide(history, command, testPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrAlreadyOverdue)
}

func Test_Decide_Error_WhenHolderHasPendingFineOnAnotherLoan(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(48*time.Hour), now.Add(-24*time.Hour)),
		core.BuildFineAssessed("fine-1", "loan-9", "item-9", "holder-a", 500, 1, core.FineReasonOverdueReturn, now.Add(-12*time.Hour)),
	}

	command := renewloan.BuildCommand("loan-1", "item-1", "holder-a", now)

	// act
	result := renewloan.Decide(history, command, testPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrOutstandingFine)
}

func Test_Decide_Success_WhenHolderPaidTheirFine(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(48*time.Hour), now.Add(-24*time.Hour)),
		core.BuildFineAssessed("fine-1", "loan-9", "item-9", "holder-a", 500, 1, core.FineReasonOverdueReturn, now.Add(-12*time.Hour)),
		core.BuildFinePaid("fine-1", "holder-a", now.Add(-6*time.Hour)),
	}

	command := renewloan.BuildCommand("loan-1", "item-1", "holder-a", now)

	// act
	result := renewloan.Decide(history, command, testPolicy())

	// assert
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)
}

func Test_Decide_Error_WhenRenewalLimitIsReached(t *testing.T) {
	// arrange: MaxRenewals is 2 and the loan was renewed twice already
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(-24*time.Hour), now.Add(-48*time.Hour)),
		core.BuildLoanRenewed("loan-1", "item-1", "holder-a", now.Add(24*time.Hour), 1, now.Add(-36*time.Hour)),
		core.BuildLoanRenewed("loan-1", "item-1", "holder-a", now.Add(48*time.Hour), 2, now.Add(-24*time.Hour)),
	}

	command := renewloan.BuildCommand("loan-1", "item-1", "holder-a", now)

	// act
	result := renewloan.Decide(history, command, testPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrRenewalLimitExceeded)
}
