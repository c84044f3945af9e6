package loanhistory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
	"github.com/openshelf/circulation-ledger-go/ledger/features/query/loanhistory"
)

func Test_Project_IncludesReturnedLoans(t *testing.T) {
	// arrange
	now := time.Now()
	returnedAt := now.Add(-time.Hour)

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(14*24*time.Hour), now.Add(-48*time.Hour)),
		core.BuildLoanReturned("loan-1", "item-1", "holder-a", returnedAt),
		core.BuildLoanIssued("loan-2", "item-2", "holder-a", "", now.Add(14*24*time.Hour), now.Add(-24*time.Hour)),
	}

	query := loanhistory.BuildQuery("holder-a", now)

	// act
	result := loanhistory.ProjectLoanHistory(history, query)

	// assert
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, "loan-1", result.Loans[0].LoanID)
	assert.Equal(t, core.LoanStatusReturned, result.Loans[0].Status)
	assert.Equal(t, core.ToOccurredAt(returnedAt), result.Loans[0].ReturnedAt)
	assert.Equal(t, "loan-2", result.Loans[1].LoanID)
	assert.Equal(t, core.LoanStatusActive, result.Loans[1].Status)
	assert.True(t, result.Loans[1].ReturnedAt.IsZero())
}

func Test_Project_ReturnedLoanStaysReturnedEvenWhenDueDateHasPassed(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(-5*24*time.Hour), now.Add(-20*24*time.Hour)),
		core.BuildLoanReturned("loan-1", "item-1", "holder-a", now.Add(-24*time.Hour)),
	}

	query := loanhistory.BuildQuery("holder-a", now)

	// act
	result := loanhistory.ProjectLoanHistory(history, query)

	// assert
	assert.Equal(t, core.LoanStatusReturned, result.Loans[0].Status)
}

func Test_Project_IgnoresLoansOfOtherHolders(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-b", "", now.Add(14*24*time.Hour), now.Add(-24*time.Hour)),
	}

	query := loanhistory.BuildQuery("holder-a", now)

	// act
	result := loanhistory.ProjectLoanHistory(history, query)

	// assert
	assert.Equal(t, 0, result.Count)
}

func Test_Project_AttachesFinesToTheirLoans(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(-5*24*time.Hour), now.Add(-20*24*time.Hour)),
		core.BuildLoanReturned("loan-1", "item-1", "holder-a", now.Add(-24*time.Hour)),
		core.BuildFineAssessed("fine-1", "loan-1", "item-1", "holder-a", 2000, 4, core.FineReasonOverdueReturn, now.Add(-24*time.Hour)),
	}

	query := loanhistory.BuildQuery("holder-a", now)

	// act
	result := loanhistory.ProjectLoanHistory(history, query)

	// assert
	assert.Equal(t, "fine-1", result.Loans[0].FineID)
	assert.Equal(t, int64(2000), result.Loans[0].FineCents)
}

func Test_Project_RenewalsAreReflectedInDueDateAndCount(t *testing.T) {
	// arrange
	now := time.Now()
	extendedDue := now.Add(28 * 24 * time.Hour)

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(14*24*time.Hour), now.Add(-24*time.Hour)),
		core.BuildLoanRenewed("loan-1", "item-1", "holder-a", extendedDue, 2, now.Add(-time.Hour)),
	}

	query := loanhistory.BuildQuery("holder-a", now)

	// act
	result := loanhistory.ProjectLoanHistory(history, query)

	// assert
	assert.Equal(t, core.ToOccurredAt(extendedDue), result.Loans[0].DueAt)
	assert.Equal(t, 2, result.Loans[0].RenewalCount)
}
