package currentloans_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
	"github.com/openshelf/circulation-ledger-go/ledger/features/query/currentloans"
)

func Test_Project_ListsOnlyOpenLoansOfTheHolder(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(14*24*time.Hour), now.Add(-48*time.Hour)),
		core.BuildLoanIssued("loan-2", "item-2", "holder-a", "", now.Add(14*24*time.Hour), now.Add(-24*time.Hour)),
		core.BuildLoanIssued("loan-3", "item-3", "holder-b", "", now.Add(14*24*time.Hour), now.Add(-24*time.Hour)),
		core.BuildLoanReturned("loan-1", "item-1", "holder-a", now.Add(-time.Hour)),
	}

	query := currentloans.BuildQuery("holder-a", now)

	// act
	result := currentloans.ProjectCurrentLoans(history, query)

	// assert
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "loan-2", result.Loans[0].LoanID)
	assert.Equal(t, "item-2", result.Loans[0].ItemID)
	assert.Equal(t, core.LoanStatusActive, result.Loans[0].Status)
}

func Test_Project_RenewalUpdatesDueDateAndCount(t *testing.T) {
	// arrange
	now := time.Now()
	originalDue := now.Add(7 * 24 * time.Hour)
	extendedDue := originalDue.Add(14 * 24 * time.Hour)

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", originalDue, now.Add(-24*time.Hour)),
		core.BuildLoanRenewed("loan-1", "item-1", "holder-a", extendedDue, 1, now.Add(-time.Hour)),
	}

	query := currentloans.BuildQuery("holder-a", now)

	// act
	result := currentloans.ProjectCurrentLoans(history, query)

	// assert
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, core.ToOccurredAt(extendedDue), result.Loans[0].DueAt)
	assert.Equal(t, 1, result.Loans[0].RenewalCount)
}

func Test_Project_DerivesOverdueStatusAtQueryTime(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(-time.Hour), now.Add(-14*24*time.Hour)),
	}

	query := currentloans.BuildQuery("holder-a", now)

	// act
	result := currentloans.ProjectCurrentLoans(history, query)

	// assert
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, core.LoanStatusOverdue, result.Loans[0].Status)
}

func Test_Project_OrdersLoansByIssueTime(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-2", "item-2", "holder-a", "", now.Add(14*24*time.Hour), now.Add(-time.Hour)),
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(14*24*time.Hour), now.Add(-48*time.Hour)),
	}

	query := currentloans.BuildQuery("holder-a", now)

	// act
	result := currentloans.ProjectCurrentLoans(history, query)

	// assert
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, "loan-1", result.Loans[0].LoanID)
	assert.Equal(t, "loan-2", result.Loans[1].LoanID)
}

func Test_Project_EmptyHistoryYieldsEmptyResult(t *testing.T) {
	// arrange
	query := currentloans.BuildQuery("holder-a", time.Now())

	// act
	result := currentloans.ProjectCurrentLoans(core.DomainEvents{}, query)

	// assert
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Loans)
}
