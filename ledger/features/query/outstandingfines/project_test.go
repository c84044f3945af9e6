package outstandingfines_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
	"github.com/openshelf/circulation-ledger-go/ledger/features/query/outstandingfines"
)

func Test_Project_SumsPendingFines(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildFineAssessed("fine-1", "loan-1", "item-1", "holder-a", 2500, 5, core.FineReasonOverdueReturn, now.Add(-48*time.Hour)),
		core.BuildFineAssessed("fine-2", "loan-2", "item-2", "holder-a", 1000, 2, core.FineReasonOverdueReturn, now.Add(-24*time.Hour)),
	}

	query := outstandingfines.BuildQuery("holder-a")

	// act
	result := outstandingfines.ProjectOutstandingFines(history, query)

	// assert
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, int64(3500), result.TotalCents)
	assert.Equal(t, "fine-1", result.Fines[0].FineID)
	assert.Equal(t, "fine-2", result.Fines[1].FineID)
}

func Test_Project_ExcludesPaidFines(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildFineAssessed("fine-1", "loan-1", "item-1", "holder-a", 2500, 5, core.FineReasonOverdueReturn, now.Add(-48*time.Hour)),
		core.BuildFineAssessed("fine-2", "loan-2", "item-2", "holder-a", 1000, 2, core.FineReasonOverdueReturn, now.Add(-24*time.Hour)),
		core.BuildFinePaid("fine-1", "holder-a", now.Add(-time.Hour)),
	}

	query := outstandingfines.BuildQuery("holder-a")

	// act
	result := outstandingfines.ProjectOutstandingFines(history, query)

	// assert
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, int64(1000), result.TotalCents)
	assert.Equal(t, "fine-2", result.Fines[0].FineID)
}

func Test_Project_IgnoresFinesOfOtherHolders(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildFineAssessed("fine-1", "loan-1", "item-1", "holder-b", 2500, 5, core.FineReasonOverdueReturn, now.Add(-time.Hour)),
	}

	query := outstandingfines.BuildQuery("holder-a")

	// act
	result := outstandingfines.ProjectOutstandingFines(history, query)

	// assert
	assert.Equal(t, 0, result.Count)
	assert.Equal(t, int64(0), result.TotalCents)
}
