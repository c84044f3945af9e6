package returnitem_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
	"github.com/openshelf/circulation-ledger-go/ledger/features/command/returnitem"
)

func testPolicy() core.CirculationPolicy {
	return core.CirculationPolicy{
		LoanPeriod:      14 * 24 * time.Hour,
		MaxRenewals:     3,
		FinePerDayCents: 500,
		MaxFineCents:    10000,
	}
}

func Test_Decide_Success_OnTimeReturn_EmitsOnlyLoanReturned(t *testing.T) {
	// arrange
	now := time.Now()
	dueAt := now.Add(24 * time.Hour)

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", dueAt, now.Add(-24*time.Hour)),
	}

	command := returnitem.BuildCommand("loan-1", "item-1", "holder-a", "fine-1", now)

	// act
	result := returnitem.Decide(history, command, testPolicy())

	// assert
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)

	event, ok := result.Events[0].(core.LoanReturned)
	assert.True(t, ok)
	assert.Equal(t, "loan-1", event.LoanID)
}

func Test_Decide_Success_OverdueReturn_AssessesFine(t *testing.T) {
	// arrange: due 2024-01-10, returned 2024-01-15, 5.00/day capped at 100.00
	issuedAt := time.Date(2023, 12, 27, 0, 0, 0, 0, time.UTC)
	dueAt := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	returnedAt := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", dueAt, issuedAt),
	}

	command := returnitem.BuildCommand("loan-1", "item-1", "holder-a", "fine-1", returnedAt)

	// act
	result := returnitem.Decide(history, command, testPolicy())

	// assert
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 2)

	fine, ok := result.Events[1].(core.FineAssessed)
	assert.True(t, ok)
	assert.Equal(t, "fine-1", fine.FineID)
	assert.Equal(t, "loan-1", fine.LoanID)
	assert.Equal(t, int64(2500), fine.AmountCents)
	assert.Equal(t, 5, fine.OverdueDays)
	assert.Equal(t, core.FineReasonOverdueReturn, fine.Reason)
}

func Test_Decide_Success_RenewedDueDateGovernsSettlement(t *testing.T) {
	// arrange: renewal moved the due date past the return time, so no fine
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(-48*time.Hour), now.Add(-21*24*time.Hour)),
		core.BuildLoanRenewed("loan-1", "item-1", "holder-a", now.Add(7*24*time.Hour), 1, now.Add(-72*time.Hour)),
	}

	command := returnitem.BuildCommand("loan-1", "item-1", "holder-a", "fine-1", now)

	// act
	result := returnitem.Decide(history, command, testPolicy())

	// assert
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)
}

func Test_Decide_Success_WithWaitingReservation_PromotesHead(t *testing.T) {
	// arrange: two holders are waiting, the earlier one must be promoted
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(24*time.Hour), now.Add(-24*time.Hour)),
		core.BuildReservationPlaced("res-1", "item-1", "holder-b", now.Add(-10*time.Hour)),
		core.BuildReservationPlaced("res-2", "item-1", "holder-c", now.Add(-5*time.Hour)),
	}

	command := returnitem.BuildCommand("loan-1", "item-1", "holder-a", "fine-1", now)

	// act
	result := returnitem.Decide(history, command, testPolicy())

	// assert
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 2)

	promotion, ok := result.Events[1].(core.ReservationPromoted)
	assert.True(t, ok)
	assert.Equal(t, "res-1", promotion.ReservationID)
	assert.Equal(t, "holder-b", promotion.HolderID)
}

func Test_Decide_Success_CanceledHeadIsSkippedForPromotion(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(24*time.Hour), now.Add(-24*time.Hour)),
		core.BuildReservationPlaced("res-1", "item-1", "holder-b", now.Add(-10*time.Hour)),
		core.BuildReservationPlaced("res-2", "item-1", "holder-c", now.Add(-5*time.Hour)),
		core.BuildReservationCanceled("res-1", "item-1", "holder-b", false, now.Add(-time.Hour)),
	}

	command := returnitem.BuildCommand("loan-1", "item-1", "holder-a", "fine-1", now)

	// act
	result := returnitem.Decide(history, command, testPolicy())

	// assert
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 2)

	promotion, ok := result.Events[1].(core.ReservationPromoted)
	assert.True(t, ok)
	assert.Equal(t, "res-2", promotion.ReservationID)
}

func Test_Decide_Success_OverdueReturnWithWaitingReservation_EmitsAllThree(t *testing.T) {
	// arrange
	dueAt := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	returnedAt := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", dueAt, dueAt.Add(-14*24*time.Hour)),
		core.BuildReservationPlaced("res-1", "item-1", "holder-b", dueAt),
	}

	command := returnitem.BuildCommand("loan-1", "item-1", "holder-a", "fine-1", returnedAt)

	// act
	result := returnitem.Decide(history, command, testPolicy())

	// assert
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 3)
	assert.IsType(t, core.LoanReturned{}, result.Events[0])
	assert.IsType(t, core.FineAssessed{}, result.Events[1])
	assert.IsType(t, core.ReservationPromoted{}, result.Events[2])
}

func Test_Decide_Error_WhenLoanIsUnknown(t *testing.T) {
	// arrange
	command := returnitem.BuildCommand("loan-1", "item-1", "holder-a", "fine-1", time.Now())

	// act
	result := returnitem.Decide(core.DomainEvents{}, command, testPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrLoanNotFound)
}

func Test_Decide_Error_WhenLoanIsAlreadyReturned(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "", now.Add(24*time.Hour), now.Add(-24*time.Hour)),
		core.BuildLoanReturned("loan-1", "item-1", "holder-a", now.Add(-time.Hour)),
	}

	command := returnitem.BuildCommand("loan-1", "item-1", "holder-a", "fine-1", now)

	// act
	result := returnitem.Decide(history, command, testPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrAlreadyReturned)
	assert.ErrorIs(t, result.HasError(), core.ErrConflict)
}
