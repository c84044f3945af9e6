package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

func Test_CirculationPolicy_Settle_OverdueReturn(t *testing.T) {
	// given a loan due 2024-01-10 with a 5.00/day rate capped at 100.00
	policy := core.CirculationPolicy{
		LoanPeriod:      14 * 24 * time.Hour,
		MaxRenewals:     3,
		FinePerDayCents: 500,
		MaxFineCents:    10000,
	}
	dueAt := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	returnedAt := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	// when it is returned on 2024-01-15
	overdueDays, amountCents := policy.Settle(dueAt, returnedAt)

	// then the fine is 5 days at 5.00 = 25.00
	assert.Equal(t, 5, overdueDays)
	assert.Equal(t, int64(2500), amountCents)
}

func Test_CirculationPolicy_Settle_OnTimeReturn(t *testing.T) {
	policy := core.DefaultCirculationPolicy()
	dueAt := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	overdueDays, amountCents := policy.Settle(dueAt, dueAt.Add(-time.Hour))

	assert.Zero(t, overdueDays)
	assert.Zero(t, amountCents)
}

func Test_CirculationPolicy_Settle_PartialDayIsNotOverdue(t *testing.T) {
	policy := core.DefaultCirculationPolicy()
	dueAt := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	// 23 hours late is less than one whole day
	overdueDays, amountCents := policy.Settle(dueAt, dueAt.Add(23*time.Hour))

	assert.Zero(t, overdueDays)
	assert.Zero(t, amountCents)
}

func Test_CirculationPolicy_FineAmountCents_IsCapped(t *testing.T) {
	policy := core.CirculationPolicy{FinePerDayCents: 500, MaxFineCents: 10000}

	assert.Equal(t, int64(10000), policy.FineAmountCents(365))
}

func Test_CirculationPolicy_FineAmountCents_MonotonicUpToCap(t *testing.T) {
	policy := core.CirculationPolicy{FinePerDayCents: 500, MaxFineCents: 10000}

	previous := int64(0)
	for days := 0; days <= 30; days++ {
		amount := policy.FineAmountCents(days)
		assert.GreaterOrEqual(t, amount, previous)
		previous = amount
	}
}

func Test_CirculationPolicy_DueDateFrom(t *testing.T) {
	policy := core.DefaultCirculationPolicy()
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), policy.DueDateFrom(issuedAt))
}

func Test_DeriveLoanStatus(t *testing.T) {
	dueAt := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, core.LoanStatusActive, core.DeriveLoanStatus(dueAt, false, dueAt.Add(-time.Hour)))
	assert.Equal(t, core.LoanStatusOverdue, core.DeriveLoanStatus(dueAt, false, dueAt.Add(time.Hour)))
	assert.Equal(t, core.LoanStatusReturned, core.DeriveLoanStatus(dueAt, true, dueAt.Add(time.Hour)))
}
