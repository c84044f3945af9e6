package core

import (
	"time"
)

// FineReasonOverdueReturn is the reason recorded on fines assessed at return
// time.
const FineReasonOverdueReturn = "overdue return"

// CirculationPolicy holds the configurable circulation rules. All fine
// arithmetic is integer cents and whole UTC days so settlement is
// deterministic.
type CirculationPolicy struct {
	LoanPeriod      time.Duration
	MaxRenewals     int
	FinePerDayCents int64
	MaxFineCents    int64
}

// DefaultCirculationPolicy returns the standard policy: 14-day loans, up to 3
// renewals, 50 cents per overdue day capped at 20 dollars.
func DefaultCirculationPolicy() CirculationPolicy {
	return CirculationPolicy{
		LoanPeriod:      14 * 24 * time.Hour,
		MaxRenewals:     3,
		FinePerDayCents: 50,
		MaxFineCents:    2000,
	}
}

// DueDateFrom derives the due date of a loan issued (or renewed) at the given
// time.
func (p CirculationPolicy) DueDateFrom(from time.Time) time.Time {
	return ToOccurredAt(from.Add(p.LoanPeriod))
}

// OverdueDays computes max(0, asOf - dueAt) in whole days.
func (p CirculationPolicy) OverdueDays(dueAt time.Time, asOf time.Time) int {
	overdue := asOf.UTC().Sub(dueAt.UTC())
	if overdue <= 0 {
		return 0
	}

	return int(overdue / (24 * time.Hour))
}

// FineAmountCents computes min(overdueDays * rate, cap). Monotonic
// non-decreasing in overdueDays.
func (p CirculationPolicy) FineAmountCents(overdueDays int) int64 {
	if overdueDays <= 0 {
		return 0
	}

	amount := int64(overdueDays) * p.FinePerDayCents
	if amount > p.MaxFineCents {
		return p.MaxFineCents
	}

	return amount
}

// Settle is the pure fine settlement function: given a loan's due date and the
// return time, it derives the overdue days and the fine amount. A zero amount
// means no fine is to be created.
func (p CirculationPolicy) Settle(dueAt time.Time, asOf time.Time) (overdueDays int, amountCents int64) {
	overdueDays = p.OverdueDays(dueAt, asOf)

	return overdueDays, p.FineAmountCents(overdueDays)
}
