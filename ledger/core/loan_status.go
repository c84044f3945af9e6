package core

import (
	"time"
)

// LoanStatus is the state of a loan. Overdue is derived at read time from the
// due date versus an as-of time, never stored or fired by a timer.
type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "Active"
	LoanStatusOverdue  LoanStatus = "Overdue"
	LoanStatusReturned LoanStatus = "Returned"
)

// DeriveLoanStatus computes the status of a loan. A returned loan stays
// Returned forever; an unreturned loan is Overdue once its due date has
// passed as of the given time.
func DeriveLoanStatus(dueAt time.Time, returned bool, asOf time.Time) LoanStatus {
	if returned {
		return LoanStatusReturned
	}

	if dueAt.Before(asOf) {
		return LoanStatusOverdue
	}

	return LoanStatusActive
}

// FineStatus is the settlement state of a fine.
type FineStatus string

const (
	FineStatusPending FineStatus = "Pending"
	FineStatusPaid    FineStatus = "Paid"
)

// ReservationStatus is the state of a reservation in an item's queue.
type ReservationStatus string

const (
	ReservationStatusWaiting   ReservationStatus = "Waiting"
	ReservationStatusPromoted  ReservationStatus = "Promoted"
	ReservationStatusFulfilled ReservationStatus = "Fulfilled"
	ReservationStatusCanceled  ReservationStatus = "Cancelled"
)
