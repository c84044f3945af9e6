package circulationreport

import (
	"time"
)

// CirculationReport represents the aggregated circulation activity within the
// reporting window.
type CirculationReport struct {
	From                 time.Time
	Until                time.Time
	ItemsRegistered      int
	LoansIssued          int
	LoansReturned        int
	LoansRenewed         int
	ReservationsPlaced   int
	ReservationsPromoted int
	ReservationsCanceled int
	FinesAssessed        int
	FinesPaid            int
	FineCentsAssessed    int64
}
