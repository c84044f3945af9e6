package queueposition_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/circulation-ledger-go/ledger/core"
	"github.com/openshelf/circulation-ledger-go/ledger/features/query/queueposition"
)

func Test_Project_RanksWaitingReservationsInPlacementOrder(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildReservationPlaced("res-1", "item-1", "holder-a", now.Add(-3*time.Hour)),
		core.BuildReservationPlaced("res-2", "item-1", "holder-b", now.Add(-2*time.Hour)),
		core.BuildReservationPlaced("res-3", "item-1", "holder-c", now.Add(-time.Hour)),
	}

	query := queueposition.BuildQuery("res-2", "item-1")

	// act
	result := queueposition.ProjectQueuePosition(history, query)

	// assert
	assert.True(t, result.Found)
	assert.Equal(t, core.ReservationStatusWaiting, result.Status)
	assert.Equal(t, 2, result.Position)
	assert.Equal(t, 3, result.QueueLength)
}

func Test_Project_RankMovesUpWhenHeadLeavesTheQueue(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildReservationPlaced("res-1", "item-1", "holder-a", now.Add(-3*time.Hour)),
		core.BuildReservationPlaced("res-2", "item-1", "holder-b", now.Add(-2*time.Hour)),
		core.BuildReservationPromoted("res-1", "item-1", "holder-a", now.Add(-time.Hour)),
	}

	query := queueposition.BuildQuery("res-2", "item-1")

	// act
	result := queueposition.ProjectQueuePosition(history, query)

	// assert
	assert.Equal(t, 1, result.Position)
	assert.Equal(t, 1, result.QueueLength)
}

func Test_Project_PromotedReservationHasNoRank(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildReservationPlaced("res-1", "item-1", "holder-a", now.Add(-2*time.Hour)),
		core.BuildReservationPromoted("res-1", "item-1", "holder-a", now.Add(-time.Hour)),
	}

	query := queueposition.BuildQuery("res-1", "item-1")

	// act
	result := queueposition.ProjectQueuePosition(history, query)

	// assert
	assert.True(t, result.Found)
	assert.Equal(t, core.ReservationStatusPromoted, result.Status)
	assert.Equal(t, 0, result.Position)
}

func Test_Project_FulfilledWhenPromotionWasClaimed(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildReservationPlaced("res-1", "item-1", "holder-a", now.Add(-3*time.Hour)),
		core.BuildReservationPromoted("res-1", "item-1", "holder-a", now.Add(-2*time.Hour)),
		core.BuildLoanIssued("loan-1", "item-1", "holder-a", "res-1", now.Add(14*24*time.Hour), now.Add(-time.Hour)),
	}

	query := queueposition.BuildQuery("res-1", "item-1")

	// act
	result := queueposition.ProjectQueuePosition(history, query)

	// assert
	assert.Equal(t, core.ReservationStatusFulfilled, result.Status)
	assert.Equal(t, 0, result.Position)
}

func Test_Project_CanceledReservation(t *testing.T) {
	// arrange
	now := time.Now()

	history := core.DomainEvents{
		core.BuildReservationPlaced("res-1", "item-1", "holder-a", now.Add(-2*time.Hour)),
		core.BuildReservationCanceled("res-1", "item-1", "holder-a", false, now.Add(-time.Hour)),
	}

	query := queueposition.BuildQuery("res-1", "item-1")

	// act
	result := queueposition.ProjectQueuePosition(history, query)

	// assert
	assert.True(t, result.Found)
	assert.Equal(t, core.ReservationStatusCanceled, result.Status)
	assert.Equal(t, 0, result.Position)
	assert.Equal(t, 0, result.QueueLength)
}

func Test_Project_UnknownReservation(t *testing.T) {
	// arrange
	query := queueposition.BuildQuery("res-1", "item-1")

	// act
	result := queueposition.ProjectQueuePosition(core.DomainEvents{}, query)

	// assert
	assert.False(t, result.Found)
	assert.Equal(t, 0, result.Position)
}
