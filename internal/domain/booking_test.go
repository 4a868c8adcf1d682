package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	t.Run("forward lifecycle", func(t *testing.T) {
		assert.True(t, StatusNewEnquiry.CanTransitionTo(StatusQuoteSent))
		assert.True(t, StatusQuoteSent.CanTransitionTo(StatusBookingConfirmed))
		assert.True(t, StatusBookingConfirmed.CanTransitionTo(StatusCheckedIn))
		assert.True(t, StatusCheckedIn.CanTransitionTo(StatusCheckedOut))
	})

	t.Run("no going backwards", func(t *testing.T) {
		assert.False(t, StatusBookingConfirmed.CanTransitionTo(StatusQuoteSent))
		assert.False(t, StatusCheckedOut.CanTransitionTo(StatusCheckedIn))
	})

	t.Run("cancel reachable until checkout", func(t *testing.T) {
		assert.True(t, StatusNewEnquiry.CanTransitionTo(StatusCancelled))
		assert.True(t, StatusQuoteSent.CanTransitionTo(StatusCancelled))
		assert.True(t, StatusCheckedIn.CanTransitionTo(StatusNoShow))
		assert.False(t, StatusCheckedOut.CanTransitionTo(StatusCancelled))
		assert.False(t, StatusCancelled.CanTransitionTo(StatusNoShow))
	})

	t.Run("holds inventory", func(t *testing.T) {
		assert.True(t, StatusBookingConfirmed.HoldsInventory())
		assert.True(t, StatusCheckedIn.HoldsInventory())
		assert.False(t, StatusQuoteSent.HoldsInventory())
		assert.False(t, StatusCancelled.HoldsInventory())
	})

	t.Run("unknown status", func(t *testing.T) {
		assert.False(t, BookingStatus("bogus").Valid())
		assert.False(t, StatusQuoteSent.CanTransitionTo(BookingStatus("bogus")))
	})
}
