package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses pass validation", func(t *testing.T) {
		statuses := []order.Status{
			order.ReadyForPickup,
			order.Collected,
			order.QCPassed,
			order.QCFailed,
			order.InTransit,
			order.Delivered,
			order.Completed,
			order.ReturningToGarage,
		}

		for _, status := range statuses {
			assert.NoError(t, status.Validate(), "status %s should be valid", status)
		}
	})

	t.Run("invalid statuses fail validation", func(t *testing.T) {
		invalid := []order.Status{"", "unknown", "READY_FOR_PICKUP", "shipped"}

		for _, status := range invalid {
			err := status.Validate()
			require.Error(t, err, "status %q should be invalid", status)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "ready_for_pickup", order.ReadyForPickup.String())
	assert.Equal(t, "qc_passed", order.QCPassed.String())
	assert.Equal(t, "returning_to_garage", order.ReturningToGarage.String())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		name    string
		from    order.Status
		to      order.Status
		allowed bool
	}{
		{"ready_for_pickup to collected", order.ReadyForPickup, order.Collected, true},
		{"collected to qc_passed", order.Collected, order.QCPassed, true},
		{"collected to qc_failed", order.Collected, order.QCFailed, true},
		{"qc_passed to in_transit", order.QCPassed, order.InTransit, true},
		{"qc_failed to returning_to_garage", order.QCFailed, order.ReturningToGarage, true},
		{"in_transit to delivered", order.InTransit, order.Delivered, true},
		{"delivered to completed", order.Delivered, order.Completed, true},

		{"ready_for_pickup cannot skip to qc_passed", order.ReadyForPickup, order.QCPassed, false},
		{"ready_for_pickup cannot skip to in_transit", order.ReadyForPickup, order.InTransit, false},
		{"collected cannot skip to in_transit", order.Collected, order.InTransit, false},
		{"collected cannot skip to delivered", order.Collected, order.Delivered, false},
		{"qc_failed cannot be dispatched", order.QCFailed, order.InTransit, false},
		{"qc_passed cannot be returned", order.QCPassed, order.ReturningToGarage, false},
		{"in_transit cannot go back to collected", order.InTransit, order.Collected, false},
		{"delivered cannot go back in transit", order.Delivered, order.InTransit, false},
		{"completed is terminal", order.Completed, order.ReadyForPickup, false},
		{"returning_to_garage is terminal", order.ReturningToGarage, order.Collected, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.ReturningToGarage.IsTerminal())

	assert.False(t, order.ReadyForPickup.IsTerminal())
	assert.False(t, order.Collected.IsTerminal())
	assert.False(t, order.QCPassed.IsTerminal())
	assert.False(t, order.QCFailed.IsTerminal())
	assert.False(t, order.InTransit.IsTerminal())
	assert.False(t, order.Delivered.IsTerminal())
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("allowed transition returns target", func(t *testing.T) {
		next, err := order.ReadyForPickup.TransitionTo(order.Collected)

		require.NoError(t, err)
		assert.Equal(t, order.Collected, next)
	})

	t.Run("disallowed transition returns error", func(t *testing.T) {
		_, err := order.Collected.TransitionTo(order.Delivered)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "cannot transition from collected to delivered")
	})

	t.Run("transition to invalid status returns error", func(t *testing.T) {
		_, err := order.Collected.TransitionTo(order.Status("shipped"))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
