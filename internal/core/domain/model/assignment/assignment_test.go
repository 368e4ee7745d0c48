package assignment_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAddress(t *testing.T, line string) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress(line)
	require.NoError(t, err)
	return addr
}

func buildStandardAssignment(t *testing.T) *assignment.DeliveryAssignment {
	t.Helper()
	driverID := kernel.NewUUID()
	a, err := assignment.NewAssignment(
		kernel.NewUUID(), kernel.NewUUID(), &driverID,
		assignment.TypeStandard,
		mustAddress(t, "QScrap Inspection Center"),
		mustAddress(t, "7 Deansgate, Manchester"),
		nil, nil, "",
	)
	require.NoError(t, err)
	return a
}

func TestNewAssignment(t *testing.T) {
	t.Run("creates assigned standard leg", func(t *testing.T) {
		a := buildStandardAssignment(t)

		require.NoError(t, a.Validate())
		assert.Equal(t, assignment.Assigned, a.Status())
		assert.Equal(t, assignment.TypeStandard, a.Type())
		assert.NotNil(t, a.Driver())
		assert.Nil(t, a.PickedUpAt())
		assert.Nil(t, a.DeliveredAt())
	})

	t.Run("creates driverless return leg with reason", func(t *testing.T) {
		a, err := assignment.NewAssignment(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			assignment.TypeReturnToGarage,
			mustAddress(t, "QScrap Inspection Center"),
			mustAddress(t, "12 Industrial Estate, Manchester"),
			nil, nil,
			"QC Failed: physical_damage - casing cracked along the mount",
		)

		require.NoError(t, err)
		assert.Nil(t, a.Driver())
		assert.Equal(t, assignment.TypeReturnToGarage, a.Type())
		assert.Contains(t, a.ReturnReason(), "physical_damage")
	})

	t.Run("return leg requires a reason", func(t *testing.T) {
		_, err := assignment.NewAssignment(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			assignment.TypeReturnToGarage,
			mustAddress(t, "QScrap Inspection Center"),
			mustAddress(t, "12 Industrial Estate"),
			nil, nil, "",
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("standard leg refuses a return reason", func(t *testing.T) {
		_, err := assignment.NewAssignment(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			assignment.TypeStandard,
			mustAddress(t, "QScrap Inspection Center"),
			mustAddress(t, "7 Deansgate"),
			nil, nil, "should not be here",
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := assignment.NewAssignment(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			assignment.Type("express"),
			mustAddress(t, "QScrap Inspection Center"),
			mustAddress(t, "7 Deansgate"),
			nil, nil, "",
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value assignment fails validation", func(t *testing.T) {
		var a assignment.DeliveryAssignment

		require.ErrorIs(t, a.Validate(), assignment.ErrAssignmentIsNotConstructed)
	})
}

func TestAssignmentStatus_Transitions(t *testing.T) {
	testCases := []struct {
		name    string
		from    assignment.Status
		to      assignment.Status
		allowed bool
	}{
		{"assigned to picked_up", assignment.Assigned, assignment.PickedUp, true},
		{"assigned to failed", assignment.Assigned, assignment.Failed, true},
		{"picked_up to in_transit", assignment.PickedUp, assignment.InTransit, true},
		{"picked_up to failed", assignment.PickedUp, assignment.Failed, true},
		{"in_transit to delivered", assignment.InTransit, assignment.Delivered, true},
		{"in_transit to failed", assignment.InTransit, assignment.Failed, true},
		{"failed to assigned", assignment.Failed, assignment.Assigned, true},

		{"assigned cannot skip to in_transit", assignment.Assigned, assignment.InTransit, false},
		{"assigned cannot skip to delivered", assignment.Assigned, assignment.Delivered, false},
		{"picked_up cannot skip to delivered", assignment.PickedUp, assignment.Delivered, false},
		{"delivered is final", assignment.Delivered, assignment.Failed, false},
		{"delivered cannot restart", assignment.Delivered, assignment.Assigned, false},
		{"failed cannot jump to delivered", assignment.Failed, assignment.Delivered, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestAssignmentStatus_Classification(t *testing.T) {
	assert.True(t, assignment.Assigned.IsActive())
	assert.True(t, assignment.PickedUp.IsActive())
	assert.True(t, assignment.InTransit.IsActive())
	assert.False(t, assignment.Delivered.IsActive())
	assert.False(t, assignment.Failed.IsActive())

	assert.True(t, assignment.Delivered.IsTerminalOutcome())
	assert.True(t, assignment.Failed.IsTerminalOutcome())
	assert.False(t, assignment.InTransit.IsTerminalOutcome())
}

func TestDeliveryAssignment_Progress(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	t.Run("pickup stamps pickup time", func(t *testing.T) {
		a := buildStandardAssignment(t)

		err := a.Progress(assignment.PickedUp, assignment.ProgressUpdate{DriverNotes: "part strapped in"}, now)

		require.NoError(t, err)
		assert.Equal(t, assignment.PickedUp, a.Status())
		require.NotNil(t, a.PickedUpAt())
		assert.Equal(t, now, *a.PickedUpAt())
		assert.Equal(t, "part strapped in", a.DriverNotes())
	})

	t.Run("delivery stamps delivery time and keeps earlier fields", func(t *testing.T) {
		a := buildStandardAssignment(t)
		require.NoError(t, a.Progress(assignment.PickedUp,
			assignment.ProgressUpdate{DriverNotes: "part strapped in"}, now))
		require.NoError(t, a.Progress(assignment.InTransit, assignment.ProgressUpdate{}, now))

		err := a.Progress(assignment.Delivered, assignment.ProgressUpdate{
			RecipientName:    "J. Smith",
			SignatureURL:     "https://cdn.example.com/sig/1.png",
			DeliveryPhotoURL: "https://cdn.example.com/pod/1.jpg",
		}, now.Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, assignment.Delivered, a.Status())
		require.NotNil(t, a.DeliveredAt())
		assert.Equal(t, now.Add(time.Hour), *a.DeliveredAt())
		assert.Equal(t, "part strapped in", a.DriverNotes(), "earlier notes survive later updates")
		assert.Equal(t, "J. Smith", a.RecipientName())
	})

	t.Run("empty fields keep stored values", func(t *testing.T) {
		a := buildStandardAssignment(t)
		require.NoError(t, a.Progress(assignment.PickedUp,
			assignment.ProgressUpdate{DriverNotes: "original note"}, now))

		require.NoError(t, a.Progress(assignment.InTransit, assignment.ProgressUpdate{}, now))

		assert.Equal(t, "original note", a.DriverNotes())
	})

	t.Run("illegal transition is refused with sources", func(t *testing.T) {
		a := buildStandardAssignment(t)

		err := a.Progress(assignment.Delivered, assignment.ProgressUpdate{}, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)

		var precondition *errs.PreconditionFailedError
		require.ErrorAs(t, err, &precondition)
		assert.Equal(t, "assigned", precondition.Current)
		assert.Equal(t, "in_transit", precondition.Required)
	})

	t.Run("failure records reason", func(t *testing.T) {
		a := buildStandardAssignment(t)
		require.NoError(t, a.Progress(assignment.PickedUp, assignment.ProgressUpdate{}, now))

		err := a.Progress(assignment.Failed,
			assignment.ProgressUpdate{FailureReason: "customer not home"}, now)

		require.NoError(t, err)
		assert.Equal(t, assignment.Failed, a.Status())
		assert.Equal(t, "customer not home", a.FailureReason())
	})
}

func TestDeliveryAssignment_Reassign(t *testing.T) {
	now := time.Now()

	t.Run("failed leg restarts with new driver", func(t *testing.T) {
		a := buildStandardAssignment(t)
		require.NoError(t, a.Progress(assignment.Failed,
			assignment.ProgressUpdate{FailureReason: "vehicle breakdown"}, now))
		newDriver := kernel.NewUUID()

		err := a.Reassign(newDriver)

		require.NoError(t, err)
		assert.Equal(t, assignment.Assigned, a.Status())
		require.NotNil(t, a.Driver())
		assert.True(t, a.Driver().IsEqual(newDriver))
		assert.Empty(t, a.FailureReason())
	})

	t.Run("active leg cannot be reassigned", func(t *testing.T) {
		a := buildStandardAssignment(t)

		err := a.Reassign(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})
}

func TestDeliveryAssignment_AssignDriver(t *testing.T) {
	t.Run("binds driver to driverless return", func(t *testing.T) {
		a, err := assignment.NewAssignment(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			assignment.TypeReturnToGarage,
			mustAddress(t, "QScrap Inspection Center"),
			mustAddress(t, "12 Industrial Estate"),
			nil, nil, "QC Failed: wrong_part - part does not match listing",
		)
		require.NoError(t, err)
		driverID := kernel.NewUUID()

		require.NoError(t, a.AssignDriver(driverID))
		require.NotNil(t, a.Driver())
		assert.True(t, a.Driver().IsEqual(driverID))
	})

	t.Run("cannot bind driver to a leg already underway", func(t *testing.T) {
		a := buildStandardAssignment(t)
		require.NoError(t, a.Progress(assignment.PickedUp, assignment.ProgressUpdate{}, time.Now()))

		err := a.AssignDriver(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})
}

func TestDeliveryAssignment_UpdateLocation(t *testing.T) {
	t.Run("records position and timestamp", func(t *testing.T) {
		a := buildStandardAssignment(t)
		point, err := kernel.NewGeoPoint(53.4808, -2.2426)
		require.NoError(t, err)
		now := time.Now()

		require.NoError(t, a.UpdateLocation(point, now))

		require.NotNil(t, a.CurrentLocation())
		assert.InDelta(t, 53.4808, a.CurrentLocation().Latitude(), 0.0001)
		require.NotNil(t, a.LocatedAt())
		assert.Equal(t, now, *a.LocatedAt())
	})

	t.Run("works in any status", func(t *testing.T) {
		a := buildStandardAssignment(t)
		now := time.Now()
		require.NoError(t, a.Progress(assignment.PickedUp, assignment.ProgressUpdate{}, now))
		require.NoError(t, a.Progress(assignment.InTransit, assignment.ProgressUpdate{}, now))
		point, err := kernel.NewGeoPoint(53.5, -2.3)
		require.NoError(t, err)

		require.NoError(t, a.UpdateLocation(point, now))
	})

	t.Run("rejects unconstructed point", func(t *testing.T) {
		a := buildStandardAssignment(t)

		require.Error(t, a.UpdateLocation(kernel.GeoPoint{}, time.Now()))
	})
}

func TestRestoreAssignment(t *testing.T) {
	t.Run("restores full state", func(t *testing.T) {
		driverID := kernel.NewUUID()
		pickedUp := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
		point, err := kernel.NewGeoPoint(53.4808, -2.2426)
		require.NoError(t, err)

		a, restoreErr := assignment.RestoreAssignment(
			kernel.NewUUID(), kernel.NewUUID(), &driverID,
			assignment.TypeStandard, assignment.InTransit,
			mustAddress(t, "QScrap Inspection Center"),
			mustAddress(t, "7 Deansgate"),
			nil, nil, &pickedUp, nil,
			&point, &pickedUp,
			"notes", "", "", "", "", "",
		)

		require.NoError(t, restoreErr)
		assert.Equal(t, assignment.InTransit, a.Status())
		require.NotNil(t, a.PickedUpAt())
		assert.Equal(t, pickedUp, *a.PickedUpAt())
		assert.Equal(t, "notes", a.DriverNotes())
		require.NotNil(t, a.CurrentLocation())
	})

	t.Run("rejects invalid stored status", func(t *testing.T) {
		_, err := assignment.RestoreAssignment(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			assignment.TypeStandard, assignment.Status("lost"),
			mustAddress(t, "QScrap Inspection Center"),
			mustAddress(t, "7 Deansgate"),
			nil, nil, nil, nil, nil, nil,
			"", "", "", "", "", "",
		)

		require.Error(t, err)
	})
}
