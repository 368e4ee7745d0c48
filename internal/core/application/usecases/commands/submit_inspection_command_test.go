package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inspection"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmitInspectionCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	inspectorID := kernel.NewUUID()
	report := inspection.Report{
		Notes:     "Part matches the listing",
		PartGrade: inspection.GradeA,
	}

	cmd, err := commands.NewSubmitInspectionCommand(orderID, inspectorID, true, report)

	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, inspectorID, cmd.InspectorID())
	assert.True(t, cmd.Passed())
	assert.Equal(t, report, cmd.Report())
	assert.NoError(t, cmd.Validate())
}

func TestNewSubmitInspectionCommand_FailedVerdict(t *testing.T) {
	// Verdict content is validated by the inspection aggregate, not here:
	// the command only needs valid identifiers.
	cmd, err := commands.NewSubmitInspectionCommand(kernel.NewUUID(), kernel.NewUUID(), false,
		inspection.Report{FailureReason: "bad", FailureCategory: ""})

	require.NoError(t, err)
	assert.False(t, cmd.Passed())
}

func TestNewSubmitInspectionCommand_InvalidInput(t *testing.T) {
	t.Run("empty order id", func(t *testing.T) {
		_, err := commands.NewSubmitInspectionCommand(kernel.UUID{}, kernel.NewUUID(), true,
			inspection.Report{})
		require.Error(t, err)
	})

	t.Run("empty inspector id", func(t *testing.T) {
		_, err := commands.NewSubmitInspectionCommand(kernel.NewUUID(), kernel.UUID{}, true,
			inspection.Report{})
		require.Error(t, err)
	})
}

func TestSubmitInspectionCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.SubmitInspectionCommand

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrSubmitInspectionCommandIsNotConstructed)
}
