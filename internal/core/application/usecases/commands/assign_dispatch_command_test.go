package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignDispatchCommand_ValidInput(t *testing.T) {
	orderID, driverID, shopID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	cost := 150.0

	cmd, err := commands.NewAssignDispatchCommand(
		orderID.String(), driverID.String(), " "+shopID.String()+" ",
		" TRK-1001 ", dispatch.Details{TransportCost: &cost}, "admin",
	)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.True(t, orderID.IsEqual(cmd.OrderID()))
	assert.True(t, driverID.IsEqual(cmd.DriverID()))
	assert.True(t, shopID.IsEqual(cmd.ShopID()))
	assert.Equal(t, "TRK-1001", cmd.TrackingNumber())
	assert.Equal(t, &cost, cmd.Details().TransportCost)
	assert.Equal(t, "admin", cmd.RequestedBy())
}

func TestNewAssignDispatchCommand_MissingFields(t *testing.T) {
	valid := kernel.NewUUID().String()

	tests := []struct {
		name      string
		orderID   string
		driverID  string
		shopID    string
		tracking  string
		paramName string
	}{
		{"missing order", "", valid, valid, "TRK-1", "orderId"},
		{"missing driver", valid, " ", valid, "TRK-1", "driverId"},
		{"missing shop", valid, valid, "", "TRK-1", "shopId"},
		{"missing tracking number", valid, valid, valid, "", "trackingNumber"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewAssignDispatchCommand(tt.orderID, tt.driverID, tt.shopID, tt.tracking, dispatch.Details{}, "admin")

			require.ErrorIs(t, err, errs.ErrValueIsRequired)
			assert.Contains(t, err.Error(), tt.paramName)
		})
	}
}

func TestNewAssignDispatchCommand_MalformedInput(t *testing.T) {
	valid := kernel.NewUUID().String()
	negative := -5.0

	_, err := commands.NewAssignDispatchCommand("order-42", valid, valid, "TRK-1", dispatch.Details{}, "admin")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewAssignDispatchCommand(valid, "00000000-0000-0000-0000-000000000000", valid, "TRK-1", dispatch.Details{}, "admin")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewAssignDispatchCommand(valid, valid, valid, "TRK-1", dispatch.Details{TransportCost: &negative}, "admin")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewAssignDispatchCommand(valid, valid, valid, "TRK-1", dispatch.Details{}, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestAssignDispatchCommand_ZeroValue(t *testing.T) {
	var cmd commands.AssignDispatchCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrAssignDispatchCommandIsNotConstructed)
}

func TestParseInventoryPolicy(t *testing.T) {
	p, err := commands.ParseInventoryPolicy("")
	require.NoError(t, err)
	assert.Equal(t, commands.InventoryStrict, p)

	p, err = commands.ParseInventoryPolicy(" Best_Effort ")
	require.NoError(t, err)
	assert.Equal(t, commands.InventoryBestEffort, p)

	_, err = commands.ParseInventoryPolicy("lenient")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
