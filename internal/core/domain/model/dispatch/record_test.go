package dispatch_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	eta := time.Date(2024, 5, 2, 18, 0, 0, 0, time.UTC)
	cost := 120.5
	createdAt := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	r, err := dispatch.NewRecord(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		" TRK-1001 ",
		dispatch.Details{EstimatedDeliveryTime: &eta, TransportCost: &cost, Notes: "fragile "},
		"admin", createdAt,
	)

	require.NoError(t, err)
	require.NoError(t, r.Validate())
	assert.Equal(t, "TRK-1001", r.TrackingNumber())
	assert.Equal(t, dispatch.Assigned, r.Status())
	assert.Equal(t, "fragile", r.Notes())
	assert.Equal(t, eta, *r.EstimatedDeliveryTime())
	assert.InDelta(t, 120.5, *r.TransportCost(), 0.0001)
	assert.Equal(t, createdAt, r.CreatedAt())
}

func TestNewRecord_OptionalDetails(t *testing.T) {
	r, err := dispatch.NewRecord(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"TRK-1", dispatch.Details{}, "admin", time.Now(),
	)

	require.NoError(t, err)
	assert.Nil(t, r.EstimatedDeliveryTime())
	assert.Nil(t, r.TransportCost())
	assert.Empty(t, r.Notes())
}

func TestNewRecord_Invalid(t *testing.T) {
	negative := -1.0

	_, err := dispatch.NewRecord(
		kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(),
		"", dispatch.Details{TransportCost: &negative}, "", time.Now(),
	)

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "trackingNumber")
	assert.Contains(t, err.Error(), "transportCost")
}

func TestRestoreRecord_UnknownStatus(t *testing.T) {
	_, err := dispatch.RestoreRecord(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"TRK-1", dispatch.Details{}, dispatch.Status("delivered"), "admin", time.Now(),
	)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	var zero dispatch.Record
	require.ErrorIs(t, zero.Validate(), dispatch.ErrRecordIsNotConstructed)
}
