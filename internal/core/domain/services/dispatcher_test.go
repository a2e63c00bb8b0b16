package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/shop"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	order  *order.Order
	driver *driver.Driver
	shop   *shop.Shop
}

func newFixture(t *testing.T, withUser bool) fixture {
	t.Helper()

	line, err := order.NewLineItem(kernel.NewUUID(), 20)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "House 7, Uttara", kernel.UnknownGeoPoint(), []order.LineItem{line})
	require.NoError(t, err)

	var userID *kernel.UUID
	if withUser {
		id := kernel.NewUUID()
		userID = &id
	}
	d, err := driver.NewDriver(kernel.NewUUID(), "Rahim", driver.Motorbike, nil, userID)
	require.NoError(t, err)

	loc, err := kernel.NewGeoPoint(23.75, 90.39)
	require.NoError(t, err)
	s, err := shop.NewShop(kernel.NewUUID(), "Dhanmondi Outlet", "Road 27", loc)
	require.NoError(t, err)

	return fixture{order: o, driver: d, shop: s}
}

func (f fixture) request(active int) services.DispatchRequest {
	return services.DispatchRequest{
		Order:             f.order,
		Driver:            f.driver,
		Shop:              f.shop,
		ActiveAssignments: active,
		MaxActiveOrders:   services.MaxActiveOrders(f.driver.VehicleType(), nil),
		TrackingNumber:    "TRK-1001",
		Details:           dispatch.Details{Notes: "call on arrival"},
		RequestedBy:       "admin",
		At:                time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestDispatcher_Dispatch(t *testing.T) {
	t.Run("should dispatch an order to an idle driver", func(t *testing.T) {
		f := newFixture(t, true)

		result, err := services.NewDispatcher().Dispatch(f.request(0))

		require.NoError(t, err)
		assert.Equal(t, order.InTransit, f.order.Status())
		assert.True(t, f.shop.ID().IsEqual(*f.order.ShopID()))
		assert.Equal(t, "TRK-1001", f.order.TrackingNumber())
		assert.True(t, f.driver.IsBusy())

		require.NotNil(t, result.Assignment)
		assert.Equal(t, assignment.Assigned, result.Assignment.Status())
		assert.True(t, result.Assignment.Pickup().IsEqual(f.shop.Location()))
		assert.False(t, result.Assignment.Delivery().IsKnown())
		assert.True(t, f.driver.ID().IsEqual(result.Assignment.DriverID()))

		require.NotNil(t, result.Record)
		assert.Equal(t, dispatch.Assigned, result.Record.Status())
		assert.Equal(t, "call on arrival", result.Record.Notes())
		assert.True(t, f.order.ID().IsEqual(result.Record.OrderID()))

		require.NotNil(t, result.Notification)
		assert.True(t, f.driver.UserID().IsEqual(result.Notification.UserID()))
		assert.Contains(t, result.Notification.Content().Description, "TRK-1001")
		assert.Contains(t, result.Notification.Content().Href, result.Assignment.ID().String())
	})

	t.Run("should skip the notification when the driver has no user account", func(t *testing.T) {
		f := newFixture(t, false)

		result, err := services.NewDispatcher().Dispatch(f.request(2))

		require.NoError(t, err)
		assert.Nil(t, result.Notification)
	})

	t.Run("should reject a driver at capacity without mutating anything", func(t *testing.T) {
		f := newFixture(t, true)

		_, err := services.NewDispatcher().Dispatch(f.request(3))

		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
		assert.Equal(t, order.Pending, f.order.Status())
		assert.False(t, f.driver.IsBusy())
	})

	t.Run("should reject an order that cannot be dispatched", func(t *testing.T) {
		f := newFixture(t, true)
		require.NoError(t, f.order.ChangeStatus(order.Cancelled))

		_, err := services.NewDispatcher().Dispatch(f.request(0))

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.False(t, f.driver.IsBusy())
	})

	t.Run("should reject an empty tracking number", func(t *testing.T) {
		f := newFixture(t, true)
		req := f.request(0)
		req.TrackingNumber = "   "

		_, err := services.NewDispatcher().Dispatch(req)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Pending, f.order.Status())
	})

	t.Run("should reject a negative transport cost", func(t *testing.T) {
		f := newFixture(t, false)
		cost := -10.0
		req := f.request(0)
		req.Details.TransportCost = &cost

		_, err := services.NewDispatcher().Dispatch(req)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject aggregates not built by their constructors", func(t *testing.T) {
		_, err := services.NewDispatcher().Dispatch(services.DispatchRequest{})

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
		require.ErrorIs(t, err, driver.ErrDriverIsNotConstructed)
		require.ErrorIs(t, err, shop.ErrShopIsNotConstructed)
	})
}

func TestCheckCapacity(t *testing.T) {
	d, err := driver.NewDriver(kernel.NewUUID(), "Rahim", driver.Van, nil, nil)
	require.NoError(t, err)

	require.NoError(t, services.CheckCapacity(d, 9, 10))

	err = services.CheckCapacity(d, 10, 10)
	require.ErrorIs(t, err, errs.ErrCapacityExceeded)

	var capErr *errs.CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 10, capErr.Active)
	assert.Equal(t, 10, capErr.Limit)
}
