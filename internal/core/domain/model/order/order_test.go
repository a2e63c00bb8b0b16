package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLine(t *testing.T, qty int) order.LineItem {
	t.Helper()
	line, err := order.NewLineItem(kernel.NewUUID(), qty)
	require.NoError(t, err)
	return line
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "Road 3, Uttara", kernel.UnknownGeoPoint(), []order.LineItem{newLine(t, 20)})
	require.NoError(t, err)
	return o
}

func TestNewLineItem(t *testing.T) {
	t.Run("should create a line", func(t *testing.T) {
		variantID := kernel.NewUUID()

		line, err := order.NewLineItem(variantID, 3)

		require.NoError(t, err)
		require.NoError(t, line.Validate())
		assert.True(t, variantID.IsEqual(line.VariantID()))
		assert.Equal(t, 3, line.Quantity())
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		for _, qty := range []int{0, -4} {
			_, err := order.NewLineItem(kernel.NewUUID(), qty)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("should reject zero variant", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.UUID{}, 1)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("zero value does not validate", func(t *testing.T) {
		var line order.LineItem
		require.ErrorIs(t, line.Validate(), order.ErrLineItemIsNotConstructed)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("should create a pending order", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.ShopID())
		assert.Nil(t, o.DispatchedAt())
		assert.Empty(t, o.TrackingNumber())
		assert.Len(t, o.Lines(), 1)
		assert.False(t, o.DeliveryLocation().IsKnown())
	})

	t.Run("should require line items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "addr", kernel.UnknownGeoPoint(), nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should join construction errors", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, "addr", kernel.GeoPoint{}, []order.LineItem{{}})

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, kernel.ErrGeoPointIsNotConstructed)
		require.ErrorIs(t, err, order.ErrLineItemIsNotConstructed)
	})

	t.Run("lines are copied", func(t *testing.T) {
		o := newOrder(t)
		lines := o.Lines()
		lines[0] = newLine(t, 99)

		assert.Equal(t, 20, o.Lines()[0].Quantity())
	})
}

func TestRestoreOrder(t *testing.T) {
	shopID := kernel.NewUUID()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	o, err := order.RestoreOrder(kernel.NewUUID(), order.InTransit, &shopID, "TRK-9", &at,
		"addr", kernel.UnknownGeoPoint(), []order.LineItem{newLine(t, 1)})

	require.NoError(t, err)
	assert.Equal(t, order.InTransit, o.Status())
	assert.True(t, shopID.IsEqual(*o.ShopID()))
	assert.Equal(t, "TRK-9", o.TrackingNumber())
	assert.Equal(t, at, *o.DispatchedAt())

	_, err = order.RestoreOrder(kernel.NewUUID(), order.Status("lost"), nil, "", nil,
		"addr", kernel.UnknownGeoPoint(), []order.LineItem{newLine(t, 1)})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)

	var zero order.Order
	require.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_Dispatch(t *testing.T) {
	at := time.Now().UTC()

	t.Run("should move to in transit and record shipping metadata", func(t *testing.T) {
		o := newOrder(t)
		shopID := kernel.NewUUID()

		require.NoError(t, o.ValidateDispatch())
		require.NoError(t, o.Dispatch(shopID, "  TRK-1 ", at))

		assert.Equal(t, order.InTransit, o.Status())
		assert.True(t, shopID.IsEqual(*o.ShopID()))
		assert.Equal(t, "TRK-1", o.TrackingNumber())
		assert.Equal(t, at, *o.DispatchedAt())
	})

	t.Run("should not dispatch twice", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Dispatch(kernel.NewUUID(), "TRK-1", at))

		require.ErrorIs(t, o.ValidateDispatch(), errs.ErrIllegalTransition)
		require.ErrorIs(t, o.Dispatch(kernel.NewUUID(), "TRK-2", at), errs.ErrIllegalTransition)
		assert.Equal(t, "TRK-1", o.TrackingNumber())
	})

	t.Run("should require a tracking number", func(t *testing.T) {
		o := newOrder(t)

		require.ErrorIs(t, o.Dispatch(kernel.NewUUID(), "   ", at), errs.ErrValueIsRequired)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should not dispatch a cancelled order", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.ChangeStatus(order.Cancelled))

		require.ErrorIs(t, o.Dispatch(kernel.NewUUID(), "TRK-1", at), errs.ErrIllegalTransition)
	})
}

func TestOrder_DeliveryAndReturn(t *testing.T) {
	t.Run("delivered only from in transit", func(t *testing.T) {
		o := newOrder(t)
		require.ErrorIs(t, o.MarkDelivered(), errs.ErrIllegalTransition)

		require.NoError(t, o.Dispatch(kernel.NewUUID(), "TRK-1", time.Now()))
		require.NoError(t, o.MarkDelivered())
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("return to shop after cancelled dispatch", func(t *testing.T) {
		o := newOrder(t)
		require.ErrorIs(t, o.ReturnToShop(), errs.ErrIllegalTransition)

		require.NoError(t, o.Dispatch(kernel.NewUUID(), "TRK-1", time.Now()))
		require.NoError(t, o.ReturnToShop())

		assert.Equal(t, order.Shipped, o.Status())
		assert.Equal(t, "TRK-1", o.TrackingNumber())
		require.NoError(t, o.ValidateDispatch())
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("should walk the fulfilment path", func(t *testing.T) {
		o := newOrder(t)

		for _, next := range []order.Status{order.Confirmed, order.Processing, order.Shipped} {
			require.NoError(t, o.ChangeStatus(next))
			assert.Equal(t, next, o.Status())
		}
	})

	t.Run("should refuse statuses owned by dispatch", func(t *testing.T) {
		o := newOrder(t)

		require.ErrorIs(t, o.ChangeStatus(order.InTransit), errs.ErrValueIsInvalid)
		require.ErrorIs(t, o.ChangeStatus(order.Delivered), errs.ErrValueIsInvalid)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should refuse illegal pairs", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.ChangeStatus(order.Cancelled))

		require.ErrorIs(t, o.ChangeStatus(order.Confirmed), errs.ErrIllegalTransition)
	})

	t.Run("should leave an order in transit to its assignment", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Dispatch(kernel.NewUUID(), "TRK-1", time.Now()))

		require.ErrorIs(t, o.ChangeStatus(order.Shipped), errs.ErrIllegalTransition)
		require.ErrorIs(t, o.ChangeStatus(order.Cancelled), errs.ErrIllegalTransition)
		assert.Equal(t, order.InTransit, o.Status())
	})
}
