package services

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/shop"
	"dispatch/internal/pkg/errs"
)

// DispatchRequest carries the loaded aggregates and the driver's current load.
type DispatchRequest struct {
	Order             *order.Order
	Driver            *driver.Driver
	Shop              *shop.Shop
	ActiveAssignments int
	MaxActiveOrders   int
	TrackingNumber    string
	Details           dispatch.Details
	RequestedBy       string
	At                time.Time
}

// DispatchResult holds the new entities created by a dispatch. Notification is
// nil when the driver has no linked user account.
type DispatchResult struct {
	Assignment   *assignment.Assignment
	Record       *dispatch.Record
	Notification *notification.Message
}

// Dispatcher assigns one order to one driver.
//
// Business rules:
//   - The driver must have fewer active assignments than its vehicle allows
//   - The order status must allow the move to in_transit
//   - Pickup is the shop location, delivery is the order location; either may be unknown
//   - Nothing is mutated when a rule fails
//
// Example usage:
//
//	result, err := services.NewDispatcher().Dispatch(services.DispatchRequest{
//	    Order: o, Driver: d, Shop: s,
//	    ActiveAssignments: active,
//	    MaxActiveOrders:   services.MaxActiveOrders(d.VehicleType(), settings),
//	    TrackingNumber:    "TRK-1001",
//	    RequestedBy:       "admin",
//	    At:                time.Now(),
//	})
type Dispatcher struct{}

func NewDispatcher() Dispatcher {
	return Dispatcher{}
}

// Dispatch checks every rule, then dispatches the order and marks the driver busy.
func (Dispatcher) Dispatch(req DispatchRequest) (DispatchResult, error) {
	if err := errors.Join(
		req.Order.Validate(),
		req.Driver.Validate(),
		req.Shop.Validate(),
	); err != nil {
		return DispatchResult{}, err
	}

	if err := CheckCapacity(req.Driver, req.ActiveAssignments, req.MaxActiveOrders); err != nil {
		return DispatchResult{}, err
	}

	if err := req.Order.ValidateDispatch(); err != nil {
		return DispatchResult{}, err
	}

	a, err := assignment.NewAssignment(
		kernel.NewUUID(),
		req.Driver.ID(),
		req.Order.ID(),
		req.Shop.Location(),
		req.Order.DeliveryLocation(),
		req.RequestedBy,
		req.At,
	)
	if err != nil {
		return DispatchResult{}, err
	}

	record, err := dispatch.NewRecord(
		kernel.NewUUID(),
		req.Order.ID(),
		req.Driver.ID(),
		req.Shop.ID(),
		req.TrackingNumber,
		req.Details,
		req.RequestedBy,
		req.At,
	)
	if err != nil {
		return DispatchResult{}, err
	}

	message, err := assignmentNotification(req.Driver, req.Shop, a, record)
	if err != nil {
		return DispatchResult{}, err
	}

	if err = req.Order.Dispatch(req.Shop.ID(), record.TrackingNumber(), req.At); err != nil {
		return DispatchResult{}, err
	}
	req.Driver.MarkBusy()

	return DispatchResult{
		Assignment:   a,
		Record:       record,
		Notification: message,
	}, nil
}

// CheckCapacity returns a CapacityExceededError when one more assignment would
// exceed the limit.
func CheckCapacity(d *driver.Driver, active, limit int) error {
	if active >= limit {
		return errs.NewCapacityExceededError(d.ID().String(), active, limit)
	}
	return nil
}

func assignmentNotification(
	d *driver.Driver,
	s *shop.Shop,
	a *assignment.Assignment,
	r *dispatch.Record,
) (*notification.Message, error) {
	if d.UserID() == nil {
		return nil, nil //nolint:nilnil // no recipient, nothing to send
	}

	return notification.NewMessage(
		kernel.NewUUID(),
		notification.UserTypeDriver,
		*d.UserID(),
		notification.Content{
			Title:       "New delivery assignment",
			Description: fmt.Sprintf("Order %s is ready for pickup at %s", r.TrackingNumber(), s.Name()),
			Href:        "/driver/assignments/" + a.ID().String(),
		},
		r.CreatedAt(),
	)
}
