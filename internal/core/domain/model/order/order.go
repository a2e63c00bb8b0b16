package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrStatusManagedByDispatch is returned when a caller tries to set InTransit or
	// Delivered directly; those statuses belong to the dispatch workflow.
	ErrStatusManagedByDispatch = errs.NewValueIsInvalidErrorWithCause(
		"status", errors.New("in_transit and delivered are set by the dispatch workflow"))
)

// Order is the aggregate root for a customer order on its way from a shop to the
// customer.
//
// Order follows these invariants:
//   - Must have a valid identifier and at least one line item
//   - Status changes only through Status.TransitionTo
//   - A dispatched order always carries a shop, a tracking number and a dispatch time
type Order struct {
	id               kernel.UUID
	status           Status
	shopID           *kernel.UUID
	trackingNumber   string
	dispatchedAt     *time.Time
	deliveryAddress  string
	deliveryLocation kernel.GeoPoint
	lines            []LineItem

	isConstructed bool
}

// NewOrder creates a Pending order.
//
// Example:
//
//	line, _ := order.NewLineItem(variantID, 20)
//	o, err := order.NewOrder(kernel.NewUUID(), "House 7, Road 3, Uttara", kernel.UnknownGeoPoint(), []order.LineItem{line})
func NewOrder(
	id kernel.UUID,
	deliveryAddress string,
	deliveryLocation kernel.GeoPoint,
	lines []LineItem,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDeliveryAddress(deliveryAddress),
		o.setDeliveryLocation(deliveryLocation),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	shopID *kernel.UUID,
	trackingNumber string,
	dispatchedAt *time.Time,
	deliveryAddress string,
	deliveryLocation kernel.GeoPoint,
	lines []LineItem,
) (*Order, error) {
	o := &Order{
		shopID:         shopID,
		trackingNumber: trackingNumber,
		dispatchedAt:   dispatchedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setStatus(status),
		o.setDeliveryAddress(deliveryAddress),
		o.setDeliveryLocation(deliveryLocation),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Status() Status {
	return o.status
}

// ShopID is the dispatching shop, nil until the order is dispatched.
func (o *Order) ShopID() *kernel.UUID {
	return o.shopID
}

func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

func (o *Order) DispatchedAt() *time.Time {
	return o.dispatchedAt
}

func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

func (o *Order) DeliveryLocation() kernel.GeoPoint {
	return o.deliveryLocation
}

// Lines returns a copy of the line items.
func (o *Order) Lines() []LineItem {
	lines := make([]LineItem, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// ValidateDispatch checks, without side effects, that the order may be dispatched.
func (o *Order) ValidateDispatch() error {
	if !o.status.CanTransitionTo(InTransit) {
		return errs.NewIllegalTransitionError("order", o.status.String(), InTransit.String())
	}
	return nil
}

// Dispatch moves the order to InTransit and records where and when it left.
func (o *Order) Dispatch(shopID kernel.UUID, trackingNumber string, at time.Time) error {
	if err := shopID.Validate(); err != nil {
		return err
	}
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}

	next, err := o.status.TransitionTo(InTransit)
	if err != nil {
		return err
	}

	o.status = next
	o.shopID = &shopID
	o.trackingNumber = trackingNumber
	o.dispatchedAt = &at
	return nil
}

// MarkDelivered completes an order that is in transit.
func (o *Order) MarkDelivered() error {
	next, err := o.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// ReturnToShop undoes a dispatch whose assignment was cancelled. The shop and
// tracking number are kept for the audit trail.
func (o *Order) ReturnToShop() error {
	if o.status != InTransit {
		return errs.NewIllegalTransitionError("order", o.status.String(), Shipped.String())
	}
	o.status = Shipped
	return nil
}

// ChangeStatus applies a status change requested outside of the dispatch workflow.
// An order in transit belongs to its assignment and cannot be changed here.
func (o *Order) ChangeStatus(next Status) error {
	if next == InTransit || next == Delivered {
		return ErrStatusManagedByDispatch
	}
	if o.status == InTransit {
		return errs.NewIllegalTransitionError("order", o.status.String(), next.String())
	}
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	o.deliveryAddress = strings.TrimSpace(address)
	return nil
}

func (o *Order) setDeliveryLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.deliveryLocation = location
	return nil
}

func (o *Order) setLines(lines []LineItem) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	for i, l := range lines {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
	}
	o.lines = make([]LineItem, len(lines))
	copy(o.lines, lines)
	return nil
}
