package commands

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignDispatchCommandIsNotConstructed = errors.New(
	"AssignDispatchCommand must be created via NewAssignDispatchCommand constructor",
)

// AssignDispatchCommand asks to dispatch one order from a shop with one driver.
//
// Example:
//
//	cmd, err := NewAssignDispatchCommand(orderID, driverID, shopID, "TRK-1001",
//	    dispatch.Details{Notes: "fragile"}, "admin")
//	if err != nil {
//	    return err // validation error, nothing was touched
//	}
//	record, err := handler.Handle(ctx, cmd)
type AssignDispatchCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	driverID       kernel.UUID
	shopID         kernel.UUID
	trackingNumber string
	details        dispatch.Details
	requestedBy    string

	guard guard.ConstructorGuard
}

// NewAssignDispatchCommand validates the raw request. The driver id may also be
// the id of the employee linked to the driver.
func NewAssignDispatchCommand(
	orderID, driverID, shopID string,
	trackingNumber string,
	details dispatch.Details,
	requestedBy string,
) (AssignDispatchCommand, error) {
	cmd := AssignDispatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriverID(driverID),
		cmd.setShopID(shopID),
		cmd.setTrackingNumber(trackingNumber),
		cmd.setDetails(details),
		cmd.setRequestedBy(requestedBy),
	); err != nil {
		return AssignDispatchCommand{}, err
	}

	return cmd, nil
}

func (c AssignDispatchCommand) Validate() error {
	return c.guard.Validate(ErrAssignDispatchCommandIsNotConstructed)
}

func (c AssignDispatchCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignDispatchCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c AssignDispatchCommand) ShopID() kernel.UUID {
	return c.shopID
}

func (c AssignDispatchCommand) TrackingNumber() string {
	return c.trackingNumber
}

func (c AssignDispatchCommand) Details() dispatch.Details {
	return c.details
}

func (c AssignDispatchCommand) RequestedBy() string {
	return c.requestedBy
}

func (c *AssignDispatchCommand) setOrderID(raw string) error {
	id, err := parseID("orderId", raw)
	if err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *AssignDispatchCommand) setDriverID(raw string) error {
	id, err := parseID("driverId", raw)
	if err != nil {
		return err
	}
	c.driverID = id
	return nil
}

func (c *AssignDispatchCommand) setShopID(raw string) error {
	id, err := parseID("shopId", raw)
	if err != nil {
		return err
	}
	c.shopID = id
	return nil
}

func (c *AssignDispatchCommand) setTrackingNumber(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	c.trackingNumber = trackingNumber
	return nil
}

func (c *AssignDispatchCommand) setDetails(details dispatch.Details) error {
	if details.TransportCost != nil && *details.TransportCost < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"transportCost", fmt.Errorf("%v is negative", *details.TransportCost))
	}
	c.details = details
	return nil
}

func (c *AssignDispatchCommand) setRequestedBy(requestedBy string) error {
	requestedBy = strings.TrimSpace(requestedBy)
	if requestedBy == "" {
		return errs.NewValueIsRequiredError("requestedBy")
	}
	c.requestedBy = requestedBy
	return nil
}
