package assignment

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

// Assignment binds one order to one driver.
//
// Pickup and delivery are snapshots taken at dispatch time; later changes to the
// shop or the order address do not move an assignment already on the road.
type Assignment struct {
	id          kernel.UUID
	driverID    kernel.UUID
	orderID     kernel.UUID
	status      Status
	pickup      kernel.GeoPoint
	delivery    kernel.GeoPoint
	createdBy   string
	assignedAt  time.Time
	updatedAt   time.Time
	completedAt *time.Time
	guard       guard.ConstructorGuard
}

// NewAssignment creates an assignment in the Assigned status.
func NewAssignment(
	id kernel.UUID,
	driverID kernel.UUID,
	orderID kernel.UUID,
	pickup kernel.GeoPoint,
	delivery kernel.GeoPoint,
	createdBy string,
	at time.Time,
) (*Assignment, error) {
	return RestoreAssignment(id, driverID, orderID, Assigned, pickup, delivery, createdBy, at, at, nil)
}

// RestoreAssignment rebuilds an assignment from persistence.
func RestoreAssignment(
	id kernel.UUID,
	driverID kernel.UUID,
	orderID kernel.UUID,
	status Status,
	pickup kernel.GeoPoint,
	delivery kernel.GeoPoint,
	createdBy string,
	assignedAt time.Time,
	updatedAt time.Time,
	completedAt *time.Time,
) (*Assignment, error) {
	if err := errors.Join(
		id.Validate(),
		driverID.Validate(),
		orderID.Validate(),
		status.Validate(),
		pickup.Validate(),
		delivery.Validate(),
	); err != nil {
		return nil, err
	}

	createdBy = strings.TrimSpace(createdBy)
	if createdBy == "" {
		return nil, errs.NewValueIsRequiredError("createdBy")
	}

	return &Assignment{
		id:          id,
		driverID:    driverID,
		orderID:     orderID,
		status:      status,
		pickup:      pickup,
		delivery:    delivery,
		createdBy:   createdBy,
		assignedAt:  assignedAt,
		updatedAt:   updatedAt,
		completedAt: completedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a *Assignment) ID() kernel.UUID {
	return a.id
}

func (a *Assignment) DriverID() kernel.UUID {
	return a.driverID
}

func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

func (a *Assignment) Status() Status {
	return a.status
}

func (a *Assignment) Pickup() kernel.GeoPoint {
	return a.pickup
}

func (a *Assignment) Delivery() kernel.GeoPoint {
	return a.delivery
}

func (a *Assignment) CreatedBy() string {
	return a.createdBy
}

func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

func (a *Assignment) UpdatedAt() time.Time {
	return a.updatedAt
}

// CompletedAt is set once the assignment reaches a terminal status.
func (a *Assignment) CompletedAt() *time.Time {
	return a.completedAt
}

func (a *Assignment) IsActive() bool {
	return a.status.IsActive()
}

// ChangeStatus applies one lifecycle step.
func (a *Assignment) ChangeStatus(next Status, at time.Time) error {
	newStatus, err := a.status.TransitionTo(next)
	if err != nil {
		return err
	}

	a.status = newStatus
	a.updatedAt = at
	if newStatus.IsTerminal() {
		a.completedAt = &at
	}
	return nil
}
