package driver

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Status is the availability of a driver.
type Status string

const (
	Idle Status = "idle"
	Busy Status = "busy"
)

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if status != Idle && status != Busy {
		return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid driver status", s))
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver is a delivery driver.
//
// Business rules:
//   - A driver has a name and one of the supported vehicle types
//   - A new driver is Idle
//   - The dispatch workflow marks the driver Busy on assignment and Idle once the
//     last active assignment is delivered or cancelled
//   - A driver may be linked to an HR employee record and to a user account; the
//     employee link is an alternative lookup key, the user account receives notifications
type Driver struct {
	id          kernel.UUID
	name        string
	vehicleType VehicleType
	status      Status
	employeeID  *kernel.UUID
	userID      *kernel.UUID
	guard       guard.ConstructorGuard
}

// NewDriver creates an Idle driver.
//
// Example:
//
//	d, err := driver.NewDriver(kernel.NewUUID(), "Rahim", driver.Motorbike, nil, &userID)
func NewDriver(
	id kernel.UUID,
	name string,
	vehicleType VehicleType,
	employeeID *kernel.UUID,
	userID *kernel.UUID,
) (*Driver, error) {
	return RestoreDriver(id, name, vehicleType, Idle, employeeID, userID)
}

// RestoreDriver rebuilds a driver from persistence.
func RestoreDriver(
	id kernel.UUID,
	name string,
	vehicleType VehicleType,
	status Status,
	employeeID *kernel.UUID,
	userID *kernel.UUID,
) (*Driver, error) {
	d := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setVehicleType(vehicleType),
		d.setStatus(status),
		d.setEmployeeID(employeeID),
		d.setUserID(userID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

func (d *Driver) Name() string {
	return d.name
}

func (d *Driver) VehicleType() VehicleType {
	return d.vehicleType
}

func (d *Driver) Status() Status {
	return d.status
}

func (d *Driver) EmployeeID() *kernel.UUID {
	return d.employeeID
}

// UserID is the account that receives assignment notifications, nil if none is linked.
func (d *Driver) UserID() *kernel.UUID {
	return d.userID
}

func (d *Driver) IsBusy() bool {
	return d.status == Busy
}

// MarkBusy is called when the driver takes an assignment.
func (d *Driver) MarkBusy() {
	d.status = Busy
}

// SyncAvailability sets the status from the number of active assignments left.
func (d *Driver) SyncAvailability(activeAssignments int) {
	if activeAssignments > 0 {
		d.status = Busy
		return
	}
	d.status = Idle
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setVehicleType(vehicleType VehicleType) error {
	if err := vehicleType.Validate(); err != nil {
		return err
	}
	d.vehicleType = vehicleType
	return nil
}

func (d *Driver) setStatus(status Status) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Driver) setEmployeeID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	d.employeeID = id
	return nil
}

func (d *Driver) setUserID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	d.userID = id
	return nil
}
