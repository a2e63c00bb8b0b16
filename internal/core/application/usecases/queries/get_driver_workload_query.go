package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriverWorkloadQueryIsNotConstructed = errors.New(
	"GetDriverWorkloadQuery must be created via NewGetDriverWorkloadQuery constructor",
)

// GetDriverWorkloadQuery reports how many active assignments a driver holds
// against the limit of their vehicle type.
type GetDriverWorkloadQuery struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDriverWorkloadQuery(driverID string) (GetDriverWorkloadQuery, error) {
	parsed, err := parseID("driverId", driverID)
	if err != nil {
		return GetDriverWorkloadQuery{}, err
	}
	return GetDriverWorkloadQuery{driverID: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDriverWorkloadQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverWorkloadQueryIsNotConstructed)
}

func (q GetDriverWorkloadQuery) DriverID() kernel.UUID {
	return q.driverID
}

type GetDriverWorkloadQueryResponse struct {
	DriverID          kernel.UUID
	VehicleType       string
	Status            string
	ActiveAssignments int
	MaxActiveOrders   int
}
