// Package queries contains read operations for retrieving system state.
// Queries bypass the domain model and return read models shaped for callers.
package queries

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetDispatchRecordQueryIsNotConstructed = errors.New(
	"GetDispatchRecordQuery must be created via NewGetDispatchRecordQuery constructor",
)

// GetDispatchRecordQuery retrieves one dispatch record together with the
// names of the driver and shop it refers to.
//
// Example:
//
//	query, err := NewGetDispatchRecordQuery(c.Param("id"))
//	if err != nil {
//	    return err
//	}
//	view, err := NewGetDispatchRecordQueryHandler(db).Handle(ctx, query)
type GetDispatchRecordQuery struct {
	id kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDispatchRecordQuery(id string) (GetDispatchRecordQuery, error) {
	parsed, err := parseID("id", id)
	if err != nil {
		return GetDispatchRecordQuery{}, err
	}
	return GetDispatchRecordQuery{id: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDispatchRecordQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchRecordQueryIsNotConstructed)
}

func (q GetDispatchRecordQuery) ID() kernel.UUID {
	return q.id
}

// DispatchDriverView is the driver as shown on a dispatch record.
type DispatchDriverView struct {
	ID          kernel.UUID
	Name        string
	VehicleType string
	EmployeeID  *kernel.UUID
}

// DispatchShopView is the shop as shown on a dispatch record.
type DispatchShopView struct {
	ID   kernel.UUID
	Name string
}

// GetDispatchRecordQueryResponse is the denormalised dispatch record.
type GetDispatchRecordQueryResponse struct {
	ID                    kernel.UUID
	OrderID               kernel.UUID
	TrackingNumber        string
	Status                string
	EstimatedDeliveryTime *time.Time
	TransportCost         *float64
	Notes                 string
	CreatedBy             string
	CreatedAt             time.Time
	Driver                DispatchDriverView
	Shop                  DispatchShopView
}

func parseID(paramName, raw string) (kernel.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(paramName)
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	if err = id.Validate(); err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return id, nil
}
