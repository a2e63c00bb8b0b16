// Package dispatch holds the append-only Dispatch Record written for every
// successful assignment.
package dispatch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Status of a dispatch record. Records are never updated, so the only value
// written today is Assigned.
type Status string

const Assigned Status = "assigned"

var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Record is one dispatch event.
type Record struct {
	id                    kernel.UUID
	orderID               kernel.UUID
	driverID              kernel.UUID
	shopID                kernel.UUID
	trackingNumber        string
	estimatedDeliveryTime *time.Time
	transportCost         *float64
	notes                 string
	status                Status
	createdBy             string
	createdAt             time.Time
	guard                 guard.ConstructorGuard
}

// Details are the optional, caller-supplied parts of a record.
type Details struct {
	EstimatedDeliveryTime *time.Time
	TransportCost         *float64
	Notes                 string
}

func NewRecord(
	id, orderID, driverID, shopID kernel.UUID,
	trackingNumber string,
	details Details,
	createdBy string,
	createdAt time.Time,
) (*Record, error) {
	return RestoreRecord(id, orderID, driverID, shopID, trackingNumber, details, Assigned, createdBy, createdAt)
}

// RestoreRecord rebuilds a record from persistence.
func RestoreRecord(
	id, orderID, driverID, shopID kernel.UUID,
	trackingNumber string,
	details Details,
	status Status,
	createdBy string,
	createdAt time.Time,
) (*Record, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	createdBy = strings.TrimSpace(createdBy)

	var fieldErrs []error
	fieldErrs = append(fieldErrs, id.Validate(), orderID.Validate(), driverID.Validate(), shopID.Validate())
	if trackingNumber == "" {
		fieldErrs = append(fieldErrs, errs.NewValueIsRequiredError("trackingNumber"))
	}
	if createdBy == "" {
		fieldErrs = append(fieldErrs, errs.NewValueIsRequiredError("createdBy"))
	}
	if details.TransportCost != nil && *details.TransportCost < 0 {
		fieldErrs = append(fieldErrs, errs.NewValueIsInvalidErrorWithCause(
			"transportCost", fmt.Errorf("%v is negative", *details.TransportCost)))
	}
	if status != Assigned {
		fieldErrs = append(fieldErrs, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%q is not a valid dispatch status", string(status))))
	}
	if err := errors.Join(fieldErrs...); err != nil {
		return nil, err
	}

	return &Record{
		id:                    id,
		orderID:               orderID,
		driverID:              driverID,
		shopID:                shopID,
		trackingNumber:        trackingNumber,
		estimatedDeliveryTime: details.EstimatedDeliveryTime,
		transportCost:         details.TransportCost,
		notes:                 strings.TrimSpace(details.Notes),
		status:                status,
		createdBy:             createdBy,
		createdAt:             createdAt,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

func (r *Record) ID() kernel.UUID { return r.id }
func (r *Record) OrderID() kernel.UUID { return r.orderID }
func (r *Record) DriverID() kernel.UUID { return r.driverID }
func (r *Record) ShopID() kernel.UUID { return r.shopID }
func (r *Record) TrackingNumber() string { return r.trackingNumber }
func (r *Record) EstimatedDeliveryTime() *time.Time { return r.estimatedDeliveryTime }
func (r *Record) TransportCost() *float64 { return r.transportCost }
func (r *Record) Notes() string { return r.notes }
func (r *Record) Status() Status { return r.status }
func (r *Record) CreatedBy() string { return r.createdBy }
func (r *Record) CreatedAt() time.Time { return r.createdAt }
