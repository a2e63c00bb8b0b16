// Package assignmentrepo is the gorm-backed Driver Assignment Ledger.
package assignmentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO is a row of the driver_assignments table.
type AssignmentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID    uuid.UUID `gorm:"type:uuid;not null;index:idx_driver_assignments_driver_status"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"size:32;not null;index:idx_driver_assignments_driver_status"`
	PickupLat   *float64  `gorm:"type:double precision"`
	PickupLng   *float64  `gorm:"type:double precision"`
	DeliveryLat *float64  `gorm:"type:double precision"`
	DeliveryLng *float64  `gorm:"type:double precision"`
	CreatedBy   string    `gorm:"size:255;not null"`
	AssignedAt  time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
	CompletedAt *time.Time
}

func (AssignmentDTO) TableName() string {
	return "driver_assignments"
}

func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	pickupLat, pickupLng := aggregate.Pickup().Nullable()
	deliveryLat, deliveryLng := aggregate.Delivery().Nullable()

	return AssignmentDTO{
		ID:          aggregate.ID().Bytes(),
		DriverID:    aggregate.DriverID().Bytes(),
		OrderID:     aggregate.OrderID().Bytes(),
		Status:      aggregate.Status().String(),
		PickupLat:   pickupLat,
		PickupLng:   pickupLng,
		DeliveryLat: deliveryLat,
		DeliveryLng: deliveryLng,
		CreatedBy:   aggregate.CreatedBy(),
		AssignedAt:  aggregate.AssignedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
		CompletedAt: aggregate.CompletedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	status, err := assignment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	pickup, err := kernel.GeoPointFromNullable(dto.PickupLat, dto.PickupLng)
	if err != nil {
		return nil, err
	}
	delivery, err := kernel.GeoPointFromNullable(dto.DeliveryLat, dto.DeliveryLng)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id, driverID, orderID, status, pickup, delivery,
		dto.CreatedBy, dto.AssignedAt, dto.UpdatedAt, dto.CompletedAt,
	)
}

func terminalStatuses() []string {
	statuses := assignment.TerminalStatuses()
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.String())
	}
	return out
}
