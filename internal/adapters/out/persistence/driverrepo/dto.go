// Package driverrepo persists drivers.
package driverrepo

import (
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type DriverDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"size:255;not null"`
	VehicleType string     `gorm:"size:32;not null"`
	Status      string     `gorm:"size:32;not null"`
	EmployeeID  *uuid.UUID `gorm:"type:uuid;index"`
	UserID      *uuid.UUID `gorm:"type:uuid"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(aggregate *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		VehicleType: aggregate.VehicleType().String(),
		Status:      aggregate.Status().String(),
		EmployeeID:  kernel.NullableBytes(aggregate.EmployeeID()),
		UserID:      kernel.NullableBytes(aggregate.UserID()),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	employeeID, err := kernel.UUIDFromNullable(dto.EmployeeID)
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromNullable(dto.UserID)
	if err != nil {
		return nil, err
	}
	vehicleType, err := driver.ParseVehicleType(dto.VehicleType)
	if err != nil {
		return nil, err
	}
	status, err := driver.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(id, dto.Name, vehicleType, status, employeeID, userID)
}
