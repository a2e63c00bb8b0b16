// Package orderrepo persists order aggregates and their line items.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is a row of the orders table.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Status          string     `gorm:"size:32;not null;index"`
	ShopID          *uuid.UUID `gorm:"type:uuid;index"`
	TrackingNumber  string     `gorm:"size:64"`
	DispatchedAt    *time.Time
	DeliveryAddress string
	DeliveryLat     *float64       `gorm:"type:double precision"`
	DeliveryLng     *float64       `gorm:"type:double precision"`
	Lines           []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is a row of the order_lines table.
type OrderLineDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	VariantID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	lat, lng := aggregate.DeliveryLocation().Nullable()

	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for _, l := range aggregate.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:   aggregate.ID().Bytes(),
			VariantID: l.VariantID().Bytes(),
			Quantity:  l.Quantity(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		Status:          aggregate.Status().String(),
		ShopID:          kernel.NullableBytes(aggregate.ShopID()),
		TrackingNumber:  aggregate.TrackingNumber(),
		DispatchedAt:    aggregate.DispatchedAt(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		DeliveryLat:     lat,
		DeliveryLng:     lng,
		Lines:           lines,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shopID, err := kernel.UUIDFromNullable(dto.ShopID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	location, err := kernel.GeoPointFromNullable(dto.DeliveryLat, dto.DeliveryLng)
	if err != nil {
		return nil, err
	}

	lines := make([]order.LineItem, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		variantID, variantErr := kernel.UUIDFromBytes(l.VariantID[:])
		if variantErr != nil {
			return nil, variantErr
		}
		line, lineErr := order.NewLineItem(variantID, l.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		status,
		shopID,
		dto.TrackingNumber,
		dto.DispatchedAt,
		dto.DeliveryAddress,
		location,
		lines,
	)
}
