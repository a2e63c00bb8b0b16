// Package dispatchrepo persists the append-only dispatch records.
package dispatchrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DispatchRecordDTO is a row of the dispatch_records table.
type DispatchRecordDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID               uuid.UUID `gorm:"type:uuid;not null;index"`
	DriverID              uuid.UUID `gorm:"type:uuid;not null;index"`
	ShopID                uuid.UUID `gorm:"type:uuid;not null;index"`
	TrackingNumber        string    `gorm:"size:64;not null"`
	EstimatedDeliveryTime *time.Time
	TransportCost         *float64 `gorm:"type:double precision;check:chk_dispatch_records_cost,transport_cost >= 0"`
	Notes                 string
	Status                string    `gorm:"size:32;not null"`
	CreatedBy             string    `gorm:"size:255;not null"`
	CreatedAt             time.Time `gorm:"not null"`
}

func (DispatchRecordDTO) TableName() string {
	return "dispatch_records"
}

// GormDispatchRecordRepository implements ports.DispatchRecordRepository using GORM.
type GormDispatchRecordRepository struct {
	db *gorm.DB
}

func NewGormDispatchRecordRepository(db *gorm.DB) *GormDispatchRecordRepository {
	return &GormDispatchRecordRepository{db: db}
}

func (r *GormDispatchRecordRepository) Add(ctx context.Context, record *dispatch.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := DispatchRecordDTO{
		ID:                    record.ID().Bytes(),
		OrderID:               record.OrderID().Bytes(),
		DriverID:              record.DriverID().Bytes(),
		ShopID:                record.ShopID().Bytes(),
		TrackingNumber:        record.TrackingNumber(),
		EstimatedDeliveryTime: record.EstimatedDeliveryTime(),
		TransportCost:         record.TransportCost(),
		Notes:                 record.Notes(),
		Status:                string(record.Status()),
		CreatedBy:             record.CreatedBy(),
		CreatedAt:             record.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormDispatchRecordRepository) Get(ctx context.Context, id kernel.UUID) (*dispatch.Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DispatchRecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dispatch record", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetLatestForOrder returns the most recent dispatch of an order.
func (r *GormDispatchRecordRepository) GetLatestForOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*dispatch.Record, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DispatchRecordDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dispatch record", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func toDomain(dto DispatchRecordDTO) (*dispatch.Record, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.OrderID, dto.DriverID, dto.ShopID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return dispatch.RestoreRecord(
		ids[0], ids[1], ids[2], ids[3],
		dto.TrackingNumber,
		dispatch.Details{
			EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
			TransportCost:         dto.TransportCost,
			Notes:                 dto.Notes,
		},
		dispatch.Status(dto.Status),
		dto.CreatedBy,
		dto.CreatedAt,
	)
}
