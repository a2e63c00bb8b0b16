package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDispatchRecordQueryHandler reads dispatch records joined with their
// driver and shop.
type GetDispatchRecordQueryHandler struct {
	db *gorm.DB
}

func NewGetDispatchRecordQueryHandler(db *gorm.DB) GetDispatchRecordQueryHandler {
	return GetDispatchRecordQueryHandler{db: db}
}

// Handle returns an ObjectNotFoundError when no record has the query's id.
func (h GetDispatchRecordQueryHandler) Handle(
	ctx context.Context,
	query GetDispatchRecordQuery,
) (*GetDispatchRecordQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			r.order_id,
			r.tracking_number,
			r.status,
			r.estimated_delivery_time,
			r.transport_cost,
			r.notes,
			r.created_by,
			r.created_at,
			d.id,
			d.name,
			d.vehicle_type,
			d.employee_id,
			s.id,
			s.name
		FROM dispatch_records r
		JOIN drivers d ON d.id = r.driver_id
		JOIN shops s ON s.id = r.shop_id
		WHERE r.id = ?
	`, query.ID().Bytes()).Row()
	if err := row.Err(); err != nil {
		return nil, err
	}

	var (
		resp                          GetDispatchRecordQueryResponse
		id, orderID, driverID, shopID uuid.UUID
		employeeID                    uuid.NullUUID
		estimated                     sql.NullTime
		cost                          sql.NullFloat64
		notes                         sql.NullString
	)

	err := row.Scan(
		&id,
		&orderID,
		&resp.TrackingNumber,
		&resp.Status,
		&estimated,
		&cost,
		&notes,
		&resp.CreatedBy,
		&resp.CreatedAt,
		&driverID,
		&resp.Driver.Name,
		&resp.Driver.VehicleType,
		&employeeID,
		&shopID,
		&resp.Shop.Name,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("dispatch record", query.ID().String())
	}
	if err != nil {
		return nil, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return nil, err
	}
	if resp.Driver.ID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
		return nil, err
	}
	if resp.Shop.ID, err = kernel.UUIDFromBytes(shopID[:]); err != nil {
		return nil, err
	}
	if employeeID.Valid {
		if resp.Driver.EmployeeID, err = kernel.UUIDFromNullable(&employeeID.UUID); err != nil {
			return nil, err
		}
	}

	if estimated.Valid {
		at := estimated.Time.UTC()
		resp.EstimatedDeliveryTime = &at
	}
	if cost.Valid {
		resp.TransportCost = &cost.Float64
	}
	resp.Notes = notes.String
	resp.CreatedAt = resp.CreatedAt.UTC()

	return &resp, nil
}
