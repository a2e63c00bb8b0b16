package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDriverWorkloadQueryHandler combines the active assignment count with the
// capacity policy, including any override stored in settings.
type GetDriverWorkloadQueryHandler struct {
	db *gorm.DB
}

func NewGetDriverWorkloadQueryHandler(db *gorm.DB) GetDriverWorkloadQueryHandler {
	return GetDriverWorkloadQueryHandler{db: db}
}

func (h GetDriverWorkloadQueryHandler) Handle(
	ctx context.Context,
	query GetDriverWorkloadQuery,
) (*GetDriverWorkloadQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	terminal := make([]string, 0, len(assignment.TerminalStatuses()))
	for _, s := range assignment.TerminalStatuses() {
		terminal = append(terminal, s.String())
	}

	resp := GetDriverWorkloadQueryResponse{DriverID: query.DriverID()}

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.vehicle_type,
			d.status,
			(
				SELECT COUNT(*)
				FROM driver_assignments a
				WHERE a.driver_id = d.id AND a.status NOT IN ?
			)
		FROM drivers d
		WHERE d.id = ?
	`, terminal, query.DriverID().Bytes()).Row().Scan(
		&resp.VehicleType,
		&resp.Status,
		&resp.ActiveAssignments,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("driver", query.DriverID().String())
	}
	if err != nil {
		return nil, err
	}

	vehicleType := driver.VehicleType(resp.VehicleType)
	key := services.CapacitySettingKey(vehicleType)

	var override sql.NullString
	err = h.db.WithContext(ctx).Raw(
		`SELECT setting_value FROM settings WHERE setting_key = ?`, key,
	).Row().Scan(&override)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	settings := map[string]string{}
	if override.Valid {
		settings[key] = override.String
	}
	resp.MaxActiveOrders = services.MaxActiveOrders(vehicleType, settings)

	return &resp, nil
}
