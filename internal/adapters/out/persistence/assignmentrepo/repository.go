package assignmentrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// insertIfUnderCapacity inserts one assignment row only while the driver's
// active count is below the limit. The count and the insert are a single
// statement, so no other writer can slip in between them.
const insertIfUnderCapacity = `
INSERT INTO driver_assignments (
	id, driver_id, order_id, status,
	pickup_lat, pickup_lng, delivery_lat, delivery_lng,
	created_by, assigned_at, updated_at, completed_at
)
SELECT %s
WHERE (
	SELECT COUNT(*) FROM driver_assignments
	WHERE driver_id = ? AND status NOT IN (?, ?)
) < ?`

const lockDriverCapacity = `SELECT pg_advisory_xact_lock(hashtext(?))`

// insertColumnTypes are the PostgreSQL types of the selected parameters.
// Untyped parameters in a SELECT list default to text there, which does not
// convert implicitly to uuid or timestamptz.
var insertColumnTypes = []string{
	"uuid", "uuid", "uuid", "text",
	"double precision", "double precision", "double precision", "double precision",
	"text", "timestamptz", "timestamptz", "timestamptz",
}

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

func (r *GormAssignmentRepository) CountActive(ctx context.Context, driverID kernel.UUID) (int, error) {
	if err := driverID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("driver_id = ? AND status NOT IN ?", driverID.Bytes(), terminalStatuses()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

func (r *GormAssignmentRepository) AddIfUnderCapacity(
	ctx context.Context,
	aggregate *assignment.Assignment,
	limit int,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	terminal := terminalStatuses()
	query := fmt.Sprintf(insertIfUnderCapacity, r.selectList())

	// Under READ COMMITTED two inserts can both see the old count, so
	// PostgreSQL serialises writers per driver until the transaction ends.
	if r.isPostgres() {
		if err := r.db.WithContext(ctx).Exec(lockDriverCapacity, aggregate.DriverID().String()).Error; err != nil {
			return err
		}
	}

	result := r.db.WithContext(ctx).Exec(query,
		dto.ID, dto.DriverID, dto.OrderID, dto.Status,
		dto.PickupLat, dto.PickupLng, dto.DeliveryLat, dto.DeliveryLng,
		dto.CreatedBy, dto.AssignedAt, dto.UpdatedAt, dto.CompletedAt,
		dto.DriverID, terminal[0], terminal[1], limit,
	)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		active, err := r.CountActive(ctx, aggregate.DriverID())
		if err != nil {
			return err
		}
		return errs.NewCapacityExceededError(aggregate.DriverID().String(), active, limit)
	}

	return nil
}

func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update writes the lifecycle columns; everything else is immutable.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":       dto.Status,
			"updated_at":   dto.UpdatedAt,
			"completed_at": dto.CompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", aggregate.ID().String())
	}

	return nil
}

func (r *GormAssignmentRepository) selectList() string {
	params := make([]string, len(insertColumnTypes))
	for i, sqlType := range insertColumnTypes {
		if r.isPostgres() {
			params[i] = "CAST(? AS " + sqlType + ")"
			continue
		}
		params[i] = "?"
	}
	return strings.Join(params, ", ")
}

func (r *GormAssignmentRepository) isPostgres() bool {
	return r.db.Dialector.Name() == "postgres"
}
