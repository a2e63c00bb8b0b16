// Package inventoryrepo is the gorm-backed per-shop stock ledger.
package inventoryrepo

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShopInventoryDTO is a row of the shop_inventory table.
type ShopInventoryDTO struct {
	ShopID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	VariantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Stock     int       `gorm:"not null;default:0;check:chk_shop_inventory_stock,stock >= 0"`
	UpdatedAt time.Time
}

func (ShopInventoryDTO) TableName() string {
	return "shop_inventory"
}

// StockMovementDTO is a row of the stock_movements table: units taken from a
// shop for one assignment. ReturnedAt is set once the units went back.
type StockMovementDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssignmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	ShopID       uuid.UUID `gorm:"type:uuid;not null"`
	VariantID    uuid.UUID `gorm:"type:uuid;not null"`
	Quantity     int       `gorm:"not null"`
	TakenAt      time.Time `gorm:"not null"`
	ReturnedAt   *time.Time
}

func (StockMovementDTO) TableName() string {
	return "stock_movements"
}

// GormInventoryRepository implements ports.InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// Decrement is a conditional UPDATE; it never takes stock below zero.
func (r *GormInventoryRepository) Decrement(ctx context.Context, shopID, variantID kernel.UUID, quantity int) error {
	if err := validate(shopID, variantID, quantity); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ShopInventoryDTO{}).
		Where("shop_id = ? AND variant_id = ? AND stock >= ?", shopID.Bytes(), variantID.Bytes(), quantity).
		Updates(map[string]any{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewInsufficientStockError(shopID.String(), variantID.String(), quantity)
	}

	return nil
}

// Take must run inside a transaction: the decrement and the movement row are
// two statements.
func (r *GormInventoryRepository) Take(
	ctx context.Context,
	assignmentID, shopID, variantID kernel.UUID,
	quantity int,
) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}
	if err := r.Decrement(ctx, shopID, variantID, quantity); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&StockMovementDTO{
		ID:           kernel.NewUUID().Bytes(),
		AssignmentID: assignmentID.Bytes(),
		ShopID:       shopID.Bytes(),
		VariantID:    variantID.Bytes(),
		Quantity:     quantity,
		TakenAt:      time.Now().UTC(),
	}).Error
}

// Release claims each open movement with a conditional update before returning
// its units, so two concurrent releases never return the same movement twice.
func (r *GormInventoryRepository) Release(ctx context.Context, assignmentID kernel.UUID) ([]ports.StockMovement, error) {
	if err := assignmentID.Validate(); err != nil {
		return nil, err
	}

	var open []StockMovementDTO
	err := r.db.WithContext(ctx).
		Where("assignment_id = ? AND returned_at IS NULL", assignmentID.Bytes()).
		Order("taken_at").
		Find(&open).Error
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	released := make([]ports.StockMovement, 0, len(open))
	for _, dto := range open {
		claim := r.db.WithContext(ctx).
			Model(&StockMovementDTO{}).
			Where("id = ? AND returned_at IS NULL", dto.ID).
			Update("returned_at", now)
		if claim.Error != nil {
			return nil, claim.Error
		}
		if claim.RowsAffected == 0 {
			continue
		}

		movement, convErr := toMovement(dto)
		if convErr != nil {
			return nil, convErr
		}
		if err = r.Increment(ctx, movement.ShopID, movement.VariantID, movement.Quantity); err != nil {
			return nil, err
		}
		released = append(released, movement)
	}

	return released, nil
}

func (r *GormInventoryRepository) Increment(ctx context.Context, shopID, variantID kernel.UUID, quantity int) error {
	if err := validate(shopID, variantID, quantity); err != nil {
		return err
	}

	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&ShopInventoryDTO{}).
		Where("shop_id = ? AND variant_id = ?", shopID.Bytes(), variantID.Bytes()).
		Updates(map[string]any{
			"stock":      gorm.Expr("stock + ?", quantity),
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&ShopInventoryDTO{
		ShopID:    shopID.Bytes(),
		VariantID: variantID.Bytes(),
		Stock:     quantity,
		UpdatedAt: now,
	}).Error
}

func (r *GormInventoryRepository) Stock(ctx context.Context, shopID, variantID kernel.UUID) (int, error) {
	var dto ShopInventoryDTO
	result := r.db.WithContext(ctx).
		Where("shop_id = ? AND variant_id = ?", shopID.Bytes(), variantID.Bytes()).
		Limit(1).
		Find(&dto)
	if result.Error != nil {
		return 0, result.Error
	}

	return dto.Stock, nil
}

func toMovement(dto StockMovementDTO) (ports.StockMovement, error) {
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return ports.StockMovement{}, err
	}
	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return ports.StockMovement{}, err
	}
	return ports.StockMovement{ShopID: shopID, VariantID: variantID, Quantity: dto.Quantity}, nil
}

func validate(shopID, variantID kernel.UUID, quantity int) error {
	if err := shopID.Validate(); err != nil {
		return err
	}
	if err := variantID.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}
