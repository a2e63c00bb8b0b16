// Package shoprepo persists shops.
package shoprepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shop"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShopDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"size:255;not null"`
	Address string
	Lat     *float64 `gorm:"type:double precision"`
	Lng     *float64 `gorm:"type:double precision"`
}

func (ShopDTO) TableName() string {
	return "shops"
}

// GormShopRepository implements ports.ShopRepository using GORM.
type GormShopRepository struct {
	db *gorm.DB
}

func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

func (r *GormShopRepository) Add(ctx context.Context, aggregate *shop.Shop) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	lat, lng := aggregate.Location().Nullable()
	dto := ShopDTO{
		ID:      aggregate.ID().Bytes(),
		Name:    aggregate.Name(),
		Address: aggregate.Address(),
		Lat:     lat,
		Lng:     lng,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormShopRepository) Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShopDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shop", id.String())
		}
		return nil, err
	}

	location, err := kernel.GeoPointFromNullable(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}

	return shop.NewShop(id, dto.Name, dto.Address, location)
}
