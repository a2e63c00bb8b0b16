package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shop"
)

type ShopRepository interface {
	Add(ctx context.Context, aggregate *shop.Shop) error
	Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error)
}
