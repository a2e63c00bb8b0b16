// Package ports defines the persistence contracts of the dispatch domain.
// The domain and application layers depend on these interfaces only; the gorm
// adapters in internal/adapters/out/persistence implement them.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository stores order aggregates together with their line items.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and shipping metadata. Line items are immutable.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns an ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	// Handlers that change an order read it this way.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
