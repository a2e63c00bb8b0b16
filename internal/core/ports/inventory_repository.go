package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// StockMovement is a quantity of one variant taken from a shop for an
// assignment.
type StockMovement struct {
	ShopID    kernel.UUID
	VariantID kernel.UUID
	Quantity  int
}

// InventoryRepository is the per-shop, per-variant stock ledger. Stock never
// goes below zero.
type InventoryRepository interface {
	// Decrement removes quantity units atomically. A missing row or a stock
	// lower than quantity yields an InsufficientStockError and changes nothing.
	Decrement(ctx context.Context, shopID, variantID kernel.UUID, quantity int) error

	// Take is Decrement plus a stock movement recorded against the assignment.
	Take(ctx context.Context, assignmentID, shopID, variantID kernel.UUID, quantity int) error

	// Release returns to their shops the movements recorded against the
	// assignment that were not returned yet, and reports them. Units that
	// were never taken are never returned.
	Release(ctx context.Context, assignmentID kernel.UUID) ([]StockMovement, error)

	// Increment returns quantity units, creating the row if needed.
	Increment(ctx context.Context, shopID, variantID kernel.UUID, quantity int) error

	// Stock returns zero for an unknown (shop, variant) pair.
	Stock(ctx context.Context, shopID, variantID kernel.UUID) (int, error)
}
