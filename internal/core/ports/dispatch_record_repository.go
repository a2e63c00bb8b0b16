package ports

import (
	"context"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/kernel"
)

// DispatchRecordRepository is append-only.
type DispatchRecordRepository interface {
	Add(ctx context.Context, record *dispatch.Record) error
	Get(ctx context.Context, id kernel.UUID) (*dispatch.Record, error)
	GetLatestForOrder(ctx context.Context, orderID kernel.UUID) (*dispatch.Record, error)
}
