package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

type DriverRepository interface {
	Add(ctx context.Context, aggregate *driver.Driver) error
	Update(ctx context.Context, aggregate *driver.Driver) error
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetForDispatch resolves a driver by its own id and, failing that, by the
	// linked employee id. The row is locked until the surrounding transaction
	// ends so that concurrent dispatches to one driver are serialised.
	GetForDispatch(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
}
