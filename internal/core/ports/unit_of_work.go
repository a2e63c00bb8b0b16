package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin run inside the transaction; before Begin they use the plain connection.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	DriverRepository() DriverRepository
	ShopRepository() ShopRepository
	AssignmentRepository() AssignmentRepository
	InventoryRepository() InventoryRepository
	DispatchRecordRepository() DispatchRecordRepository
	SettingsRepository() SettingsRepository
	OutboxRepository() OutboxRepository
	NotificationSink() NotificationSink
}
