// Package commands contains the operations that change dispatch state.
// Every handler validates its command, runs inside a unit of work and commits
// or rolls back as a whole.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	ShopRepoFactory interface {
		ShopRepository() ports.ShopRepository
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	DispatchRecordRepoFactory interface {
		DispatchRecordRepository() ports.DispatchRecordRepository
	}

	SettingsRepoFactory interface {
		SettingsRepository() ports.SettingsRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	NotificationSinkFactory interface {
		NotificationSink() ports.NotificationSink
	}

	// DispatchUoW spans every ledger touched by a dispatch.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   d, err := uow.DriverRepository().GetForDispatch(ctx, driverID)
	//   err = uow.AssignmentRepository().AddIfUnderCapacity(ctx, a, limit)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
		ShopRepoFactory
		AssignmentRepoFactory
		InventoryRepoFactory
		DispatchRecordRepoFactory
		SettingsRepoFactory
		OutboxRepoFactory
	}

	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// AssignmentUoW covers the assignment lifecycle: the assignment, its order,
	// its driver and the stock returned on cancellation.
	AssignmentUoW interface {
		TxManager
		AssignmentRepoFactory
		OrderRepoFactory
		DriverRepoFactory
		InventoryRepoFactory
	}

	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	NotificationUoW interface {
		TxManager
		OutboxRepoFactory
		NotificationSinkFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
