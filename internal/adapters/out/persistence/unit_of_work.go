// Package persistence wires the gorm repositories into a Unit of Work.
//
// A unit of work owns at most one transaction. Repositories taken from it after
// Begin share that transaction; repositories taken before Begin, or after Commit
// or Rollback, use the plain connection.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.AssignmentRepository().AddIfUnderCapacity(ctx, a, limit); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// With SQLite the pool holds one connection, so a repository taken from the
// plain connection while a transaction is open blocks until it ends. Always use
// the repositories of the unit of work inside a transaction.
package persistence

import (
	"context"

	"dispatch/internal/adapters/out/persistence/assignmentrepo"
	"dispatch/internal/adapters/out/persistence/dispatchrepo"
	"dispatch/internal/adapters/out/persistence/driverrepo"
	"dispatch/internal/adapters/out/persistence/inventoryrepo"
	"dispatch/internal/adapters/out/persistence/notificationrepo"
	"dispatch/internal/adapters/out/persistence/orderrepo"
	"dispatch/internal/adapters/out/persistence/settingsrepo"
	"dispatch/internal/adapters/out/persistence/shoprepo"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances over one gorm connection.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork implements ports.UnitOfWork with gorm transactions.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback returns gorm.ErrInvalidTransaction when nothing is open, which makes
// a deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewGormDriverRepository(uow.conn())
}

func (uow *GormUnitOfWork) ShopRepository() ports.ShopRepository {
	return shoprepo.NewGormShopRepository(uow.conn())
}

func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentrepo.NewGormAssignmentRepository(uow.conn())
}

func (uow *GormUnitOfWork) InventoryRepository() ports.InventoryRepository {
	return inventoryrepo.NewGormInventoryRepository(uow.conn())
}

func (uow *GormUnitOfWork) DispatchRecordRepository() ports.DispatchRecordRepository {
	return dispatchrepo.NewGormDispatchRecordRepository(uow.conn())
}

func (uow *GormUnitOfWork) SettingsRepository() ports.SettingsRepository {
	return settingsrepo.NewGormSettingsRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return notificationrepo.NewGormOutboxRepository(uow.conn())
}

func (uow *GormUnitOfWork) NotificationSink() ports.NotificationSink {
	return notificationrepo.NewGormNotificationSink(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
