package commands_test

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/shop"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetForDispatch(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

type MockShopRepository struct{ mock.Mock }

func (m *MockShopRepository) Add(ctx context.Context, s *shop.Shop) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShopRepository) Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Shop), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) CountActive(ctx context.Context, driverID kernel.UUID) (int, error) {
	args := m.Called(ctx, driverID)
	return args.Int(0), args.Error(1)
}

func (m *MockAssignmentRepository) AddIfUnderCapacity(ctx context.Context, a *assignment.Assignment, limit int) error {
	return m.Called(ctx, a, limit).Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Decrement(ctx context.Context, shopID, variantID kernel.UUID, quantity int) error {
	return m.Called(ctx, shopID, variantID, quantity).Error(0)
}

func (m *MockInventoryRepository) Take(ctx context.Context, assignmentID, shopID, variantID kernel.UUID, quantity int) error {
	return m.Called(ctx, assignmentID, shopID, variantID, quantity).Error(0)
}

func (m *MockInventoryRepository) Release(ctx context.Context, assignmentID kernel.UUID) ([]ports.StockMovement, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.StockMovement), args.Error(1)
}

func (m *MockInventoryRepository) Increment(ctx context.Context, shopID, variantID kernel.UUID, quantity int) error {
	return m.Called(ctx, shopID, variantID, quantity).Error(0)
}

func (m *MockInventoryRepository) Stock(ctx context.Context, shopID, variantID kernel.UUID) (int, error) {
	args := m.Called(ctx, shopID, variantID)
	return args.Int(0), args.Error(1)
}

type MockDispatchRecordRepository struct{ mock.Mock }

func (m *MockDispatchRecordRepository) Add(ctx context.Context, r *dispatch.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockDispatchRecordRepository) Get(ctx context.Context, id kernel.UUID) (*dispatch.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dispatch.Record), args.Error(1)
}

func (m *MockDispatchRecordRepository) GetLatestForOrder(ctx context.Context, orderID kernel.UUID) (*dispatch.Record, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dispatch.Record), args.Error(1)
}

type MockSettingsRepository struct{ mock.Mock }

func (m *MockSettingsRepository) GetByPrefix(ctx context.Context, prefix string) (map[string]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingsRepository) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, msg *notification.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockOutboxRepository) Update(ctx context.Context, msg *notification.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]*notification.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Message), args.Error(1)
}

type MockNotificationSink struct{ mock.Mock }

func (m *MockNotificationSink) Deliver(ctx context.Context, msg *notification.Message) error {
	return m.Called(ctx, msg).Error(0)
}

// MockUoW satisfies every unit of work interface of the package. Repository
// accessors return the repositories assigned to its fields.
type MockUoW struct {
	mock.Mock

	Orders      *MockOrderRepository
	Drivers     *MockDriverRepository
	Shops       *MockShopRepository
	Assignments *MockAssignmentRepository
	Inventory   *MockInventoryRepository
	Records     *MockDispatchRecordRepository
	Settings    *MockSettingsRepository
	Outbox      *MockOutboxRepository
	Sink        *MockNotificationSink
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		Orders:      new(MockOrderRepository),
		Drivers:     new(MockDriverRepository),
		Shops:       new(MockShopRepository),
		Assignments: new(MockAssignmentRepository),
		Inventory:   new(MockInventoryRepository),
		Records:     new(MockDispatchRecordRepository),
		Settings:    new(MockSettingsRepository),
		Outbox:      new(MockOutboxRepository),
		Sink:        new(MockNotificationSink),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository { return m.Orders }
func (m *MockUoW) DriverRepository() ports.DriverRepository { return m.Drivers }
func (m *MockUoW) ShopRepository() ports.ShopRepository { return m.Shops }
func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository { return m.Assignments }
func (m *MockUoW) InventoryRepository() ports.InventoryRepository { return m.Inventory }
func (m *MockUoW) DispatchRecordRepository() ports.DispatchRecordRepository { return m.Records }
func (m *MockUoW) SettingsRepository() ports.SettingsRepository { return m.Settings }
func (m *MockUoW) OutboxRepository() ports.OutboxRepository { return m.Outbox }
func (m *MockUoW) NotificationSink() ports.NotificationSink { return m.Sink }

func (m *MockUoW) AssertAllExpectations(t mock.TestingT) {
	m.AssertExpectations(t)
	m.Orders.AssertExpectations(t)
	m.Drivers.AssertExpectations(t)
	m.Shops.AssertExpectations(t)
	m.Assignments.AssertExpectations(t)
	m.Inventory.AssertExpectations(t)
	m.Records.AssertExpectations(t)
	m.Settings.AssertExpectations(t)
	m.Outbox.AssertExpectations(t)
	m.Sink.AssertExpectations(t)
}

// uowSequence hands out the given units of work in order.
type uowSequence struct {
	uows []*MockUoW
	next int
}

func newUoWSequence(uows ...*MockUoW) *uowSequence {
	return &uowSequence{uows: uows}
}

func (s *uowSequence) pop() *MockUoW {
	u := s.uows[s.next]
	s.next++
	return u
}

type dispatchFactory struct{ *uowSequence }

func (f dispatchFactory) Create() commands.DispatchUoW { return f.pop() }

type assignmentFactory struct{ *uowSequence }

func (f assignmentFactory) Create() commands.AssignmentUoW { return f.pop() }

type orderFactory struct{ *uowSequence }

func (f orderFactory) Create() commands.OrderUoW { return f.pop() }

type notificationFactory struct{ *uowSequence }

func (f notificationFactory) Create() commands.NotificationUoW { return f.pop() }
