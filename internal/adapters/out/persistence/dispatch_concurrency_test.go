package persistence_test

import (
	"errors"
	"log/slog"
	"sync"

	"dispatch/cmd"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/shop"
	"dispatch/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
)

func (s *PersistenceTestSuite) dispatchHandler() commands.AssignDispatchCommandHandler {
	root := cmd.NewCompositionRoot(
		cmd.Config{InventoryPolicy: string(commands.InventoryStrict)},
		s.db, prometheus.NewRegistry(), slog.New(slog.DiscardHandler),
	)
	return root.CreateAssignDispatchCommandHandler()
}

func (s *PersistenceTestSuite) newStockedShop(o *order.Order, stock int) *shop.Shop {
	sh, err := shop.NewShop(kernel.NewUUID(), "Banani Outlet", "Road 11", kernel.UnknownGeoPoint())
	s.Require().NoError(err)
	s.Require().NoError(s.factory.Create().ShopRepository().Add(s.ctx, sh))
	for _, line := range o.Lines() {
		s.Require().NoError(s.factory.Create().InventoryRepository().Increment(s.ctx, sh.ID(), line.VariantID(), stock))
	}
	return sh
}

// runDispatches runs every command at once and returns the errors in command order.
func (s *PersistenceTestSuite) runDispatches(cmds []commands.AssignDispatchCommand) []error {
	handler := s.dispatchHandler()
	results := make([]error, len(cmds))

	var wg sync.WaitGroup
	for i, c := range cmds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = handler.Handle(s.ctx, c)
		}()
	}
	wg.Wait()
	return results
}

func (s *PersistenceTestSuite) TestDispatch_ConcurrentRequestsForOneDriverRespectCapacity() {
	d := s.newDriver(driver.Motorbike, nil)
	s.Require().NoError(s.factory.Create().AssignmentRepository().AddIfUnderCapacity(s.ctx, s.newAssignment(d.ID()), 3))
	s.Require().NoError(s.factory.Create().AssignmentRepository().AddIfUnderCapacity(s.ctx, s.newAssignment(d.ID()), 3))

	var cmds []commands.AssignDispatchCommand
	for range 6 {
		o := s.newOrder(2)
		sh := s.newStockedShop(o, 10)
		c, err := commands.NewAssignDispatchCommand(
			o.ID().String(), d.ID().String(), sh.ID().String(), "TRK-"+o.ID().String()[:8], dispatch.Details{}, "admin")
		s.Require().NoError(err)
		cmds = append(cmds, c)
	}

	succeeded, rejected := 0, 0
	for _, err := range s.runDispatches(cmds) {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrCapacityExceeded):
			rejected++
		default:
			s.Failf("unexpected dispatch error", "%v", err)
		}
	}

	s.Equal(1, succeeded)
	s.Equal(5, rejected)
	active, err := s.factory.Create().AssignmentRepository().CountActive(s.ctx, d.ID())
	s.Require().NoError(err)
	s.Equal(3, active)
}

func (s *PersistenceTestSuite) TestDispatch_ConcurrentRequestsForOneOrderDispatchItOnce() {
	o := s.newOrder(20)
	sh := s.newStockedShop(o, 50)

	var cmds []commands.AssignDispatchCommand
	for range 4 {
		d := s.newDriver(driver.Van, nil)
		c, err := commands.NewAssignDispatchCommand(
			o.ID().String(), d.ID().String(), sh.ID().String(), "TRK-3003", dispatch.Details{}, "admin")
		s.Require().NoError(err)
		cmds = append(cmds, c)
	}

	succeeded, rejected := 0, 0
	for _, err := range s.runDispatches(cmds) {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrIllegalTransition):
			rejected++
		default:
			s.Failf("unexpected dispatch error", "%v", err)
		}
	}

	s.Equal(1, succeeded)
	s.Equal(3, rejected)

	stock, err := s.factory.Create().InventoryRepository().Stock(s.ctx, sh.ID(), o.Lines()[0].VariantID())
	s.Require().NoError(err)
	s.Equal(30, stock, "stock is taken once")

	var assignments, records int64
	s.Require().NoError(s.db.Table("driver_assignments").Where("order_id = ?", o.ID().Bytes()).Count(&assignments).Error)
	s.Require().NoError(s.db.Table("dispatch_records").Where("order_id = ?", o.ID().Bytes()).Count(&records).Error)
	s.Equal(int64(1), assignments)
	s.Equal(int64(1), records)
}
