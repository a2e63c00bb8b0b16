package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// AssignDispatchCommandHandler is the dispatch orchestrator. It validates that
// the order, driver and shop exist, enforces the driver's capacity, and then
// writes the assignment, the dispatch record, the order and driver changes,
// the stock decrement and the driver notification in one transaction.
//
// Example:
//
//	handler := NewAssignDispatchCommandHandler(uowFactory, InventoryStrict, logger)
//	record, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // order, driver or shop is missing
//	case errors.Is(err, errs.ErrCapacityExceeded):
//	    // the driver is full
//	case errors.Is(err, errs.ErrInsufficientStock):
//	    // the shop cannot supply the order
//	}
type AssignDispatchCommandHandler struct {
	uowFactory DispatchUoWFactory
	policy     InventoryPolicy
	logger     *slog.Logger
}

func NewAssignDispatchCommandHandler(
	uowFactory DispatchUoWFactory,
	policy InventoryPolicy,
	logger *slog.Logger,
) AssignDispatchCommandHandler {
	if policy == "" {
		policy = InventoryStrict
	}
	return AssignDispatchCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		logger:     logger.With("component", "assign_dispatch"),
	}
}

// Handle returns the new dispatch record. Any error leaves every ledger untouched.
func (h AssignDispatchCommandHandler) Handle(ctx context.Context, cmd AssignDispatchCommand) (*dispatch.Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.NewTransactionError("begin dispatch", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}

	d, err := uow.DriverRepository().GetForDispatch(ctx, cmd.DriverID())
	if err != nil {
		return nil, fmt.Errorf("load driver: %w", err)
	}

	s, err := uow.ShopRepository().Get(ctx, cmd.ShopID())
	if err != nil {
		return nil, fmt.Errorf("load shop: %w", err)
	}

	settings, err := uow.SettingsRepository().GetByPrefix(ctx, services.CapacitySettingPrefix)
	if err != nil {
		return nil, fmt.Errorf("load capacity settings: %w", err)
	}
	limit := services.MaxActiveOrders(d.VehicleType(), settings)

	active, err := uow.AssignmentRepository().CountActive(ctx, d.ID())
	if err != nil {
		return nil, fmt.Errorf("count active assignments: %w", err)
	}

	result, err := services.NewDispatcher().Dispatch(services.DispatchRequest{
		Order:             o,
		Driver:            d,
		Shop:              s,
		ActiveAssignments: active,
		MaxActiveOrders:   limit,
		TrackingNumber:    cmd.TrackingNumber(),
		Details:           cmd.Details(),
		RequestedBy:       cmd.RequestedBy(),
		At:                time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err = uow.AssignmentRepository().AddIfUnderCapacity(ctx, result.Assignment, limit); err != nil {
		return nil, fmt.Errorf("add assignment: %w", err)
	}

	if err = uow.DispatchRecordRepository().Add(ctx, result.Record); err != nil {
		return nil, fmt.Errorf("add dispatch record: %w", err)
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	if err = uow.DriverRepository().Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update driver: %w", err)
	}

	if h.policy == InventoryStrict {
		for _, line := range o.Lines() {
			err = uow.InventoryRepository().Take(ctx, result.Assignment.ID(), s.ID(), line.VariantID(), line.Quantity())
			if err != nil {
				return nil, fmt.Errorf("take stock: %w", err)
			}
		}
	}

	if result.Notification != nil {
		if err = uow.OutboxRepository().Add(ctx, result.Notification); err != nil {
			return nil, fmt.Errorf("enqueue notification: %w", err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewTransactionError("commit dispatch", err)
	}

	if h.policy == InventoryBestEffort {
		h.takeStockBestEffort(ctx, result.Assignment.ID(), s.ID(), o)
	}

	return result.Record, nil
}

// takeStockBestEffort takes each line on its own; a shortfall skips the line
// and is logged. Only the lines taken are recorded, so a later cancellation
// returns exactly those.
func (h AssignDispatchCommandHandler) takeStockBestEffort(
	ctx context.Context,
	assignmentID, shopID kernel.UUID,
	o *order.Order,
) {
	logger := h.logger.With("order_id", o.ID().String(), "shop_id", shopID.String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		logger.ErrorContext(ctx, "stock not taken", "error", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	for _, line := range o.Lines() {
		err := uow.InventoryRepository().Take(ctx, assignmentID, shopID, line.VariantID(), line.Quantity())
		if err != nil {
			logger.WarnContext(ctx, "stock not taken",
				"variant_id", line.VariantID().String(),
				"quantity", line.Quantity(),
				"error", err,
			)
		}
	}

	if err := uow.Commit(ctx); err != nil {
		logger.ErrorContext(ctx, "stock not taken", "error", err)
	}
}
