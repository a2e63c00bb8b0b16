package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// UpdateAssignmentStatusCommandHandler applies assignment lifecycle steps and
// their effects on the order, the driver and the shop stock:
//
//   - Delivered completes the order
//   - Cancelled returns the order to Shipped and the goods to the shop
//   - after either, the driver is idle when no active assignment remains
type UpdateAssignmentStatusCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

func NewUpdateAssignmentStatusCommandHandler(uowFactory AssignmentUoWFactory) UpdateAssignmentStatusCommandHandler {
	return UpdateAssignmentStatusCommandHandler{uowFactory: uowFactory}
}

func (h UpdateAssignmentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateAssignmentStatusCommand,
) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.NewTransactionError("begin assignment update", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	a, err := uow.AssignmentRepository().Get(ctx, cmd.AssignmentID())
	if err != nil {
		return nil, fmt.Errorf("load assignment: %w", err)
	}

	// The order is locked before the driver, in the same order as dispatch.
	var o *order.Order
	if cmd.Status().IsTerminal() {
		if o, err = uow.OrderRepository().GetForUpdate(ctx, a.OrderID()); err != nil {
			return nil, fmt.Errorf("load order: %w", err)
		}
	}

	d, err := uow.DriverRepository().GetForDispatch(ctx, a.DriverID())
	if err != nil {
		return nil, fmt.Errorf("load driver: %w", err)
	}

	if err = a.ChangeStatus(cmd.Status(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = uow.AssignmentRepository().Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update assignment: %w", err)
	}

	if a.Status().IsTerminal() {
		if err = h.settleOrder(ctx, uow, a, o); err != nil {
			return nil, err
		}

		active, countErr := uow.AssignmentRepository().CountActive(ctx, d.ID())
		if countErr != nil {
			return nil, fmt.Errorf("count active assignments: %w", countErr)
		}
		d.SyncAvailability(active)

		if err = uow.DriverRepository().Update(ctx, d); err != nil {
			return nil, fmt.Errorf("update driver: %w", err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewTransactionError("commit assignment update", err)
	}

	return a, nil
}

func (h UpdateAssignmentStatusCommandHandler) settleOrder(
	ctx context.Context,
	uow AssignmentUoW,
	a *assignment.Assignment,
	o *order.Order,
) error {
	switch a.Status() {
	case assignment.Delivered:
		if err := o.MarkDelivered(); err != nil {
			return err
		}
	case assignment.Cancelled:
		if err := o.ReturnToShop(); err != nil {
			return err
		}
		// Only stock recorded as taken for this assignment goes back.
		if _, err := uow.InventoryRepository().Release(ctx, a.ID()); err != nil {
			return fmt.Errorf("return stock: %w", err)
		}
	}

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}
