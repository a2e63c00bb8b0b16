package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/notification"
)

// RelayResult counts what happened to one batch.
type RelayResult struct {
	Delivered int
	Retrying  int
	Failed    int
}

// RelayNotificationsCommandHandler delivers pending outbox messages.
//
// Each message is delivered in its own transaction so that one bad message
// does not hold back the batch. A failed delivery is rolled back and counted
// against the message in a separate transaction; once the message has used up
// its attempts it is parked as failed.
type RelayNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewRelayNotificationsCommandHandler(uowFactory NotificationUoWFactory) RelayNotificationsCommandHandler {
	return RelayNotificationsCommandHandler{uowFactory: uowFactory}
}

func (h RelayNotificationsCommandHandler) Handle(ctx context.Context, cmd RelayNotificationsCommand) (RelayResult, error) {
	if err := cmd.Validate(); err != nil {
		return RelayResult{}, err
	}

	pending, err := h.uowFactory.Create().OutboxRepository().GetPending(ctx, cmd.BatchSize())
	if err != nil {
		return RelayResult{}, fmt.Errorf("load pending notifications: %w", err)
	}

	var result RelayResult
	for _, message := range pending {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		deliverErr := h.deliver(ctx, message)
		if deliverErr == nil {
			result.Delivered++
			continue
		}

		if err = h.recordFailure(ctx, message, deliverErr, cmd.MaxAttempts()); err != nil {
			return result, err
		}
		if message.Status() == notification.Failed {
			result.Failed++
		} else {
			result.Retrying++
		}
	}

	return result, nil
}

func (h RelayNotificationsCommandHandler) deliver(ctx context.Context, message *notification.Message) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.NotificationSink().Deliver(ctx, message); err != nil {
		return err
	}

	delivered := *message
	if err := delivered.MarkDelivered(time.Now().UTC()); err != nil {
		return err
	}

	if err := uow.OutboxRepository().Update(ctx, &delivered); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	*message = delivered
	return nil
}

func (h RelayNotificationsCommandHandler) recordFailure(
	ctx context.Context,
	message *notification.Message,
	cause error,
	maxAttempts int,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin failure record: %w", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := message.RecordFailure(cause, maxAttempts); err != nil {
		return err
	}

	if err := uow.OutboxRepository().Update(ctx, message); err != nil {
		return fmt.Errorf("record notification failure: %w", err)
	}

	return uow.Commit(ctx)
}
