package ports

import (
	"context"

	"dispatch/internal/core/domain/model/notification"
)

// OutboxRepository holds notifications written inside business transactions.
type OutboxRepository interface {
	Add(ctx context.Context, message *notification.Message) error
	Update(ctx context.Context, message *notification.Message) error

	// GetPending returns up to limit pending messages, oldest first.
	GetPending(ctx context.Context, limit int) ([]*notification.Message, error)
}

// NotificationSink delivers a message to its recipient.
type NotificationSink interface {
	Deliver(ctx context.Context, message *notification.Message) error
}
