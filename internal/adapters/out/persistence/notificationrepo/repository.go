package notificationrepo

import (
	"context"

	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, message *notification.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormOutboxRepository) Update(ctx context.Context, message *notification.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	result := r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":       dto.Status,
			"attempts":     dto.Attempts,
			"last_error":   dto.LastError,
			"delivered_at": dto.DeliveredAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", message.ID().String())
	}

	return nil
}

func (r *GormOutboxRepository) GetPending(ctx context.Context, limit int) ([]*notification.Message, error) {
	var dtos []OutboxDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", string(notification.Pending)).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*notification.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		messages = append(messages, m)
	}

	return messages, nil
}

// GormNotificationSink writes relayed messages into the notifications table.
// Delivering the same message twice leaves a single row.
type GormNotificationSink struct {
	db *gorm.DB
}

func NewGormNotificationSink(db *gorm.DB) *GormNotificationSink {
	return &GormNotificationSink{db: db}
}

func (s *GormNotificationSink) Deliver(ctx context.Context, message *notification.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	content := message.Content()
	dto := NotificationDTO{
		ID:          message.ID().Bytes(),
		UserType:    message.UserType(),
		UserID:      message.UserID().Bytes(),
		Title:       content.Title,
		Description: content.Description,
		Href:        content.Href,
		CreatedAt:   message.CreatedAt(),
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}
