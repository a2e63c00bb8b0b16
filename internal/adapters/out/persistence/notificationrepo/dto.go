// Package notificationrepo persists the notification outbox and the
// notifications table that receives relayed messages.
package notificationrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// OutboxDTO is a row of the notification_outbox table.
type OutboxDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserType    string    `gorm:"size:32;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;not null"`
	Title       string    `gorm:"size:255;not null"`
	Description string
	Href        string
	Status      string `gorm:"size:16;not null;index:idx_notification_outbox_status_created"`
	Attempts    int    `gorm:"not null;default:0"`
	LastError   string
	CreatedAt   time.Time `gorm:"not null;index:idx_notification_outbox_status_created"`
	DeliveredAt *time.Time
}

func (OutboxDTO) TableName() string {
	return "notification_outbox"
}

// NotificationDTO is a row of the notifications table read by the user-facing
// application. A relayed message keeps its outbox id.
type NotificationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserType    string    `gorm:"size:32;not null;index:idx_notifications_user"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user"`
	Title       string    `gorm:"size:255;not null"`
	Description string
	Href        string
	IsRead      bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(m *notification.Message) OutboxDTO {
	content := m.Content()
	return OutboxDTO{
		ID:          m.ID().Bytes(),
		UserType:    m.UserType(),
		UserID:      m.UserID().Bytes(),
		Title:       content.Title,
		Description: content.Description,
		Href:        content.Href,
		Status:      string(m.Status()),
		Attempts:    m.Attempts(),
		LastError:   m.LastError(),
		CreatedAt:   m.CreatedAt(),
		DeliveredAt: m.DeliveredAt(),
	}
}

func toDomain(dto OutboxDTO) (*notification.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreMessage(
		id,
		dto.UserType,
		userID,
		notification.Content{Title: dto.Title, Description: dto.Description, Href: dto.Href},
		notification.Status(dto.Status),
		dto.Attempts,
		dto.LastError,
		dto.CreatedAt,
		dto.DeliveredAt,
	)
}
