// Package notification models the transactional outbox of in-app notifications.
//
// A Message is written in the same transaction as the change it announces and
// later relayed to the notification sink. Relay failures are counted; a message
// that keeps failing is parked as Failed instead of being retried forever.
package notification

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

type Status string

const (
	Pending   Status = "pending"
	Delivered Status = "delivered"
	Failed    Status = "failed"
)

// UserTypeDriver addresses the user account linked to a driver.
const UserTypeDriver = "driver"

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage constructor")

// Content is what the recipient sees.
type Content struct {
	Title       string
	Description string
	Href        string
}

type Message struct {
	id          kernel.UUID
	userType    string
	userID      kernel.UUID
	content     Content
	status      Status
	attempts    int
	lastError   string
	createdAt   time.Time
	deliveredAt *time.Time
	guard       guard.ConstructorGuard
}

// NewMessage creates a Pending message.
func NewMessage(id kernel.UUID, userType string, userID kernel.UUID, content Content, createdAt time.Time) (*Message, error) {
	return RestoreMessage(id, userType, userID, content, Pending, 0, "", createdAt, nil)
}

func RestoreMessage(
	id kernel.UUID,
	userType string,
	userID kernel.UUID,
	content Content,
	status Status,
	attempts int,
	lastError string,
	createdAt time.Time,
	deliveredAt *time.Time,
) (*Message, error) {
	userType = strings.TrimSpace(userType)
	content.Title = strings.TrimSpace(content.Title)

	var fieldErrs []error
	fieldErrs = append(fieldErrs, id.Validate(), userID.Validate())
	if userType == "" {
		fieldErrs = append(fieldErrs, errs.NewValueIsRequiredError("userType"))
	}
	if content.Title == "" {
		fieldErrs = append(fieldErrs, errs.NewValueIsRequiredError("title"))
	}
	switch status {
	case Pending, Delivered, Failed:
	default:
		fieldErrs = append(fieldErrs, errs.NewValueIsInvalidError("status"))
	}
	if attempts < 0 {
		fieldErrs = append(fieldErrs, errs.NewValueIsInvalidError("attempts"))
	}
	if err := errors.Join(fieldErrs...); err != nil {
		return nil, err
	}

	return &Message{
		id:          id,
		userType:    userType,
		userID:      userID,
		content:     content,
		status:      status,
		attempts:    attempts,
		lastError:   lastError,
		createdAt:   createdAt,
		deliveredAt: deliveredAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (m *Message) Validate() error {
	if m == nil {
		return ErrMessageIsNotConstructed
	}
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

func (m *Message) ID() kernel.UUID {
	return m.id
}

func (m *Message) UserType() string {
	return m.userType
}

func (m *Message) UserID() kernel.UUID {
	return m.userID
}

func (m *Message) Content() Content {
	return m.content
}

func (m *Message) Status() Status {
	return m.status
}

func (m *Message) Attempts() int {
	return m.attempts
}

func (m *Message) LastError() string {
	return m.lastError
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) DeliveredAt() *time.Time {
	return m.deliveredAt
}

// MarkDelivered records a successful relay.
func (m *Message) MarkDelivered(at time.Time) error {
	if m.status != Pending {
		return errs.NewIllegalTransitionError("notification", string(m.status), string(Delivered))
	}
	m.attempts++
	m.status = Delivered
	m.lastError = ""
	m.deliveredAt = &at
	return nil
}

// RecordFailure counts a failed relay attempt. Once maxAttempts is reached the
// message is parked as Failed.
func (m *Message) RecordFailure(cause error, maxAttempts int) error {
	if m.status != Pending {
		return errs.NewIllegalTransitionError("notification", string(m.status), string(Failed))
	}
	m.attempts++
	if cause != nil {
		m.lastError = cause.Error()
	}
	if maxAttempts > 0 && m.attempts >= maxAttempts {
		m.status = Failed
	}
	return nil
}
