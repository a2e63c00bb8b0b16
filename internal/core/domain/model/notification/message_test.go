package notification_test

import (
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessage(t *testing.T) *notification.Message {
	t.Helper()

	m, err := notification.NewMessage(
		kernel.NewUUID(), notification.UserTypeDriver, kernel.NewUUID(),
		notification.Content{Title: "New delivery assignment", Description: "TRK-1", Href: "/driver/assignments/1"},
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return m
}

func TestNewMessage(t *testing.T) {
	m := newMessage(t)

	require.NoError(t, m.Validate())
	assert.Equal(t, notification.Pending, m.Status())
	assert.Zero(t, m.Attempts())
	assert.Nil(t, m.DeliveredAt())
	assert.Equal(t, "New delivery assignment", m.Content().Title)
}

func TestNewMessage_Invalid(t *testing.T) {
	_, err := notification.NewMessage(kernel.NewUUID(), "", kernel.UUID{}, notification.Content{}, time.Now())

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.Contains(t, err.Error(), "title")
}

func TestMessage_MarkDelivered(t *testing.T) {
	m := newMessage(t)
	at := time.Date(2024, 1, 1, 0, 0, 5, 0, time.UTC)

	require.NoError(t, m.MarkDelivered(at))

	assert.Equal(t, notification.Delivered, m.Status())
	assert.Equal(t, 1, m.Attempts())
	assert.Equal(t, at, *m.DeliveredAt())
	require.ErrorIs(t, m.MarkDelivered(at), errs.ErrIllegalTransition)
}

func TestMessage_RecordFailure(t *testing.T) {
	m := newMessage(t)
	cause := errors.New("sink unavailable")

	require.NoError(t, m.RecordFailure(cause, 3))
	require.NoError(t, m.RecordFailure(cause, 3))
	assert.Equal(t, notification.Pending, m.Status())
	assert.Equal(t, "sink unavailable", m.LastError())

	require.NoError(t, m.RecordFailure(cause, 3))
	assert.Equal(t, notification.Failed, m.Status())
	assert.Equal(t, 3, m.Attempts())

	require.ErrorIs(t, m.RecordFailure(cause, 3), errs.ErrIllegalTransition)
}
