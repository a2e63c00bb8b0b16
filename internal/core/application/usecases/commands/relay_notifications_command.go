package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRelayNotificationsCommandIsNotConstructed = errors.New(
	"RelayNotificationsCommand must be created via NewRelayNotificationsCommand constructor",
)

// RelayNotificationsCommand moves one batch of pending outbox messages to the
// notification sink.
type RelayNotificationsCommand struct {
	batchSize   int
	maxAttempts int

	guard guard.ConstructorGuard
}

func NewRelayNotificationsCommand(batchSize, maxAttempts int) (RelayNotificationsCommand, error) {
	if batchSize <= 0 {
		return RelayNotificationsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batchSize", fmt.Errorf("%d is not greater than 0", batchSize))
	}
	if maxAttempts <= 0 {
		return RelayNotificationsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"maxAttempts", fmt.Errorf("%d is not greater than 0", maxAttempts))
	}

	return RelayNotificationsCommand{
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RelayNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrRelayNotificationsCommandIsNotConstructed)
}

func (c RelayNotificationsCommand) BatchSize() int {
	return c.batchSize
}

func (c RelayNotificationsCommand) MaxAttempts() int {
	return c.maxAttempts
}
