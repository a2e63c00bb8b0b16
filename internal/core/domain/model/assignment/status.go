package assignment

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

type Status string

const (
	Assigned  Status = "assigned"
	Accepted  Status = "accepted"
	PickedUp  Status = "picked_up"
	InTransit Status = "in_transit"
	Delivered Status = "delivered"
	Cancelled Status = "cancelled"
)

func transitions() map[Status][]Status {
	return map[Status][]Status{
		Assigned:  {Accepted, Cancelled},
		Accepted:  {PickedUp, Cancelled},
		PickedUp:  {InTransit, Cancelled},
		InTransit: {Delivered, Cancelled},
		Delivered: {},
		Cancelled: {},
	}
}

// TerminalStatuses are excluded from a driver's active assignment count.
func TerminalStatuses() []Status {
	return []Status{Delivered, Cancelled}
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid assignment status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

func (s Status) IsActive() bool {
	return !s.IsTerminal()
}

func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return "", err
	}
	for _, candidate := range transitions()[s] {
		if candidate == next {
			return next, nil
		}
	}
	return "", errs.NewIllegalTransitionError("assignment", s.String(), next.String())
}
