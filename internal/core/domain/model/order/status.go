package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Pending ─> Confirmed ─> Processing ─> Shipped ─> InTransit ─> Delivered
//	   │           │            │            │           │
//	   │           │            │            │           └─> Shipped (dispatch cancelled)
//	   └───────────┴────────────┴────────────┴─> Cancelled
//
// Pending, Confirmed, Processing and Shipped may also jump straight to
// InTransit when the order is dispatched.
type Status string

const (
	Pending    Status = "pending"
	Confirmed  Status = "confirmed"
	Processing Status = "processing"
	Shipped    Status = "shipped"
	InTransit  Status = "in_transit"
	Delivered  Status = "delivered"
	Cancelled  Status = "cancelled"
)

func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Confirmed, InTransit, Cancelled},
		Confirmed:  {Processing, InTransit, Cancelled},
		Processing: {Shipped, InTransit, Cancelled},
		Shipped:    {InTransit, Cancelled},
		InTransit:  {Delivered, Shipped},
		Delivered:  {},
		Cancelled:  {},
	}
}

// ParseStatus converts a persisted or user-supplied status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, candidate := range transitions()[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next when the pair is legal and an IllegalTransitionError otherwise.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(next) {
		return "", errs.NewIllegalTransitionError("order", s.String(), next.String())
	}
	return next, nil
}
