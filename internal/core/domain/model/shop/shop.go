// Package shop provides the retail Shop an order is dispatched from.
package shop

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrShopIsNotConstructed = errors.New("Shop must be created via NewShop constructor")

// Shop is a retail outlet holding its own inventory, distinct from the central
// factory store. Its location becomes the pickup point of every assignment
// dispatched from it.
type Shop struct {
	id       kernel.UUID
	name     string
	address  string
	location kernel.GeoPoint
	guard    guard.ConstructorGuard
}

func NewShop(id kernel.UUID, name, address string, location kernel.GeoPoint) (*Shop, error) {
	s := &Shop{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		id.Validate(),
		location.Validate(),
	); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	s.id = id
	s.name = name
	s.address = strings.TrimSpace(address)
	s.location = location
	return s, nil
}

func (s *Shop) Validate() error {
	if s == nil {
		return ErrShopIsNotConstructed
	}
	return s.guard.Validate(ErrShopIsNotConstructed)
}

func (s *Shop) ID() kernel.UUID {
	return s.id
}

func (s *Shop) Name() string {
	return s.name
}

func (s *Shop) Address() string {
	return s.address
}

func (s *Shop) Location() kernel.GeoPoint {
	return s.location
}
