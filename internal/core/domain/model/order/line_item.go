package order

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one product variant of an order and the quantity ordered.
type LineItem struct {
	variantID kernel.UUID
	quantity  int
	guard     guard.ConstructorGuard
}

func NewLineItem(variantID kernel.UUID, quantity int) (LineItem, error) {
	if err := variantID.Validate(); err != nil {
		return LineItem{}, err
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	return LineItem{
		variantID: variantID,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (l LineItem) Validate() error {
	return l.guard.Validate(ErrLineItemIsNotConstructed)
}

func (l LineItem) VariantID() kernel.UUID {
	return l.variantID
}

func (l LineItem) Quantity() int {
	return l.quantity
}
