package order

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an Item that did not come
// from the NewItem constructor.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a single order line: a menu item name, a quantity, and the unit
// price captured at ordering time. Prices are held in the smallest
// currency unit as integers. Item is an immutable value object.
type Item struct {
	name      string
	quantity  int
	unitPrice int
	guard     guard.ConstructorGuard
}

// NewItem creates an order line after validating that the name is
// non-empty, the quantity is positive, and the unit price is not negative.
func NewItem(name string, quantity int, unitPrice int) (Item, error) {
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item unit price",
			fmt.Errorf("%d is negative", unitPrice))
	}

	return Item{
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// Name returns the menu item name.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price captured at ordering time.
func (i Item) UnitPrice() int {
	return i.unitPrice
}

// Subtotal returns quantity times unit price.
func (i Item) Subtotal() int {
	return i.quantity * i.unitPrice
}
