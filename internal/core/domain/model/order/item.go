package order

import (
	"errors"
	"fmt"
	"math"

	"storefront/internal/pkg/errs"
)

// Item is one purchased line: a product snapshot with its unit price in minor
// currency units and the ordered quantity. Items are immutable once the order
// is placed.
type Item struct {
	id        string
	name      string
	unitPrice int64
	quantity  int
	imageURL  string
}

// NewItem validates and builds an order line.
//
// Rules:
//   - id and name must be non-empty
//   - unitPrice must not be negative
//   - quantity must be at least 1
//
// imageURL is optional.
func NewItem(id, name string, unitPrice int64, quantity int, imageURL string) (Item, error) {
	var problems []error
	if id == "" {
		problems = append(problems, errs.NewValueIsRequiredError("item id"))
	}
	if name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("item name"))
	}
	if unitPrice < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"item unit price", fmt.Errorf("%d is negative", unitPrice)))
	}
	if quantity < 1 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"item quantity", fmt.Errorf("%d is less than 1", quantity)))
	}
	if err := errors.Join(problems...); err != nil {
		return Item{}, err
	}

	return Item{id: id, name: name, unitPrice: unitPrice, quantity: quantity, imageURL: imageURL}, nil
}

func (i Item) ID() string       { return i.id }
func (i Item) Name() string     { return i.name }
func (i Item) UnitPrice() int64 { return i.unitPrice }
func (i Item) Quantity() int    { return i.quantity }
func (i Item) ImageURL() string { return i.imageURL }

// ErrItemsTotalOverflow means the item subtotals do not fit in an int64.
var ErrItemsTotalOverflow = errors.New("item subtotals overflow")

// Subtotal is unitPrice × quantity. It wraps on overflow; use SumItems where
// the result is checked against a total.
func (i Item) Subtotal() int64 {
	return i.unitPrice * int64(i.quantity)
}

// SumItems returns the sum of all line subtotals, or a ValueIsOutOfRange error
// wrapping ErrItemsTotalOverflow when a subtotal or the running sum exceeds math.MaxInt64.
func SumItems(items []Item) (int64, error) {
	var sum int64
	for _, item := range items {
		if item.quantity > 0 && item.unitPrice > math.MaxInt64/int64(item.quantity) {
			return 0, overflowError(item.id)
		}
		subtotal := item.Subtotal()
		if sum > math.MaxInt64-subtotal {
			return 0, overflowError(item.id)
		}
		sum += subtotal
	}
	return sum, nil
}

func overflowError(itemID string) error {
	return fmt.Errorf("%w: %w", ErrItemsTotalOverflow,
		errs.NewValueIsOutOfRangeError("items total", "subtotal of "+itemID, 0, int64(math.MaxInt64)))
}
