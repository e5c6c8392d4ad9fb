package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/order-ledger/internal/domain/product"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// ProductNotFoundError indicates a line item references a product that
// could not be loaded.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// Order is a customer's purchase record. TotalAmount is derived from Items
// and is only consistent with them after Recalculate has run.
type Order struct {
	ID          int64
	CustomerID  int64
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	Items       []LineItem
}

// LineItem pairs a product with the ordered quantity. UnitPrice is filled
// from the current product price on every recalculation.
type LineItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`

	UnitPrice decimal.Decimal `json:"-"`
}

// Subtotal returns quantity × unit price.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// ProductIDs returns the product IDs of all line items in order.
func (o *Order) ProductIDs() []int64 {
	ids := make([]int64, len(o.Items))
	for i, item := range o.Items {
		ids[i] = item.ProductID
	}
	return ids
}

// Recalculate prices every line item from products and sets TotalAmount to
// the sum of line subtotals. Prices are always the current catalog prices.
// It returns *ProductNotFoundError and leaves the order untouched when a
// line item references a product absent from products.
func (o *Order) Recalculate(products map[int64]product.Product) error {
	for _, item := range o.Items {
		if _, ok := products[item.ProductID]; !ok {
			return &ProductNotFoundError{ProductID: item.ProductID}
		}
	}

	total := decimal.Zero
	for i := range o.Items {
		o.Items[i].UnitPrice = products[o.Items[i].ProductID].Price
		total = total.Add(o.Items[i].Subtotal())
	}
	o.TotalAmount = total
	return nil
}

// Discount computes the discount for the current TotalAmount.
// It does not recalculate the total.
func (o *Order) Discount() Discount {
	return CalculateDiscount(o.TotalAmount)
}

// Repository defines persistence operations for orders.
type Repository interface {
	// Create inserts the order with its line items and assigns ID and
	// CreatedAt.
	Create(ctx context.Context, order *Order) error
	// Load returns the order with its line items (product and quantity).
	Load(ctx context.Context, id int64) (*Order, error)
	// Save persists the order's TotalAmount.
	Save(ctx context.Context, order *Order) error
}
