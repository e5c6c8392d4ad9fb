package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item that can appear on an order.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// Reader defines read operations for the product catalog.
type Reader interface {
	// GetByIDs returns the products matching any of the given IDs. Unknown
	// IDs are silently absent from the result.
	GetByIDs(ctx context.Context, ids []int64) ([]Product, error)
}

// Index maps products by ID.
func Index(products []Product) map[int64]Product {
	m := make(map[int64]Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}
