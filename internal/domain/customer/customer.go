package customer

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested customer does not exist.
var ErrNotFound = errors.New("customer not found")

// Customer is the buyer an order belongs to. Its lifecycle is managed
// outside of this module; orders only read it.
type Customer struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

// Reader provides read-only customer lookups.
type Reader interface {
	GetByID(ctx context.Context, id int64) (*Customer, error)
}
