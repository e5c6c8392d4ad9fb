package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/order-ledger/internal/domain/customer"
)

const (
	getCustomerByIDSQL = `SELECT id, name, email, phone FROM customers WHERE id = $1`

	upsertCustomerSQL = `INSERT INTO customers (id, name, email, phone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone`
)

var _ customer.Reader = (*CustomerRepository)(nil)

// CustomerRepository provides customer lookups backed by PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a CustomerRepository that uses the given pool.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// GetByID returns customer.ErrNotFound when no customer has the given id.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	var c customer.Customer
	err := r.pool.QueryRow(ctx, getCustomerByIDSQL, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get customer %d", id)
	}
	return &c, nil
}

// Upsert inserts c under its ID or overwrites the existing row.
func (r *CustomerRepository) Upsert(ctx context.Context, c customer.Customer) error {
	if _, err := r.pool.Exec(ctx, upsertCustomerSQL, c.ID, c.Name, c.Email, c.Phone); err != nil {
		return errors.Wrapf(err, "upsert customer %d", c.ID)
	}
	return nil
}
