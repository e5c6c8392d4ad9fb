package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/order-ledger/internal/domain/order"
)

const (
	insertOrderSQL = `INSERT INTO orders (customer_id, total_amount)
		VALUES ($1, $2)
		RETURNING id, created_at`

	getOrderSQL = `SELECT id, customer_id, total_amount, created_at
		FROM orders WHERE id = $1`

	getOrderItemsSQL = `SELECT product_id, quantity
		FROM order_product WHERE order_id = $1 ORDER BY product_id`

	updateOrderTotalSQL = `UPDATE orders SET total_amount = $2, updated_at = now()
		WHERE id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
// Line items live in the order_product pivot table.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts the order and its line items in one transaction and
// assigns the generated ID and creation time to o.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertOrderSQL, o.CustomerID, o.TotalAmount).
			Scan(&o.ID, &o.CreatedAt); err != nil {
			return errors.Wrap(err, "insert order")
		}

		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"order_product"},
			[]string{"order_id", "product_id", "quantity"},
			pgx.CopyFromSlice(len(o.Items), func(i int) ([]any, error) {
				return []any{o.ID, o.Items[i].ProductID, o.Items[i].Quantity}, nil
			}),
		)
		if err != nil {
			return errors.Wrap(err, "insert line items")
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "create order for customer %d", o.CustomerID)
	}
	return nil
}

// Load returns the order with its line items. It returns order.ErrNotFound
// when no order has the given id.
func (r *OrderRepository) Load(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	err := r.pool.QueryRow(ctx, getOrderSQL, id).
		Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get order %d", id)
	}

	rows, err := r.pool.Query(ctx, getOrderItemsSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get items of order %d", id)
	}
	items, err := pgx.CollectRows(rows, scanLineItem)
	if err != nil {
		return nil, errors.Wrapf(err, "scan items of order %d", id)
	}
	o.Items = items

	return &o, nil
}

// Save persists the order's total amount.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	tag, err := r.pool.Exec(ctx, updateOrderTotalSQL, o.ID, o.TotalAmount)
	if err != nil {
		return errors.Wrapf(err, "update order %d", o.ID)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func scanLineItem(row pgx.CollectableRow) (order.LineItem, error) {
	var (
		item order.LineItem
		qty  int32
	)
	err := row.Scan(&item.ProductID, &qty)
	item.Quantity = int(qty)
	return item, err
}
