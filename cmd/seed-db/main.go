package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/order-ledger/internal/domain/customer"
	"github.com/xenking/order-ledger/internal/domain/order"
	"github.com/xenking/order-ledger/internal/domain/product"
	"github.com/xenking/order-ledger/internal/storage/postgres"
)

type fixture struct {
	Customers []customerJSON `json:"customers"`
	Products  []productJSON  `json:"products"`
	Orders    []orderJSON    `json:"orders"`
}

type customerJSON struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type productJSON struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type orderJSON struct {
	CustomerID int64            `json:"customer_id"`
	Items      []order.LineItem `json:"items"`
}

func main() {
	var (
		databaseURL string
		fixtureFile string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&fixtureFile, "fixture", "db/seed/orders.json", "path to the JSON fixture, optionally gzipped (.gz)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, fixtureFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, fixtureFile string) error {
	fx, err := readFixture(fixtureFile)
	if err != nil {
		return errors.Wrap(err, "read fixture")
	}

	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("applying schema")

	if err := postgres.ApplySchema(ctx, pool); err != nil {
		return errors.Wrap(err, "apply schema")
	}

	customers := postgres.NewCustomerRepository(pool)
	products := postgres.NewProductRepository(pool)

	// Customers and products are independent of each other.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for _, c := range fx.Customers {
			if err := customers.Upsert(gctx, customer.Customer(c)); err != nil {
				return err
			}
		}
		slog.Info("seeded customers", slog.Int("count", len(fx.Customers)))
		return nil
	})
	g.Go(func() error {
		for _, p := range fx.Products {
			if err := products.Upsert(gctx, product.Product(p)); err != nil {
				return err
			}
		}
		slog.Info("seeded products", slog.Int("count", len(fx.Products)))
		return nil
	})
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "seed reference data")
	}

	return seedOrders(ctx, postgres.NewOrderRepository(pool), fx)
}

func seedOrders(ctx context.Context, repo order.Repository, fx *fixture) error {
	catalog := make([]product.Product, len(fx.Products))
	for i, p := range fx.Products {
		catalog[i] = product.Product(p)
	}
	prices := product.Index(catalog)

	for i, oj := range fx.Orders {
		o := &order.Order{CustomerID: oj.CustomerID, Items: oj.Items}
		if err := o.Recalculate(prices); err != nil {
			return errors.Wrapf(err, "order #%d", i)
		}
		if err := repo.Create(ctx, o); err != nil {
			return errors.Wrapf(err, "order #%d", i)
		}
		slog.Info("seeded order",
			slog.Int64("id", o.ID),
			slog.String("total", o.TotalAmount.StringFixed(2)),
		)
	}
	return nil
}

func readFixture(path string) (*fixture, error) {
	slog.Info("reading fixture", slog.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "gzip reader")
		}
		defer func() { _ = zr.Close() }()
		r = zr
	}

	var fx fixture
	if err := json.NewDecoder(r).Decode(&fx); err != nil {
		return nil, errors.Wrap(err, "decode JSON")
	}
	return &fx, nil
}
