package app

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/order-ledger/internal/domain/order"
	"github.com/xenking/order-ledger/internal/storage/postgres"
	"github.com/xenking/order-ledger/internal/view"
)

// Run connects to the database, wires the order service and executes the
// configured command. It is the single wiring point for orderctl.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config, out io.Writer) error {
	lg = lg.With(zap.String("run_id", uuid.NewString()))
	ctx = zctx.Base(ctx, lg)
	lg.Info("Initializing", zap.String("command", string(cfg.Command)))

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	svc, err := order.NewService(
		postgres.NewOrderRepository(pool),
		postgres.NewCustomerRepository(pool),
		postgres.NewProductRepository(pool),
		order.ViewOptions{Currency: cfg.Currency, Location: loc},
		m.TracerProvider(),
		m.MeterProvider(),
	)
	if err != nil {
		return errors.Wrap(err, "create order service")
	}

	return Execute(ctx, svc, cfg, out)
}

// Runner is the subset of order.Service used by Execute.
type Runner interface {
	RecalculateTotal(ctx context.Context, id int64) (*order.Order, error)
	CalculateDiscount(ctx context.Context, id int64) (*order.Order, order.Discount, error)
	DetailView(ctx context.Context, id int64) (*order.DetailView, error)
}

var _ Runner = (*order.Service)(nil)

// Execute runs cfg.Command for every configured order. Orders are processed
// with at most cfg.Concurrency in flight; output keeps the configured order.
func Execute(ctx context.Context, r Runner, cfg *Config, out io.Writer) error {
	ids, err := cfg.OrderIDs()
	if err != nil {
		return err
	}
	render, err := view.ForFormat(cfg.Format)
	if err != nil {
		return err
	}

	results := make([]bytes.Buffer, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Concurrency, 1))
	for i, id := range ids {
		g.Go(func() error {
			return runOne(gctx, r, cfg.Command, render, id, &results[i])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range results {
		if _, err := results[i].WriteTo(out); err != nil {
			return errors.Wrap(err, "write output")
		}
	}
	return nil
}

func runOne(ctx context.Context, r Runner, cmd Command, render view.Renderer, id int64, w io.Writer) error {
	lg := zctx.From(ctx).With(zap.Int64("order_id", id))

	switch cmd {
	case CommandRecalculate:
		o, err := r.RecalculateTotal(ctx, id)
		if err != nil {
			return errors.Wrapf(err, "recalculate order %d", id)
		}
		lg.Info("Recalculated", zap.Stringer("total", o.TotalAmount))
		_, err = fmt.Fprintf(w, "%d\t%s\n", o.ID, o.TotalAmount.StringFixed(2))
		return err
	case CommandDiscount:
		o, d, err := r.CalculateDiscount(ctx, id)
		if err != nil {
			return errors.Wrapf(err, "discount for order %d", id)
		}
		_, err = fmt.Fprintf(w, "%d\t%s\n", o.ID, d.Message())
		return err
	case CommandView:
		v, err := r.DetailView(ctx, id)
		if err != nil {
			return errors.Wrapf(err, "detail view of order %d", id)
		}
		return render(w, v)
	default:
		return errors.Errorf("unknown command %q", cmd)
	}
}
