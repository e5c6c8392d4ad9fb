package order

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/order-ledger/internal/domain/customer"
	"github.com/xenking/order-ledger/internal/domain/product"
)

const instrumentationName = "github.com/xenking/order-ledger/internal/domain/order"

// Service loads orders together with their reference data and runs the
// order computations against them.
type Service struct {
	orders    Repository
	customers customer.Reader
	products  product.Reader
	opts      ViewOptions

	tracer        trace.Tracer
	recalculated  metric.Int64Counter
	viewsRendered metric.Int64Counter
}

// NewService creates an order Service with the required domain dependencies.
func NewService(
	orders Repository,
	customers customer.Reader,
	products product.Reader,
	opts ViewOptions,
	tp trace.TracerProvider,
	mp metric.MeterProvider,
) (*Service, error) {
	meter := mp.Meter(instrumentationName)

	recalculated, err := meter.Int64Counter("orders.recalculated",
		metric.WithDescription("Number of order total recalculations"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create recalculated counter")
	}
	viewsRendered, err := meter.Int64Counter("orders.detail_views",
		metric.WithDescription("Number of order detail views built"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create detail views counter")
	}

	return &Service{
		orders:        orders,
		customers:     customers,
		products:      products,
		opts:          opts,
		tracer:        tp.Tracer(instrumentationName),
		recalculated:  recalculated,
		viewsRendered: viewsRendered,
	}, nil
}

// RecalculateTotal reprices the order's line items from the current catalog,
// updates TotalAmount and saves the order.
//
// When the save fails, the returned order still carries the recalculated
// total alongside the error. The caller must reload before trusting it.
func (s *Service) RecalculateTotal(ctx context.Context, id int64) (_ *Order, rerr error) {
	ctx, span := s.tracer.Start(ctx, "order.RecalculateTotal",
		trace.WithAttributes(attribute.Int64("order.id", id)),
	)
	defer func() {
		if rerr != nil {
			span.RecordError(rerr)
			span.SetStatus(codes.Error, rerr.Error())
		}
		span.End()
	}()

	o, err := s.orders.Load(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "load order %d", id)
	}

	prices, err := s.loadProducts(ctx, o)
	if err != nil {
		return nil, err
	}
	if err := o.Recalculate(prices); err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return o, errors.Wrapf(err, "save order %d", id)
	}
	s.recalculated.Add(ctx, 1)

	zctx.From(ctx).Debug("Order total recalculated",
		zap.Int64("order_id", id),
		zap.Int("items", len(o.Items)),
		zap.Stringer("total", o.TotalAmount),
	)
	return o, nil
}

// CalculateDiscount loads the order and computes its discount from the
// stored total. It does not recalculate the total first.
func (s *Service) CalculateDiscount(ctx context.Context, id int64) (*Order, Discount, error) {
	ctx, span := s.tracer.Start(ctx, "order.CalculateDiscount",
		trace.WithAttributes(attribute.Int64("order.id", id)),
	)
	defer span.End()

	o, err := s.orders.Load(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, Discount{}, errors.Wrapf(err, "load order %d", id)
	}

	d := o.Discount()
	span.SetAttributes(attribute.String("discount.tier", string(d.Tier)))
	return o, d, nil
}

// DetailView loads the order with its customer and products and builds its
// detail view. Any missing reference fails the whole view.
func (s *Service) DetailView(ctx context.Context, id int64) (_ *DetailView, rerr error) {
	ctx, span := s.tracer.Start(ctx, "order.DetailView",
		trace.WithAttributes(attribute.Int64("order.id", id)),
	)
	defer func() {
		if rerr != nil {
			span.RecordError(rerr)
			span.SetStatus(codes.Error, rerr.Error())
		}
		span.End()
	}()

	o, err := s.orders.Load(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "load order %d", id)
	}

	c, err := s.customers.GetByID(ctx, o.CustomerID)
	if err != nil {
		return nil, errors.Wrapf(err, "load customer %d", o.CustomerID)
	}

	products, err := s.loadProducts(ctx, o)
	if err != nil {
		return nil, err
	}

	v, err := BuildDetailView(o, c, products, s.opts)
	if err != nil {
		return nil, err
	}
	s.viewsRendered.Add(ctx, 1)
	return v, nil
}

// loadProducts fetches every product referenced by o in one batch.
func (s *Service) loadProducts(ctx context.Context, o *Order) (map[int64]product.Product, error) {
	if len(o.Items) == 0 {
		return map[int64]product.Product{}, nil
	}

	fetched, err := s.products.GetByIDs(ctx, o.ProductIDs())
	if err != nil {
		return nil, errors.Wrap(err, "get products")
	}

	products := product.Index(fetched)
	for _, item := range o.Items {
		if _, ok := products[item.ProductID]; !ok {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}
	}
	return products, nil
}
