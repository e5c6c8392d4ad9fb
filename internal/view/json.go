package view

import (
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/order-ledger/internal/domain/order"
)

// JSON writes v as a JSON document. Amounts are encoded as strings with
// two decimals to keep them exact.
func JSON(w io.Writer, v *order.DetailView) error {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	EncodeDetailView(e, v)

	if _, err := w.Write(append(e.Bytes(), '\n')); err != nil {
		return errors.Wrap(err, "write detail view")
	}
	return nil
}

// EncodeDetailView appends v to e as a JSON object.
func EncodeDetailView(e *jx.Encoder, v *order.DetailView) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("order_id", func(e *jx.Encoder) { e.Int64(v.OrderID) })
		e.Field("title", func(e *jx.Encoder) { e.Str(v.Title) })
		e.Field("rows", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, r := range v.Rows {
					encodeRow(e, r)
				}
			})
		})
		e.Field("products", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, p := range v.Products {
					e.Obj(func(e *jx.Encoder) {
						e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(p.Quantity) })
						e.Field("label", func(e *jx.Encoder) { e.Str(p.Label) })
						e.Field("subtotal", func(e *jx.Encoder) { e.Str(p.Subtotal.StringFixed(2)) })
					})
				}
			})
		})
		e.Field("total", func(e *jx.Encoder) { e.Str(v.Total.StringFixed(2)) })
		e.Field("discount", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("tier", func(e *jx.Encoder) { e.Str(string(v.Discount.Tier)) })
				e.Field("rate", func(e *jx.Encoder) { e.Str(v.Discount.Rate.String()) })
				e.Field("amount", func(e *jx.Encoder) { e.Str(v.Discount.Amount.StringFixed(2)) })
				e.Field("message", func(e *jx.Encoder) { e.Str(v.Footer.Value) })
			})
		})
	})
}

func encodeRow(e *jx.Encoder, r order.Row) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("label", func(e *jx.Encoder) { e.Str(r.Label) })
		e.Field("value", func(e *jx.Encoder) { e.Str(r.Value) })
		e.Field("striped", func(e *jx.Encoder) { e.Bool(r.Striped()) })
	})
}
