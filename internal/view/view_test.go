package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/order-ledger/internal/domain/customer"
	"github.com/xenking/order-ledger/internal/domain/order"
	"github.com/xenking/order-ledger/internal/domain/product"
)

func testView(t *testing.T, customerName string) *order.DetailView {
	t.Helper()

	o := &order.Order{
		ID:          12,
		CustomerID:  3,
		TotalAmount: decimal.RequireFromString("750.00"),
		CreatedAt:   time.Date(2025, 3, 9, 14, 5, 0, 0, time.UTC),
		Items: []order.LineItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	}
	c := &customer.Customer{ID: 3, Name: customerName, Email: "o@example.com", Phone: "+380501234567"}
	products := product.Index([]product.Product{
		{ID: 1, Name: "Product A", Price: decimal.RequireFromString("300.00")},
		{ID: 2, Name: "Product B", Price: decimal.RequireFromString("150.00")},
	})

	v, err := order.BuildDetailView(o, c, products, order.ViewOptions{Currency: "₴"})
	require.NoError(t, err)
	return v
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, testView(t, "Olena")))
	out := buf.String()

	assert.Contains(t, out, "Order details #12")
	assert.Contains(t, out, "Product A x 2")
	assert.Contains(t, out, "600.00₴")
	assert.Contains(t, out, "Product B x 1")
	assert.Contains(t, out, "150.00₴")
	assert.Contains(t, out, "5% discount for orders under 10000. Discount amount: 37.50")

	// Sections keep their order.
	idx := func(s string) int { return strings.Index(out, s) }
	assert.Less(t, idx("Olena"), idx("o@example.com"))
	assert.Less(t, idx("o@example.com"), idx("09.03.2025 14:05"))
	assert.Less(t, idx("750.00₴"), idx("Product A x 2"))
	assert.Less(t, idx("Product B x 1"), idx("Discount information"))

	// Five header rows, products block, footer row: shaded, white, shaded,
	// white, shaded, (products), white.
	assert.Equal(t, 4, strings.Count(out, `class="bg-gray-50 px-4`))
	assert.Equal(t, 3, strings.Count(out, `class="bg-white px-4`))
}

func TestHTML_EscapesText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, testView(t, "<b>Olena</b>")))

	assert.NotContains(t, buf.String(), "<b>Olena</b>")
	assert.Contains(t, buf.String(), "&lt;b&gt;Olena&lt;/b&gt;")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, testView(t, "Olena")))

	var (
		title    string
		total    string
		message  string
		labels   []string
		subtotal []string
	)
	d := jx.DecodeBytes(buf.Bytes())
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "title":
			v, err := d.Str()
			title = v
			return err
		case "total":
			v, err := d.Str()
			total = v
			return err
		case "products":
			return d.Arr(func(d *jx.Decoder) error {
				return d.Obj(func(d *jx.Decoder, key string) error {
					switch key {
					case "label":
						v, err := d.Str()
						labels = append(labels, v)
						return err
					case "subtotal":
						v, err := d.Str()
						subtotal = append(subtotal, v)
						return err
					default:
						return d.Skip()
					}
				})
			})
		case "discount":
			return d.Obj(func(d *jx.Decoder, key string) error {
				if key != "message" {
					return d.Skip()
				}
				v, err := d.Str()
				message = v
				return err
			})
		default:
			return d.Skip()
		}
	})
	require.NoError(t, err)

	assert.Equal(t, "Order details #12", title)
	assert.Equal(t, "750.00", total)
	assert.Equal(t, []string{"Product A x 2", "Product B x 1"}, labels)
	assert.Equal(t, []string{"600.00", "150.00"}, subtotal)
	assert.Equal(t, "5% discount for orders under 10000. Discount amount: 37.50", message)
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, testView(t, "Olena")))
	out := buf.String()

	assert.Contains(t, out, "Order details #12\n")
	assert.Regexp(t, `Customer:\s+Olena`, out)
	assert.Regexp(t, `Product A x 2\s+600\.00₴`, out)
	assert.Regexp(t, `Discount information:\s+5% discount for orders under 10000\. Discount amount: 37\.50`, out)
}

func TestForFormat(t *testing.T) {
	for _, f := range []Format{FormatHTML, FormatJSON, FormatText, ""} {
		r, err := ForFormat(f)
		require.NoError(t, err, f)
		assert.NotNil(t, r)
	}

	_, err := ForFormat("pdf")
	require.Error(t, err)
}
