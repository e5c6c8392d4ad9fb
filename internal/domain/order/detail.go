package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/order-ledger/internal/domain/customer"
	"github.com/xenking/order-ledger/internal/domain/product"
)

// DateLayout renders order dates as DD.MM.YYYY HH:MM.
const DateLayout = "02.01.2006 15:04"

// Row labels of the detail view.
const (
	LabelCustomer      = "Customer"
	LabelCustomerEmail = "Customer email"
	LabelCustomerPhone = "Customer phone"
	LabelOrderDate     = "Order date"
	LabelTotalAmount   = "Total amount"
	LabelProducts      = "Products"
	LabelDiscount      = "Discount information"
)

// ViewOptions controls locale-dependent formatting of the detail view.
type ViewOptions struct {
	// Currency is appended to every formatted amount.
	Currency string
	// Location is used to display CreatedAt. Defaults to UTC.
	Location *time.Location
}

// DetailView is a presentation-neutral rendering of an order. Text fields
// are not escaped; renderers are responsible for that.
type DetailView struct {
	OrderID  int64
	Title    string
	Rows     []Row
	Products []ProductLine
	Footer   Row

	Total    decimal.Decimal
	Discount Discount
}

// Row is a labeled value. Index is the row's position among labeled rows
// and drives alternating backgrounds.
type Row struct {
	Index int
	Label string
	Value string
}

// Striped reports whether the row takes the shaded background. Rows
// alternate starting with a shaded first row.
func (r Row) Striped() bool {
	return r.Index%2 == 0
}

// ProductLine is one line item of the products section.
type ProductLine struct {
	Name     string
	Quantity int
	Subtotal decimal.Decimal

	// Label is "<name> x <quantity>".
	Label string
	// Amount is the formatted subtotal.
	Amount string
}

// BuildDetailView assembles the detail view of o. Line subtotals use the
// current prices in products; the total and discount use o.TotalAmount as
// stored.
func BuildDetailView(
	o *Order,
	c *customer.Customer,
	products map[int64]product.Product,
	opts ViewOptions,
) (*DetailView, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	lines := make([]ProductLine, len(o.Items))
	for i, item := range o.Items {
		p, ok := products[item.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines[i] = ProductLine{
			Name:     p.Name,
			Quantity: item.Quantity,
			Subtotal: subtotal,
			Label:    fmt.Sprintf("%s x %d", p.Name, item.Quantity),
			Amount:   FormatAmount(subtotal, opts.Currency),
		}
	}

	var rows []Row
	addRow := func(label, value string) Row {
		r := Row{Index: len(rows), Label: label, Value: value}
		rows = append(rows, r)
		return r
	}
	addRow(LabelCustomer, c.Name)
	addRow(LabelCustomerEmail, c.Email)
	addRow(LabelCustomerPhone, c.Phone)
	addRow(LabelOrderDate, o.CreatedAt.In(loc).Format(DateLayout))
	addRow(LabelTotalAmount, FormatAmount(o.TotalAmount, opts.Currency))

	discount := o.Discount()
	footer := Row{Index: len(rows), Label: LabelDiscount, Value: discount.Message()}

	return &DetailView{
		OrderID:  o.ID,
		Title:    fmt.Sprintf("Order details #%d", o.ID),
		Rows:     rows,
		Products: lines,
		Footer:   footer,
		Total:    o.TotalAmount,
		Discount: discount,
	}, nil
}

// FormatAmount renders d with two decimals, comma-grouped thousands and the
// currency suffix, e.g. "12,345.50₴".
func FormatAmount(d decimal.Decimal, currency string) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	b.WriteString(currency)
	return b.String()
}
