package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-faster/errors"

	"github.com/xenking/order-ledger/internal/domain/order"
)

// Text writes v as a plain-text receipt.
func Text(w io.Writer, v *order.DetailView) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, v.Title)
	fmt.Fprintln(tw, strings.Repeat("=", len([]rune(v.Title))))
	for _, r := range v.Rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r.Label, r.Value)
	}
	fmt.Fprintf(tw, "%s:\t\n", order.LabelProducts)
	for _, p := range v.Products {
		fmt.Fprintf(tw, "  %s\t%s\n", p.Label, p.Amount)
	}
	fmt.Fprintf(tw, "%s:\t%s\n", v.Footer.Label, v.Footer.Value)

	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "flush receipt")
	}
	return nil
}
