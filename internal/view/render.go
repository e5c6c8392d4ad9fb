package view

import (
	"io"

	"github.com/go-faster/errors"

	"github.com/xenking/order-ledger/internal/domain/order"
)

// Format names a detail view output format.
type Format string

const (
	FormatHTML Format = "html"
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Renderer writes a detail view to w.
type Renderer func(w io.Writer, v *order.DetailView) error

// ForFormat returns the renderer for f.
func ForFormat(f Format) (Renderer, error) {
	switch f {
	case FormatHTML:
		return HTML, nil
	case FormatJSON:
		return JSON, nil
	case FormatText, "":
		return Text, nil
	default:
		return nil, errors.Errorf("unsupported format: %q", f)
	}
}
