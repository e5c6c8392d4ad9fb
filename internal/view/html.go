// Package view renders order detail views for presentation layers.
package view

import (
	"html/template"
	"io"

	"github.com/go-faster/errors"

	"github.com/xenking/order-ledger/internal/domain/order"
)

const detailHTML = `<div class="bg-white shadow overflow-hidden sm:rounded-lg">
<div class="px-4 py-5 sm:px-6">
<h3 class="text-lg leading-6 font-medium text-gray-900">{{ .Title }}</h3>
</div>
<div class="border-t border-gray-200">
<dl>
{{- range .Rows }}
{{ template "row" . }}
{{- end }}
<div class="bg-gray-50 px-4 py-5 sm:grid sm:grid-cols-3 sm:gap-4 sm:px-6">
<dt class="text-sm font-medium text-gray-500">` + order.LabelProducts + `</dt>
<dd class="mt-1 text-sm text-gray-900 sm:mt-0 sm:col-span-2">
<ul class="border border-gray-200 rounded-md divide-y divide-gray-200">
{{- range .Products }}
<li class="pl-3 pr-4 py-3 flex items-center justify-between text-sm">
<div class="w-0 flex-1 flex items-center"><span class="ml-2 flex-1 w-0 truncate">{{ .Label }}</span></div>
<div class="ml-4 flex-shrink-0"><span class="font-medium">{{ .Amount }}</span></div>
</li>
{{- end }}
</ul>
</dd>
</div>
{{ template "row" .Footer }}
</dl>
</div>
</div>
{{ define "row" -}}
<div class="{{ if .Striped }}bg-gray-50{{ else }}bg-white{{ end }} px-4 py-5 sm:grid sm:grid-cols-3 sm:gap-4 sm:px-6">
<dt class="text-sm font-medium text-gray-500">{{ .Label }}</dt>
<dd class="mt-1 text-sm text-gray-900 sm:mt-0 sm:col-span-2">{{ .Value }}</dd>
</div>
{{- end }}
`

var detailTemplate = template.Must(template.New("detail").Parse(detailHTML))

// HTML writes v as an HTML fragment styled with Tailwind classes.
// Customer and product fields are escaped.
func HTML(w io.Writer, v *order.DetailView) error {
	if err := detailTemplate.Execute(w, v); err != nil {
		return errors.Wrap(err, "execute detail template")
	}
	return nil
}
