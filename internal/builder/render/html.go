package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
)

// HTMLRenderer renders the preview document as a self-contained HTML
// page laid out in A4 proportions. The same markup the browser captures
// for the raster PDF export.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("invoice").Funcs(template.FuncMap{
		"css":   func(s string) template.CSS { return template.CSS(s) },
		"notes": NotesHTML,
		"pct": func(width int) string {
			return strconv.FormatFloat(float64(width)/12*100, 'f', 1, 64)
		},
	}).Parse(invoiceTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse invoice template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render produces the preview HTML for a projection.
func (r *HTMLRenderer) Render(p Projection) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{if .InvoiceNumber}}{{.InvoiceNumber}}{{else}}Draft{{end}}</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; font-size: 13px; color: #111827; background: #e5e7eb; }
  .sheet { width: 794px; min-height: 1123px; margin: 24px auto; padding: 48px; box-shadow: 0 1px 4px rgba(0,0,0,.2); }
  .header { display: flex; justify-content: space-between; align-items: flex-start; margin-bottom: 32px; }
  .header img { max-height: 64px; max-width: 200px; object-fit: contain; }
  .company { font-size: 20px; font-weight: 600; }
  .title { font-size: 32px; font-weight: 700; letter-spacing: 2px; }
  .meta { margin-bottom: 24px; line-height: 1.7; }
  .meta .label { color: #6b7280; margin-right: 8px; }
  .billto { margin-bottom: 32px; }
  .billto h3 { font-size: 11px; text-transform: uppercase; letter-spacing: 1px; color: #6b7280; margin-bottom: 8px; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
  th, td { padding: 10px 8px; text-align: left; border-bottom: 1px solid #e5e7eb; }
  th { font-size: 11px; text-transform: uppercase; letter-spacing: 1px; }
  .num { text-align: right; }
  .totals { margin-left: auto; width: 260px; padding-top: 12px; }
  .totals .line { display: flex; justify-content: space-between; padding: 4px 0; }
  .totals .grand { font-weight: 700; font-size: 16px; padding-top: 8px; }
  .notes { margin-top: 40px; line-height: 1.6; }
  .notes h3 { font-size: 11px; text-transform: uppercase; letter-spacing: 1px; margin-bottom: 8px; }
</style>
</head>
<body>
<div class="sheet" style="{{css .Style.Container}}">
  <div class="header" style="{{css .Style.Header}}">
    <div>
      {{if .CompanyLogo}}<img src="{{.CompanyLogo}}" alt="logo">{{end}}
      {{if .CompanyName}}<div class="company">{{.CompanyName}}</div>{{end}}
    </div>
    <div class="title" style="{{css .Style.Title}}">INVOICE</div>
  </div>

  <div class="meta">
    {{if .InvoiceNumber}}<div><span class="label">Invoice #</span>{{.InvoiceNumber}}</div>{{end}}
    {{if .Date}}<div><span class="label">Date</span>{{.Date}}</div>{{end}}
    {{if .DueDate}}<div><span class="label">Due Date</span>{{.DueDate}}</div>{{end}}
  </div>

  {{if or .BillTo.Name .BillTo.Address .BillTo.Email}}
  <div class="billto" style="{{css .Style.BillTo}}">
    <h3>Bill To</h3>
    {{if .BillTo.Name}}<div>{{.BillTo.Name}}</div>{{end}}
    {{if .BillTo.Address}}<div>{{.BillTo.Address}}</div>{{end}}
    {{if .BillTo.Email}}<div>{{.BillTo.Email}}</div>{{end}}
  </div>
  {{end}}

  <table>
    <thead>
      <tr>
        {{range .Columns}}<th style="width: {{pct .Width}}%; {{css $.Style.TableHeader}}"{{if .RightAlign}} class="num"{{end}}>{{.Label}}</th>{{end}}
      </tr>
    </thead>
    <tbody>
      {{range .Rows}}
      <tr>
        {{range $i, $cell := .Cells}}<td{{if (index $.Columns $i).RightAlign}} class="num"{{end}}>{{$cell}}</td>{{end}}
      </tr>
      {{end}}
    </tbody>
  </table>

  <div class="totals" style="{{css .Style.Totals}}">
    <div class="line"><span>Subtotal</span><span>{{.Totals.Subtotal}}</span></div>
    {{if .Totals.ShowTax}}<div class="line"><span>{{.Totals.TaxLabel}}</span><span>{{.Totals.TaxAmount}}</span></div>{{end}}
    <div class="line grand"><span>Total</span><span>{{.Totals.Total}}</span></div>
  </div>

  {{if .Notes}}
  <div class="notes" style="{{css .Style.Notes}}">
    <h3>Notes</h3>
    <div>{{notes .Notes}}</div>
  </div>
  {{end}}
</div>
</body>
</html>
`
