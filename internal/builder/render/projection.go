// Package render turns a document plus its field registry into the
// display projection consumed by the HTML preview and the structured
// exporters, and owns the canonical value formatting.
package render

import (
	"github.com/speedisha/speedisha/internal/builder/domain"
	"github.com/speedisha/speedisha/internal/builder/style"
)

// Column describes one visible table column.
type Column struct {
	Name       string `json:"name"`
	Label      string `json:"label"`
	Width      int    `json:"width"`
	RightAlign bool   `json:"rightAlign"`
}

// Row is one item's cells, formatted and ordered to match Columns.
type Row struct {
	ItemID string   `json:"itemId"`
	Cells  []string `json:"cells"`
}

// Totals carries the formatted totals block. The tax line is only shown
// when a tax rate is set.
type Totals struct {
	Subtotal  string `json:"subtotal"`
	TaxLabel  string `json:"taxLabel,omitempty"`
	TaxAmount string `json:"taxAmount,omitempty"`
	Total     string `json:"total"`
	ShowTax   bool   `json:"showTax"`
}

// Projection is everything a renderer needs to lay out the invoice:
// disabled fields are already filtered out, all money is formatted and
// the notes markup is expanded into styled spans.
type Projection struct {
	InvoiceNumber string           `json:"invoiceNumber"`
	Date          string           `json:"date"`
	DueDate       string           `json:"dueDate"`
	CompanyName   string           `json:"companyName"`
	CompanyLogo   string           `json:"companyLogo"`
	BillTo        domain.BillTo    `json:"billTo"`
	Columns       []Column         `json:"columns"`
	Rows          []Row            `json:"rows"`
	Totals        Totals           `json:"totals"`
	Notes         []NoteLine       `json:"notes,omitempty"`
	Style         style.Attributes `json:"style"`
}

// Project builds the display projection for a document against the
// session's field registry.
func Project(doc *domain.Document, fields []domain.FieldDefinition) Projection {
	symbol := doc.Currency.Symbol

	cols := make([]Column, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, Column{
			Name:       f.Name,
			Label:      f.Label,
			Width:      f.Width,
			RightAlign: f.Type.Numeric(),
		})
	}

	rows := make([]Row, 0, len(doc.Items))
	for _, item := range doc.Items {
		cells := make([]string, 0, len(fields))
		for _, f := range fields {
			cells = append(cells, FormatCell(f, item.Get(f.Name), symbol))
		}
		rows = append(rows, Row{ItemID: item.ID, Cells: cells})
	}

	totals := Totals{
		Subtotal: FormatMoney(symbol, doc.Subtotal()),
		Total:    FormatMoney(symbol, doc.Total()),
		ShowTax:  doc.Tax > 0,
	}
	if totals.ShowTax {
		totals.TaxLabel = formatTaxLabel(doc.Tax)
		totals.TaxAmount = FormatMoney(symbol, doc.TaxAmount())
	}

	return Projection{
		InvoiceNumber: doc.InvoiceNumber,
		Date:          doc.Date,
		DueDate:       doc.DueDate,
		CompanyName:   doc.CompanyName,
		CompanyLogo:   doc.CompanyLogo,
		BillTo:        doc.BillTo,
		Columns:       cols,
		Rows:          rows,
		Totals:        totals,
		Notes:         ParseNotes(doc.Notes),
		Style:         style.Resolve(doc.Style, doc.ColorScheme),
	}
}

// FormatCell renders one item value for display. Every numeric column
// gets the shared money format, quantity included.
func FormatCell(f domain.FieldDefinition, v domain.FieldValue, symbol string) string {
	if f.Type.Numeric() {
		return FormatMoney(symbol, v.AsNumber())
	}
	return v.AsText()
}

func formatTaxLabel(rate float64) string {
	return "Tax (" + trimRate(rate) + "%)"
}

func trimRate(rate float64) string {
	s := domain.NumberValue(rate).AsText()
	return s
}
