package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/speedisha/speedisha/internal/builder/render"
)

// renderStructured draws the invoice from its display projection. Used
// when a session has no preview capture to paginate.
func renderStructured(p render.Projection) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()

	m := maroto.New(cfg)

	addHeader(m, p)
	addBillTo(m, p)
	addItemsTable(m, p)
	addTotals(m, p)
	addNotes(m, p)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, p render.Projection) {
	company := p.CompanyName
	if company == "" {
		company = "Invoice"
	}
	m.AddRow(12,
		text.NewCol(6, company, props.Text{Size: 14, Style: fontstyle.Bold}),
		text.NewCol(6, "INVOICE", props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Right}),
	)

	meta := func(label, value string) core.Row {
		return row.New(5).Add(
			text.NewCol(2, label, props.Text{Size: 9, Color: mutedColor()}),
			text.NewCol(10, value, props.Text{Size: 9}),
		)
	}
	if p.InvoiceNumber != "" {
		m.AddRows(meta("Invoice #", p.InvoiceNumber))
	}
	if p.Date != "" {
		m.AddRows(meta("Date", p.Date))
	}
	if p.DueDate != "" {
		m.AddRows(meta("Due Date", p.DueDate))
	}
	m.AddRow(6, col.New(12))
}

func addBillTo(m core.Maroto, p render.Projection) {
	if p.BillTo.Name == "" && p.BillTo.Address == "" && p.BillTo.Email == "" {
		return
	}
	m.AddRow(6, text.NewCol(12, "BILL TO", props.Text{Size: 8, Style: fontstyle.Bold, Color: mutedColor()}))
	for _, line := range []string{p.BillTo.Name, p.BillTo.Address, p.BillTo.Email} {
		if line != "" {
			m.AddRow(5, text.NewCol(12, line, props.Text{Size: 9}))
		}
	}
	m.AddRow(6, col.New(12))
}

func addItemsTable(m core.Maroto, p render.Projection) {
	widths := gridWidths(p.Columns)

	headerCols := make([]core.Col, 0, len(p.Columns))
	for i, c := range p.Columns {
		headerCols = append(headerCols, text.NewCol(widths[i], c.Label, props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Align: columnAlign(c),
		}))
	}
	m.AddRows(row.New(8).Add(headerCols...).WithStyle(&props.Cell{
		BackgroundColor: &props.Color{Red: 249, Green: 250, Blue: 251},
	}))

	for _, r := range p.Rows {
		cells := make([]core.Col, 0, len(r.Cells))
		for i, cell := range r.Cells {
			cells = append(cells, text.NewCol(widths[i], cell, props.Text{
				Size:  9,
				Align: columnAlign(p.Columns[i]),
			}))
		}
		m.AddRows(row.New(7).Add(cells...))
	}

	m.AddRow(3, line.NewCol(12))
}

func addTotals(m core.Maroto, p render.Projection) {
	totalLine := func(label, value string, bold bool) {
		style := fontstyle.Normal
		size := 9.0
		if bold {
			style = fontstyle.Bold
			size = 11
		}
		m.AddRow(6,
			col.New(7),
			text.NewCol(3, label, props.Text{Size: size, Style: style}),
			text.NewCol(2, value, props.Text{Size: size, Style: style, Align: align.Right}),
		)
	}
	totalLine("Subtotal", p.Totals.Subtotal, false)
	if p.Totals.ShowTax {
		totalLine(p.Totals.TaxLabel, p.Totals.TaxAmount, false)
	}
	totalLine("Total", p.Totals.Total, true)
}

func addNotes(m core.Maroto, p render.Projection) {
	if len(p.Notes) == 0 {
		return
	}
	m.AddRow(8, col.New(12))
	m.AddRow(5, text.NewCol(12, "NOTES", props.Text{Size: 8, Style: fontstyle.Bold, Color: mutedColor()}))
	for _, line := range p.Notes {
		m.AddRow(5, text.NewCol(12, line.PlainText(), props.Text{Size: 9}))
	}
}

// gridWidths maps the column width hints onto maroto's 12-unit grid,
// scaling proportionally when custom fields push the sum past 12.
func gridWidths(cols []render.Column) []int {
	total := 0
	for _, c := range cols {
		total += c.Width
	}
	if total <= 0 {
		total = len(cols)
	}

	widths := make([]int, len(cols))
	sum := 0
	for i, c := range cols {
		w := c.Width * 12 / total
		if w < 1 {
			w = 1
		}
		widths[i] = w
		sum += w
	}
	// Hand leftover grid units to the first column.
	if sum < 12 && len(widths) > 0 {
		widths[0] += 12 - sum
	}
	// The minimum-width bump can overshoot the grid on very wide
	// tables; shave units off the widest columns until it fits.
	for sum > 12 {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 1 {
			break
		}
		widths[widest]--
		sum--
	}
	return widths
}

func columnAlign(c render.Column) align.Type {
	if c.RightAlign {
		return align.Right
	}
	return align.Left
}

func mutedColor() *props.Color {
	return &props.Color{Red: 107, Green: 114, Blue: 128}
}
