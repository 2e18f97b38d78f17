// Package docx renders invoices as Word documents. DOCX exports are
// always structured: the document is rebuilt from its projection rather
// than rasterized, so the text stays editable.
package docx

import (
	"bytes"
	"context"
	"fmt"

	"baliance.com/gooxml/color"
	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"
	"baliance.com/gooxml/schema/soo/wml"

	"github.com/speedisha/speedisha/internal/builder/domain"
	"github.com/speedisha/speedisha/internal/builder/render"
)

const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// Export builds the DOCX bytes for a projection.
func (e *Exporter) Export(ctx context.Context, p render.Projection) ([]byte, error) {
	doc := document.New()

	addHeading(doc, p)
	addMeta(doc, p)
	addBillTo(doc, p)
	addItemsTable(doc, p)
	addTotals(doc, p)
	addNotes(doc, p)

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}

func addHeading(doc *document.Document, p render.Projection) {
	if p.CompanyName != "" {
		para := doc.AddParagraph()
		run := para.AddRun()
		run.Properties().SetBold(true)
		run.Properties().SetSize(14 * measurement.Point)
		run.AddText(p.CompanyName)
	}

	para := doc.AddParagraph()
	para.Properties().SetAlignment(wml.ST_JcRight)
	run := para.AddRun()
	run.Properties().SetBold(true)
	run.Properties().SetSize(20 * measurement.Point)
	run.AddText("INVOICE")
}

func addMeta(doc *document.Document, p render.Projection) {
	meta := func(label, value string) {
		if value == "" {
			return
		}
		para := doc.AddParagraph()
		label = label + ": "
		labelRun := para.AddRun()
		labelRun.Properties().SetBold(true)
		labelRun.AddText(label)
		para.AddRun().AddText(value)
	}
	meta("Invoice #", p.InvoiceNumber)
	meta("Date", p.Date)
	meta("Due Date", p.DueDate)
	doc.AddParagraph()
}

func addBillTo(doc *document.Document, p render.Projection) {
	if p.BillTo.Name == "" && p.BillTo.Address == "" && p.BillTo.Email == "" {
		return
	}
	para := doc.AddParagraph()
	run := para.AddRun()
	run.Properties().SetBold(true)
	run.AddText("Bill To")
	for _, line := range []string{p.BillTo.Name, p.BillTo.Address, p.BillTo.Email} {
		if line != "" {
			doc.AddParagraph().AddRun().AddText(line)
		}
	}
	doc.AddParagraph()
}

func addItemsTable(doc *document.Document, p render.Projection) {
	table := doc.AddTable()
	table.Properties().SetWidthPercent(100)
	table.Properties().Borders().SetAll(wml.ST_BorderSingle, color.LightGray, measurement.Zero)

	header := table.AddRow()
	for _, c := range p.Columns {
		cell := header.AddCell()
		para := cell.AddParagraph()
		if c.RightAlign {
			para.Properties().SetAlignment(wml.ST_JcRight)
		}
		run := para.AddRun()
		run.Properties().SetBold(true)
		run.AddText(c.Label)
	}

	for _, r := range p.Rows {
		row := table.AddRow()
		for i, cellText := range r.Cells {
			cell := row.AddCell()
			para := cell.AddParagraph()
			if p.Columns[i].RightAlign {
				para.Properties().SetAlignment(wml.ST_JcRight)
			}
			para.AddRun().AddText(cellText)
		}
	}

	doc.AddParagraph()
}

func addTotals(doc *document.Document, p render.Projection) {
	totalLine := func(label, value string, bold bool) {
		para := doc.AddParagraph()
		para.Properties().SetAlignment(wml.ST_JcRight)
		run := para.AddRun()
		run.Properties().SetBold(bold)
		run.AddText(label + "  " + value)
	}
	totalLine("Subtotal", p.Totals.Subtotal, false)
	if p.Totals.ShowTax {
		totalLine(p.Totals.TaxLabel, p.Totals.TaxAmount, false)
	}
	totalLine("Total", p.Totals.Total, true)
}

func addNotes(doc *document.Document, p render.Projection) {
	if len(p.Notes) == 0 {
		return
	}
	doc.AddParagraph()
	heading := doc.AddParagraph().AddRun()
	heading.Properties().SetBold(true)
	heading.AddText("Notes")

	for _, line := range p.Notes {
		para := doc.AddParagraph()
		for _, span := range line {
			run := para.AddRun()
			if span.Bold {
				run.Properties().SetBold(true)
			}
			if span.Italic {
				run.Properties().SetItalic(true)
			}
			run.AddText(span.Text)
		}
	}
}

// Filename names the downloaded file after the invoice number.
func Filename(invoiceNumber string) string {
	return domain.ExportFilename(invoiceNumber, "docx")
}
