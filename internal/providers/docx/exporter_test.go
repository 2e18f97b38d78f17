package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedisha/speedisha/internal/builder/domain"
	"github.com/speedisha/speedisha/internal/builder/render"
)

func testProjection(t *testing.T) render.Projection {
	t.Helper()
	registry := domain.NewRegistry()
	doc := domain.NewDocument(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), "item-1", registry.Fields())
	require.NoError(t, doc.UpdateItem(0, "name", domain.TextValue("Consulting")))
	require.NoError(t, doc.UpdateItem(0, "quantity", domain.NumberValue(2)))
	require.NoError(t, doc.UpdateItem(0, "price", domain.NumberValue(9.99)))
	require.NoError(t, doc.UpdateHeader("invoiceNumber", "INV-9"))
	require.NoError(t, doc.UpdateHeader("tax", "16"))
	require.NoError(t, doc.UpdateBillTo("name", "Acme Ltd"))
	doc.SetCompanyName("Speedisha Test Co")
	doc.Notes = "Payment due in 14 days"
	return render.Project(doc, registry.Enabled())
}

func TestExportProducesValidArchive(t *testing.T) {
	exporter := NewExporter()

	data, err := exporter.Export(context.Background(), testProjection(t))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// A docx file is a zip archive with a word/document.xml entry.
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var hasDocument bool
	for _, f := range reader.File {
		if f.Name == "word/document.xml" {
			hasDocument = true
		}
	}
	assert.True(t, hasDocument)
}

func TestExportContainsInvoiceText(t *testing.T) {
	exporter := NewExporter()

	data, err := exporter.Export(context.Background(), testProjection(t))
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var doc bytes.Buffer
	for _, f := range reader.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		_, err = doc.ReadFrom(rc)
		require.NoError(t, err)
		rc.Close()
	}

	content := doc.String()
	assert.Contains(t, content, "INVOICE")
	assert.Contains(t, content, "Speedisha Test Co")
	assert.Contains(t, content, "Acme Ltd")
	assert.Contains(t, content, "Consulting")
	assert.Contains(t, content, "Tax (16%)")
	assert.Contains(t, content, "KSh23.18")
	assert.Contains(t, content, "Payment due in 14 days")
}

func documentXML(t *testing.T, data []byte) string {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var content bytes.Buffer
	for _, f := range reader.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			_, err = content.ReadFrom(rc)
			require.NoError(t, err)
			rc.Close()
		}
	}
	return content.String()
}

func TestExportExpandsNotesMarkup(t *testing.T) {
	registry := domain.NewRegistry()
	doc := domain.NewDocument(time.Now(), "item-1", registry.Fields())
	doc.Notes = "*thanks* for _your_ business"

	data, err := NewExporter().Export(context.Background(), render.Project(doc, registry.Enabled()))
	require.NoError(t, err)

	content := documentXML(t, data)
	assert.Contains(t, content, "thanks")
	assert.Contains(t, content, "your")
	assert.NotContains(t, content, "*thanks*")
	assert.NotContains(t, content, "_your_")
}

func TestExportFollowsColumnOrder(t *testing.T) {
	registry := domain.NewRegistry()
	doc := domain.NewDocument(time.Now(), "item-1", registry.Fields())
	registry.Reorder(2, 0)

	data, err := NewExporter().Export(context.Background(), render.Project(doc, registry.Enabled()))
	require.NoError(t, err)

	content := documentXML(t, data)
	qty := strings.Index(content, "Quantity")
	name := strings.Index(content, "Item Name")
	require.Greater(t, qty, -1)
	require.Greater(t, name, -1)
	assert.Less(t, qty, name)
}

func TestExportOmitsTaxLineWhenZero(t *testing.T) {
	registry := domain.NewRegistry()
	doc := domain.NewDocument(time.Now(), "item-1", registry.Fields())
	require.NoError(t, doc.UpdateItem(0, "quantity", domain.NumberValue(1)))
	require.NoError(t, doc.UpdateItem(0, "price", domain.NumberValue(50)))

	exporter := NewExporter()
	data, err := exporter.Export(context.Background(), render.Project(doc, registry.Enabled()))
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var content bytes.Buffer
	for _, f := range reader.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			_, _ = content.ReadFrom(rc)
			rc.Close()
		}
	}
	assert.NotContains(t, content.String(), "Tax (")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "invoice-inv-9.docx", Filename("INV-9"))
	assert.Equal(t, "invoice-draft.docx", Filename(""))
}
