package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocument() *Document {
	return NewDocument(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), "item-1", DefaultFields())
}

func TestNewDocumentDefaults(t *testing.T) {
	doc := newTestDocument()

	assert.Equal(t, "2026-03-14", doc.Date)
	assert.Equal(t, "KES", doc.Currency.Code)
	assert.Equal(t, "KSh", doc.Currency.Symbol)
	assert.Equal(t, StyleBasic, doc.Style)
	assert.Equal(t, ColorScheme{Primary: "#518b03", Secondary: "#3d6802", Accent: "#7ab61d"}, doc.ColorScheme)

	require.Len(t, doc.Items, 1)
	item := doc.Items[0]
	assert.Equal(t, 1.0, item.Get("quantity").AsNumber())
	assert.Equal(t, 0.0, item.Get("price").AsNumber())
	assert.Equal(t, 0.0, item.Get("amount").AsNumber())
}

func TestUpdateItemRecomputesAmount(t *testing.T) {
	doc := newTestDocument()

	// Quantity first, then price.
	require.NoError(t, doc.UpdateItem(0, "quantity", NumberValue(3)))
	require.NoError(t, doc.UpdateItem(0, "price", NumberValue(9.99)))
	assert.InDelta(t, 29.97, doc.Items[0].Amount(), 1e-9)

	// Price first, then quantity.
	doc2 := newTestDocument()
	require.NoError(t, doc2.UpdateItem(0, "price", NumberValue(9.99)))
	require.NoError(t, doc2.UpdateItem(0, "quantity", NumberValue(3)))
	assert.InDelta(t, 29.97, doc2.Items[0].Amount(), 1e-9)
}

func TestUpdateItemAmountIsDerived(t *testing.T) {
	doc := newTestDocument()
	err := doc.UpdateItem(0, "amount", NumberValue(999))
	assert.ErrorIs(t, err, ErrDerivedField)
	assert.Equal(t, 0.0, doc.Items[0].Amount())
}

func TestUpdateItemInvalidIndex(t *testing.T) {
	doc := newTestDocument()
	assert.ErrorIs(t, doc.UpdateItem(5, "price", NumberValue(1)), ErrItemNotFound)
	assert.ErrorIs(t, doc.UpdateItem(-1, "price", NumberValue(1)), ErrItemNotFound)
}

func TestRemoveItemKeepsLastItem(t *testing.T) {
	doc := newTestDocument()
	assert.ErrorIs(t, doc.RemoveItem(0), ErrLastItem)

	doc.AddItem("item-2", DefaultFields())
	require.NoError(t, doc.RemoveItem(0))
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "item-2", doc.Items[0].ID)

	assert.ErrorIs(t, doc.RemoveItem(0), ErrLastItem)
	assert.ErrorIs(t, doc.RemoveItem(3), ErrItemNotFound)
}

func TestTotalsAcrossOperations(t *testing.T) {
	doc := newTestDocument()

	require.NoError(t, doc.UpdateItem(0, "quantity", NumberValue(2)))
	require.NoError(t, doc.UpdateItem(0, "price", NumberValue(9.99)))

	doc.AddItem("item-2", DefaultFields())
	require.NoError(t, doc.UpdateItem(1, "quantity", NumberValue(5)))
	require.NoError(t, doc.UpdateItem(1, "price", NumberValue(100)))

	require.NoError(t, doc.UpdateHeader("tax", "16"))

	assert.InDelta(t, 519.98, doc.Subtotal(), 1e-9)
	assert.InDelta(t, 83.1968, doc.TaxAmount(), 1e-9)
	assert.InDelta(t, 603.1768, doc.Total(), 1e-9)

	// Removing an item shrinks the totals immediately.
	require.NoError(t, doc.RemoveItem(1))
	assert.InDelta(t, 19.98, doc.Subtotal(), 1e-9)
	assert.InDelta(t, 3.1968, doc.TaxAmount(), 1e-9)
}

func TestUpdateHeader(t *testing.T) {
	doc := newTestDocument()

	require.NoError(t, doc.UpdateHeader("invoiceNumber", "INV-042"))
	require.NoError(t, doc.UpdateHeader("dueDate", "2026-04-01"))
	require.NoError(t, doc.UpdateHeader("notes", "Thanks for your business"))
	assert.Equal(t, "INV-042", doc.InvoiceNumber)
	assert.Equal(t, "2026-04-01", doc.DueDate)

	assert.ErrorIs(t, doc.UpdateHeader("wat", "x"), ErrUnknownField)
}

func TestUpdateHeaderTaxBounds(t *testing.T) {
	doc := newTestDocument()

	require.NoError(t, doc.UpdateHeader("tax", "0"))
	require.NoError(t, doc.UpdateHeader("tax", "100"))
	require.NoError(t, doc.UpdateHeader("tax", "16.5"))
	assert.Equal(t, 16.5, doc.Tax)

	for _, raw := range []string{"-1", "101", "abc", ""} {
		assert.ErrorIs(t, doc.UpdateHeader("tax", raw), ErrInvalidTax, "tax=%q", raw)
	}
	assert.Equal(t, 16.5, doc.Tax)
}

func TestUpdateBillTo(t *testing.T) {
	doc := newTestDocument()

	require.NoError(t, doc.UpdateBillTo("name", "Acme Ltd"))
	require.NoError(t, doc.UpdateBillTo("address", "12 Moi Avenue"))
	require.NoError(t, doc.UpdateBillTo("email", "billing@acme.test"))
	assert.Equal(t, BillTo{Name: "Acme Ltd", Address: "12 Moi Avenue", Email: "billing@acme.test"}, doc.BillTo)

	assert.ErrorIs(t, doc.UpdateBillTo("phone", "x"), ErrUnknownField)
}

func TestUpdateColorValidatesHex(t *testing.T) {
	doc := newTestDocument()

	require.NoError(t, doc.UpdateColor("primary", "#A1B2C3"))
	assert.Equal(t, "#A1B2C3", doc.ColorScheme.Primary)

	for _, raw := range []string{"A1B2C3", "#12345", "#1234567", "#GGGGGG", "red"} {
		assert.ErrorIs(t, doc.UpdateColor("secondary", raw), ErrInvalidColor, "color=%q", raw)
	}
	assert.Equal(t, "#3d6802", doc.ColorScheme.Secondary)

	assert.ErrorIs(t, doc.UpdateColor("tertiary", "#112233"), ErrUnknownField)
}

func TestParseStyle(t *testing.T) {
	for raw, want := range map[string]Style{
		"basic":       StyleBasic,
		"styled":      StyleStyled,
		"premium":     StylePremium,
		"uber-styled": StylePremium,
		" Premium ":   StylePremium,
	} {
		got, err := ParseStyle(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	_, err := ParseStyle("fancy")
	assert.ErrorIs(t, err, ErrInvalidStyle)
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "invoice-inv-042.pdf", ExportFilename("INV-042", "pdf"))
	assert.Equal(t, "invoice-draft.docx", ExportFilename("", "docx"))
	assert.Equal(t, "invoice-draft.pdf", ExportFilename("   ", "pdf"))
}
