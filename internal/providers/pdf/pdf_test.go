package pdf

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/speedisha/speedisha/internal/builder/domain"
	"github.com/speedisha/speedisha/internal/builder/render"
)

func TestRasterPageCount(t *testing.T) {
	// A4 aspect ratio is 210:297, so a capture at exactly that ratio
	// fits one page.
	assert.Equal(t, 1, rasterPageCount(794, 1123))
	// Twice the height paginates onto a second page.
	assert.Equal(t, 2, rasterPageCount(794, 2246))
	// A little over one page spills onto a second.
	assert.Equal(t, 2, rasterPageCount(794, 1200))
	// Wide and short still takes one page.
	assert.Equal(t, 1, rasterPageCount(2000, 300))
	// Degenerate sizes never report zero pages.
	assert.Equal(t, 1, rasterPageCount(0, 0))
}

func capturePNG(t *testing.T, w, h int) *domain.Capture {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 240, G: 240, B: 240, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &domain.Capture{
		ContentType: "image/png",
		Scale:       2,
		Data:        buf.Bytes(),
		TakenAt:     time.Now(),
	}
}

func TestRenderRasterSinglePage(t *testing.T) {
	data, err := renderRaster(capturePNG(t, 794, 1123))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderRasterRejectsGarbage(t *testing.T) {
	_, err := renderRaster(&domain.Capture{ContentType: "image/png", Data: []byte("not an image")})
	assert.Error(t, err)
}

func TestGridWidths(t *testing.T) {
	cols := []render.Column{
		{Width: 3}, {Width: 3}, {Width: 2}, {Width: 2}, {Width: 2},
	}
	assert.Equal(t, []int{3, 3, 2, 2, 2}, gridWidths(cols))

	// A custom field pushes the sum past 12; widths rescale.
	cols = append(cols, render.Column{Width: 2})
	widths := gridWidths(cols)
	sum := 0
	for _, w := range widths {
		require.GreaterOrEqual(t, w, 1)
		sum += w
	}
	assert.Equal(t, 12, sum)
}

func TestGridWidthsCapsOverflow(t *testing.T) {
	// One dominant column next to many minimum-width ones: the bump to
	// width 1 overshoots the grid, so units come off the widest column.
	cols := []render.Column{{Width: 20}}
	for i := 0; i < 5; i++ {
		cols = append(cols, render.Column{Width: 1})
	}

	widths := gridWidths(cols)
	sum := 0
	for _, w := range widths {
		require.GreaterOrEqual(t, w, 1)
		sum += w
	}
	assert.Equal(t, 12, sum)
	assert.Equal(t, 7, widths[0])
}

func testProjection() render.Projection {
	registry := domain.NewRegistry()
	doc := domain.NewDocument(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), "item-1", registry.Fields())
	_ = doc.UpdateItem(0, "name", domain.TextValue("Consulting"))
	_ = doc.UpdateItem(0, "quantity", domain.NumberValue(2))
	_ = doc.UpdateItem(0, "price", domain.NumberValue(9.99))
	_ = doc.UpdateHeader("invoiceNumber", "INV-1")
	_ = doc.UpdateHeader("tax", "16")
	return render.Project(doc, registry.Enabled())
}

func TestExportStructuredFallback(t *testing.T) {
	exporter := NewExporter(zap.NewNop())

	data, err := exporter.Export(context.Background(), testProjection(), nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportPrefersCapture(t *testing.T) {
	exporter := NewExporter(zap.NewNop())

	data, err := exporter.Export(context.Background(), testProjection(), capturePNG(t, 400, 600))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportBadCaptureFallsBack(t *testing.T) {
	exporter := NewExporter(zap.NewNop())

	bad := &domain.Capture{ContentType: "image/png", Scale: 2, Data: []byte("junk")}
	data, err := exporter.Export(context.Background(), testProjection(), bad)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "invoice-inv-1.pdf", Filename("INV-1"))
	assert.Equal(t, "invoice-draft.pdf", Filename(""))
}
