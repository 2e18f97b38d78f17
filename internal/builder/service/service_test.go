package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/speedisha/speedisha/internal/builder/domain"
	"github.com/speedisha/speedisha/internal/builder/render"
	"github.com/speedisha/speedisha/internal/observability"
	"github.com/speedisha/speedisha/internal/providers/docx"
	"github.com/speedisha/speedisha/internal/providers/pdf"
)

type fakeStorage struct {
	mu      sync.Mutex
	uploads map[string][]byte
	fail    bool
}

func (f *fakeStorage) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if f.fail {
		return "", assert.AnError
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[key] = data
	return "/uploads/" + key, nil
}

func (f *fakeStorage) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.uploads, key)
	return nil
}

func newTestService(t *testing.T) (domain.Service, *fakeStorage) {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	renderer, err := render.NewHTMLRenderer()
	require.NoError(t, err)

	store := &fakeStorage{}
	metrics := observability.NewHTTPMetricsWithRegistry(prometheus.NewRegistry())
	svc := NewService(node, store, renderer, pdf.NewExporter(zap.NewNop()), docx.NewExporter(), metrics, zap.NewNop())
	return svc, store
}

func TestCreateAndGetSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Len(t, created.Fields, 5)
	require.Len(t, created.Document.Items, 1)

	got, err := svc.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	require.NoError(t, svc.DeleteSession(ctx, created.ID))
	_, err = svc.GetSession(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, svc.DeleteSession(ctx, created.ID), domain.ErrSessionNotFound)
}

func TestItemLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	view, err := svc.UpdateItem(ctx, sess.ID, 0, "quantity", 2.0)
	require.NoError(t, err)
	view, err = svc.UpdateItem(ctx, sess.ID, 0, "price", "9.99")
	require.NoError(t, err)
	assert.InDelta(t, 19.98, view.Document.Items[0].Amount(), 1e-9)

	// amount can never be written directly
	_, err = svc.UpdateItem(ctx, sess.ID, 0, "amount", 500.0)
	assert.ErrorIs(t, err, domain.ErrDerivedField)

	// unknown fields are rejected before touching the document
	_, err = svc.UpdateItem(ctx, sess.ID, 0, "mystery", "x")
	assert.ErrorIs(t, err, domain.ErrFieldNotFound)

	view, err = svc.AddItem(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, view.Document.Items, 2)
	assert.Equal(t, 1.0, view.Document.Items[1].Get("quantity").AsNumber())

	view, err = svc.RemoveItem(ctx, sess.ID, 1)
	require.NoError(t, err)
	require.Len(t, view.Document.Items, 1)

	_, err = svc.RemoveItem(ctx, sess.ID, 0)
	assert.ErrorIs(t, err, domain.ErrLastItem)
}

func TestAddFieldBackfillsItems(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, sess.ID)
	require.NoError(t, err)

	view, err := svc.AddField(ctx, sess.ID, "Discount", "number")
	require.NoError(t, err)
	require.Len(t, view.Fields, 6)

	for _, item := range view.Document.Items {
		value, ok := item.Values["discount"]
		require.True(t, ok)
		assert.Equal(t, 0.0, value.AsNumber())
	}

	_, err = svc.AddField(ctx, sess.ID, "Discount", "number")
	assert.ErrorIs(t, err, domain.ErrDuplicateField)
}

func TestUploadLogoValidation(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	// Oversized upload is rejected and the document keeps no logo.
	huge := make([]byte, domain.MaxUploadSize+1)
	_, err = svc.UploadLogo(ctx, sess.ID, "image/png", huge)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	_, err = svc.UploadLogo(ctx, sess.ID, "application/pdf", []byte("fake"))
	assert.ErrorIs(t, err, domain.ErrNotAnImage)

	view, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Document.CompanyLogo)
	assert.Empty(t, store.uploads)

	view, err = svc.UploadLogo(ctx, sess.ID, "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.NotEmpty(t, view.Document.CompanyLogo)

	view, err = svc.RemoveLogo(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Document.CompanyLogo)
}

func TestStoreCaptureValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	err = svc.StoreCapture(ctx, sess.ID, "image/png", 1.0, []byte("data"))
	assert.ErrorIs(t, err, domain.ErrCaptureTooSmall)

	err = svc.StoreCapture(ctx, sess.ID, "text/plain", 2.0, []byte("data"))
	assert.ErrorIs(t, err, domain.ErrNotAnImage)

	err = svc.StoreCapture(ctx, sess.ID, "image/png", 2.0, []byte("data"))
	require.NoError(t, err)
}

func TestRenderPreview(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.UpdateItem(ctx, sess.ID, 0, "name", "Consulting")
	require.NoError(t, err)

	html, err := svc.RenderPreview(ctx, sess.ID)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Consulting")
	assert.Contains(t, string(html), "INVOICE")
}

func TestExportPDFAndDOCX(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.UpdateHeader(ctx, sess.ID, "invoiceNumber", "INV-55")
	require.NoError(t, err)

	pdfExport, err := svc.ExportPDF(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoice-inv-55.pdf", pdfExport.Filename)
	assert.Equal(t, "application/pdf", pdfExport.ContentType)
	assert.True(t, bytes.HasPrefix(pdfExport.Data, []byte("%PDF")))

	docxExport, err := svc.ExportDOCX(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoice-inv-55.docx", docxExport.Filename)
	assert.NotEmpty(t, docxExport.Data)
}

func TestExportInFlightConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	bs := svc.(*builderService)
	st, err := bs.state(sess.ID)
	require.NoError(t, err)

	st.mu.Lock()
	st.exporting[domain.ExportPDF] = true
	st.mu.Unlock()

	_, err = svc.ExportPDF(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrExportInFlight)

	// The guard is per kind: a DOCX export still goes through.
	_, err = svc.ExportDOCX(ctx, sess.ID)
	require.NoError(t, err)

	st.mu.Lock()
	st.exporting[domain.ExportPDF] = false
	st.mu.Unlock()

	_, err = svc.ExportPDF(ctx, sess.ID)
	require.NoError(t, err)
}

func TestExportUsesStoredCapture(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	img := image.NewRGBA(image.Rect(0, 0, 400, 600))
	for y := 0; y < 600; y++ {
		for x := 0; x < 400; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, svc.StoreCapture(ctx, sess.ID, "image/png", 2.0, buf.Bytes()))

	export, err := svc.ExportPDF(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(export.Data, []byte("%PDF")))
}
