// Package pdf renders invoice PDFs. The primary path paginates a raster
// capture of the preview so the export matches the on-screen document
// pixel for pixel; the structured path redraws the invoice from its
// projection when no capture exists.
package pdf

import (
	"context"

	"go.uber.org/zap"

	"github.com/speedisha/speedisha/internal/builder/domain"
	"github.com/speedisha/speedisha/internal/builder/render"
)

const ContentType = "application/pdf"

type Exporter struct {
	log *zap.Logger
}

func NewExporter(log *zap.Logger) *Exporter {
	return &Exporter{log: log}
}

// Export produces the PDF bytes for a document. A non-nil capture takes
// the raster path; otherwise the invoice is drawn from the projection.
func (e *Exporter) Export(ctx context.Context, p render.Projection, capture *domain.Capture) ([]byte, error) {
	if capture != nil {
		data, err := renderRaster(capture)
		if err == nil {
			return data, nil
		}
		e.log.Warn("raster export failed, falling back to structured render",
			zap.Error(err),
		)
	}
	return renderStructured(p)
}

// Filename names the downloaded file after the invoice number, with
// "draft" standing in for an unnumbered invoice.
func Filename(invoiceNumber string) string {
	return domain.ExportFilename(invoiceNumber, "pdf")
}
