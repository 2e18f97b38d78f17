package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/speedisha/speedisha/internal/builder/domain"
)

// A4 page size in millimeters.
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
)

// renderRaster slices a preview capture into A4 pages. The image is
// scaled to the full page width and placed once per page at a negative
// vertical offset, so each page shows the next pageHeight-sized window
// of the capture.
func renderRaster(capture *domain.Capture) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(capture.Data))
	if err != nil {
		return nil, fmt.Errorf("decode capture: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("decode capture: empty image")
	}

	imageType := "PNG"
	if strings.Contains(capture.ContentType, "jpeg") || strings.Contains(capture.ContentType, "jpg") {
		imageType = "JPG"
	}

	scaledHeight := float64(cfg.Height) * pageWidthMM / float64(cfg.Width)
	pages := int(math.Ceil(scaledHeight / pageHeightMM))
	if pages < 1 {
		pages = 1
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)

	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: false}
	doc.RegisterImageOptionsReader("capture", opts, bytes.NewReader(capture.Data))

	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.ImageOptions("capture", 0, -float64(i)*pageHeightMM, pageWidthMM, scaledHeight, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// rasterPageCount reports how many A4 pages a capture of the given pixel
// dimensions paginates into.
func rasterPageCount(widthPx, heightPx int) int {
	if widthPx <= 0 || heightPx <= 0 {
		return 1
	}
	scaledHeight := float64(heightPx) * pageWidthMM / float64(widthPx)
	pages := int(math.Ceil(scaledHeight / pageHeightMM))
	if pages < 1 {
		return 1
	}
	return pages
}
