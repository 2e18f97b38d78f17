package domain

import (
	"context"
	"time"
)

// MaxUploadSize caps logo and capture uploads at 5MB.
const MaxUploadSize = 5 << 20

// MinCaptureScale is the minimum device-pixel ratio accepted for a
// preview capture; lower scales paginate into blurry pages.
const MinCaptureScale = 2.0

// Capture is a rasterized snapshot of the rendered preview, posted by
// the client ahead of a raster PDF export.
type Capture struct {
	ContentType string
	Scale       float64
	Data        []byte
	TakenAt     time.Time
}

// ExportKind names an export pipeline. At most one export per kind may
// run against a session at a time.
type ExportKind string

const (
	ExportPDF  ExportKind = "pdf"
	ExportDOCX ExportKind = "docx"
)

// Session is one in-progress invoice draft: the document, its field
// registry, and any pending preview capture.
type Session struct {
	ID        string    `json:"id"`
	Document  *Document `json:"document"`
	Registry  *Registry `json:"-"`
	Capture   *Capture  `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionView is the wire shape of a session: the document plus the full
// field list, so the client can rebuild the form and the table.
type SessionView struct {
	ID        string            `json:"id"`
	Document  *Document         `json:"document"`
	Fields    []FieldDefinition `json:"fields"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Export is a finished export artifact.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service is the builder's session API. All mutations address a session
// by ID and return the refreshed view.
type Service interface {
	CreateSession(ctx context.Context) (SessionView, error)
	GetSession(ctx context.Context, id string) (SessionView, error)
	DeleteSession(ctx context.Context, id string) error

	UpdateHeader(ctx context.Context, id, field, value string) (SessionView, error)
	UpdateBillTo(ctx context.Context, id, field, value string) (SessionView, error)
	UpdateColor(ctx context.Context, id, key, value string) (SessionView, error)
	SetCompanyName(ctx context.Context, id, name string) (SessionView, error)
	SetCurrency(ctx context.Context, id, countryCode string) (SessionView, error)
	SetStyle(ctx context.Context, id, styleName string) (SessionView, error)

	AddItem(ctx context.Context, id string) (SessionView, error)
	UpdateItem(ctx context.Context, id string, index int, field string, raw any) (SessionView, error)
	RemoveItem(ctx context.Context, id string, index int) (SessionView, error)

	AddField(ctx context.Context, id, label, fieldType string) (SessionView, error)
	ToggleField(ctx context.Context, id, fieldID string) (SessionView, error)
	ReorderFields(ctx context.Context, id string, src, dst int) (SessionView, error)

	UploadLogo(ctx context.Context, id, contentType string, data []byte) (SessionView, error)
	RemoveLogo(ctx context.Context, id string) (SessionView, error)

	StoreCapture(ctx context.Context, id, contentType string, scale float64, data []byte) error

	RenderPreview(ctx context.Context, id string) ([]byte, error)
	ExportPDF(ctx context.Context, id string) (Export, error)
	ExportDOCX(ctx context.Context, id string) (Export, error)
}
