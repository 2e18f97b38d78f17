// Package service owns builder sessions: in-memory invoice drafts keyed
// by session ID, mutated through the domain operations and exported via
// the pdf and docx providers.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/speedisha/speedisha/internal/builder/domain"
	"github.com/speedisha/speedisha/internal/builder/render"
	"github.com/speedisha/speedisha/internal/observability"
	"github.com/speedisha/speedisha/internal/providers/docx"
	"github.com/speedisha/speedisha/internal/providers/pdf"
	"github.com/speedisha/speedisha/internal/reference"
	"github.com/speedisha/speedisha/internal/storage"
)

type sessionState struct {
	mu        sync.Mutex
	session   *domain.Session
	exporting map[domain.ExportKind]bool
}

type builderService struct {
	mu       sync.RWMutex
	sessions map[string]*sessionState

	node     *snowflake.Node
	storage  storage.Provider
	renderer *render.HTMLRenderer
	pdf      *pdf.Exporter
	docx     *docx.Exporter
	metrics  *observability.HTTPMetrics
	log      *zap.Logger
	now      func() time.Time
}

func NewService(
	node *snowflake.Node,
	store storage.Provider,
	renderer *render.HTMLRenderer,
	pdfExporter *pdf.Exporter,
	docxExporter *docx.Exporter,
	metrics *observability.HTTPMetrics,
	log *zap.Logger,
) domain.Service {
	return &builderService{
		sessions: make(map[string]*sessionState),
		node:     node,
		storage:  store,
		renderer: renderer,
		pdf:      pdfExporter,
		docx:     docxExporter,
		metrics:  metrics,
		log:      log,
		now:      time.Now,
	}
}

func (s *builderService) CreateSession(ctx context.Context) (domain.SessionView, error) {
	registry := domain.NewRegistry()
	now := s.now()
	sess := &domain.Session{
		ID:        s.node.Generate().String(),
		Registry:  registry,
		Document:  domain.NewDocument(now, s.node.Generate().String(), registry.Fields()),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = &sessionState{
		session:   sess,
		exporting: make(map[domain.ExportKind]bool),
	}
	s.mu.Unlock()

	s.log.Info("builder session created", zap.String("session_id", sess.ID))
	return view(sess), nil
}

func (s *builderService) GetSession(ctx context.Context, id string) (domain.SessionView, error) {
	return s.withSession(id, func(sess *domain.Session) error { return nil })
}

func (s *builderService) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	s.log.Info("builder session discarded", zap.String("session_id", id))
	return nil
}

func (s *builderService) state(id string) (*sessionState, error) {
	s.mu.RLock()
	st, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return st, nil
}

// withSession runs fn against the locked session and returns the
// refreshed view. The session is only stamped when fn succeeds.
func (s *builderService) withSession(id string, fn func(*domain.Session) error) (domain.SessionView, error) {
	st, err := s.state(id)
	if err != nil {
		return domain.SessionView{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if err := fn(st.session); err != nil {
		return domain.SessionView{}, err
	}
	st.session.UpdatedAt = s.now()
	return view(st.session), nil
}

func view(sess *domain.Session) domain.SessionView {
	return domain.SessionView{
		ID:        sess.ID,
		Document:  sess.Document,
		Fields:    sess.Registry.Fields(),
		UpdatedAt: sess.UpdatedAt,
	}
}

func (s *builderService) UpdateHeader(ctx context.Context, id, field, value string) (domain.SessionView, error) {
	return s.withSession(id, func(sess *domain.Session) error {
		return sess.Document.UpdateHeader(field, value)
	})
}

func (s *builderService) UpdateBillTo(ctx context.Context, id, field, value string) (domain.SessionView, error) {
	return s.withSession(id, func(sess *domain.Session) error {
		return sess.Document.UpdateBillTo(field, value)
	})
}

func (s *builderService) UpdateColor(ctx context.Context, id, key, value string) (domain.SessionView, error) {
	return s.withSession(id, func(sess *domain.Session) error {
		return sess.Document.UpdateColor(key, value)
	})
}

func (s *builderService) SetCompanyName(ctx context.Context, id, name string) (domain.SessionView, error) {
	return s.withSession(id, func(sess *domain.Session) error {
		sess.Document.SetCompanyName(name)
		return nil
	})
}

func (s *builderService) SetCurrency(ctx context.Context, id, countryCode string) (domain.SessionView, error) {
	return s.withSession(id, func(sess *domain.Session) error {
		sess.Document.SetCurrency(reference.CurrencyByCountryCode(countryCode))
		return nil
	})
}

func (s *builderService) SetStyle(ctx context.Context, id, styleName string) (domain.SessionView, error) {
	return s.withSession(id, func(sess *domain.Session) error {
		style, err := domain.ParseStyle(styleName)
		if err != nil {
			return err
		}
		sess.Document.SetStyle(style)
		return nil
	})
}

func (s *builderService) AddItem(ctx context.Context, id string) (domain.SessionView, error) {
	return s.withSession(id, func(sess *domain.Session) error {
		sess.Document.AddItem(s.node.Generate().String(), sess.Registry.Fields())
		return nil
	})
}

func (s *builderService) UpdateItem(ctx context.Context, id string, index int, field string, raw any) (domain.SessionView, error) {
	return s.withSession(id, func(sess *domain.Session) error {
		def, ok := sess.Registry.Lookup(field)
		if !ok {
			return domain.ErrFieldNotFound
		}
		return sess.Document.UpdateItem(index, field, domain.CoerceValue(def.Type, raw))
	})
}

func (s *builderService) RemoveItem(ctx context.Context, id string, index int) (domain.SessionView, error) {
	return s.withSession(id, func(sess *domain.Session) error {
		return sess.Document.RemoveItem(index)
	})
}

func (s *builderService) AddField(ctx context.Context, id, label, fieldType string) (domain.SessionView, error) {
	return s.withSession(id, func(sess *domain.Session) error {
		def, err := sess.Registry.AddField(label, domain.FieldType(fieldType))
		if err != nil {
			return err
		}
		// Existing items pick up a zero value so every row stays
		// aligned with the registry.
		for i := range sess.Document.Items {
			if sess.Document.Items[i].Values == nil {
				sess.Document.Items[i].Values = make(map[string]domain.FieldValue)
			}
			sess.Document.Items[i].Values[def.Name] = domain.ZeroValue(def.Type)
		}
		return nil
	})
}

func (s *builderService) ToggleField(ctx context.Context, id, fieldID string) (domain.SessionView, error) {
	return s.withSession(id, func(sess *domain.Session) error {
		return sess.Registry.ToggleField(fieldID)
	})
}

func (s *builderService) ReorderFields(ctx context.Context, id string, src, dst int) (domain.SessionView, error) {
	return s.withSession(id, func(sess *domain.Session) error {
		sess.Registry.Reorder(src, dst)
		return nil
	})
}

func (s *builderService) UploadLogo(ctx context.Context, id, contentType string, data []byte) (domain.SessionView, error) {
	return s.withSession(id, func(sess *domain.Session) error {
		if err := validateImageUpload(contentType, len(data)); err != nil {
			return err
		}
		url, err := s.storage.Upload(ctx, storage.Key("logos", id, "logo"+extForContentType(contentType)), contentType, data)
		if err != nil {
			return err
		}
		sess.Document.SetLogo(url)
		return nil
	})
}

func (s *builderService) RemoveLogo(ctx context.Context, id string) (domain.SessionView, error) {
	return s.withSession(id, func(sess *domain.Session) error {
		sess.Document.RemoveLogo()
		return nil
	})
}

func (s *builderService) StoreCapture(ctx context.Context, id, contentType string, scale float64, data []byte) error {
	_, err := s.withSession(id, func(sess *domain.Session) error {
		if err := validateImageUpload(contentType, len(data)); err != nil {
			return err
		}
		if scale < domain.MinCaptureScale {
			return domain.ErrCaptureTooSmall
		}
		sess.Capture = &domain.Capture{
			ContentType: contentType,
			Scale:       scale,
			Data:        data,
			TakenAt:     s.now(),
		}
		return nil
	})
	return err
}

func (s *builderService) RenderPreview(ctx context.Context, id string) ([]byte, error) {
	st, err := s.state(id)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	projection := render.Project(st.session.Document, st.session.Registry.Enabled())
	st.mu.Unlock()

	return s.renderer.Render(projection)
}

func (s *builderService) ExportPDF(ctx context.Context, id string) (domain.Export, error) {
	return s.export(ctx, id, domain.ExportPDF)
}

func (s *builderService) ExportDOCX(ctx context.Context, id string) (domain.Export, error) {
	return s.export(ctx, id, domain.ExportDOCX)
}

// export snapshots the session under its lock, then runs the renderer
// outside the lock so edits are not blocked behind a slow export. A
// second export of the same kind is rejected while one is in flight.
func (s *builderService) export(ctx context.Context, id string, kind domain.ExportKind) (domain.Export, error) {
	st, err := s.state(id)
	if err != nil {
		return domain.Export{}, err
	}

	st.mu.Lock()
	if st.exporting[kind] {
		st.mu.Unlock()
		return domain.Export{}, domain.ErrExportInFlight
	}
	st.exporting[kind] = true
	projection := render.Project(st.session.Document, st.session.Registry.Enabled())
	invoiceNumber := st.session.Document.InvoiceNumber
	capture := st.session.Capture
	st.mu.Unlock()

	defer func() {
		st.mu.Lock()
		st.exporting[kind] = false
		st.mu.Unlock()
	}()

	started := s.now()
	var export domain.Export
	switch kind {
	case domain.ExportPDF:
		data, err := s.pdf.Export(ctx, projection, capture)
		if err != nil {
			s.metrics.RecordExport(string(kind), "error")
			return domain.Export{}, err
		}
		export = domain.Export{
			Filename:    pdf.Filename(invoiceNumber),
			ContentType: pdf.ContentType,
			Data:        data,
		}
	case domain.ExportDOCX:
		data, err := s.docx.Export(ctx, projection)
		if err != nil {
			s.metrics.RecordExport(string(kind), "error")
			return domain.Export{}, err
		}
		export = domain.Export{
			Filename:    docx.Filename(invoiceNumber),
			ContentType: docx.ContentType,
			Data:        data,
		}
	}

	s.metrics.RecordExport(string(kind), "ok")
	s.log.Info("invoice exported",
		zap.String("session_id", id),
		zap.String("format", string(kind)),
		zap.Int("bytes", len(export.Data)),
		zap.Duration("duration", s.now().Sub(started)),
	)
	return export, nil
}

func validateImageUpload(contentType string, size int) error {
	if size > domain.MaxUploadSize {
		return domain.ErrFileTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return domain.ErrNotAnImage
	}
	return nil
}

func extForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	default:
		return ".img"
	}
}
