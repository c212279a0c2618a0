package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"doc-engine-be/internal/dto"
	"doc-engine-be/internal/entity"
	"doc-engine-be/internal/repository/memory"
	"doc-engine-be/internal/repository/specification"
	"doc-engine-be/internal/repository/unitofwork"
	"doc-engine-be/pkg/events"
	"doc-engine-be/pkg/lexical"
	pkgNats "doc-engine-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
)

const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatText     = "text"
)

type IDocumentService interface {
	Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error)
	List(ctx context.Context, req *dto.ListDocumentsRequest) (*dto.ListDocumentsResponse, error)
	Update(ctx context.Context, req *dto.UpdateDocumentRequest) (*dto.UpdateDocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Export(ctx context.Context, id uuid.UUID, format string) (*dto.ExportDocumentResponse, error)
	Validate(ctx context.Context, req *dto.ValidateDocumentRequest) *dto.ValidateDocumentResponse
	Revisions(ctx context.Context, id uuid.UUID) ([]*dto.RevisionSummary, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	renderCache      *memory.RenderCacheRepository
	registry         *lexical.Registry
	theme            lexical.Theme
	sanitizer        *bluemonday.Policy
	minifier         *minify.M
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	renderCache *memory.RenderCacheRepository,
) (IDocumentService, error) {
	registry, err := lexical.NewRegistry(lexical.CoreNodes()...)
	if err != nil {
		return nil, err
	}

	m := minify.New()
	m.AddFunc("text/html", mhtml.Minify)

	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		renderCache:      renderCache,
		registry:         registry,
		theme:            exportTheme(),
		sanitizer:        newExportSanitizer(),
		minifier:         m,
	}, nil
}

// exportTheme maps engine style slots to the CSS classes the web client
// ships for rendered exports.
func exportTheme() lexical.Theme {
	return lexical.Theme{
		"paragraph": "ed-p",
		"link":      "ed-link",
		"list":      "ed-list",
		"listItem":  "ed-li",
		"table":     "ed-table",
		"tableCell": "ed-cell",
	}
}

// newExportSanitizer extends the UGC policy with the attributes the render
// boundary emits: theme classes, whitelisted inline styles, list metadata
// and table spans.
func newExportSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "dir").Globally()
	p.AllowAttrs("style").OnElements("span")
	p.AllowAttrs("start").OnElements("ol")
	p.AllowAttrs("value", "aria-checked").OnElements("li")
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	p.AllowAttrs("target").OnElements("a")
	p.AllowElements("u", "s", "sub", "sup", "mark", "hr", "br")
	return p
}

// normalize runs content through a full import/export cycle against the
// builtin registry. The returned JSON is what gets persisted, so stored
// documents always carry the engine's canonical field encoding.
func (s *documentService) normalize(content string) (string, int, error) {
	ser, err := lexical.ParseEditorState([]byte(content))
	if err != nil {
		return "", 0, err
	}
	st, err := lexical.ImportEditorState(s.registry, ser)
	if err != nil {
		return "", 0, err
	}
	out, err := lexical.ExportEditorState(s.registry, st)
	if err != nil {
		return "", 0, err
	}
	raw, err := out.JSON()
	if err != nil {
		return "", 0, err
	}
	return string(raw), st.NodeCount(), nil
}

func (s *documentService) Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error) {
	normalized, _, err := s.normalize(req.Content)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc := entity.Document{
		Id:        uuid.New(),
		Title:     req.Title,
		Namespace: req.Namespace,
		Content:   normalized,
		Seq:       1,
		CreatedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	rev := entity.Revision{
		Id:         uuid.New(),
		DocumentId: doc.Id,
		Seq:        doc.Seq,
		Content:    normalized,
		CreatedAt:  time.Now(),
	}
	if err := uow.RevisionRepository().Create(ctx, &rev); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if err := s.publishUpdated(ctx, doc.Id, doc.Seq); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, "DOCUMENT_CREATED", &doc)

	return &dto.CreateDocumentResponse{
		Id:  doc.Id,
		Seq: doc.Seq,
	}, nil
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil // Not found
	}

	return &dto.ShowDocumentResponse{
		Id:        doc.Id,
		Title:     doc.Title,
		Namespace: doc.Namespace,
		Content:   doc.Content,
		Seq:       doc.Seq,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (s *documentService) List(ctx context.Context, req *dto.ListDocumentsRequest) (*dto.ListDocumentsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	filters := []specification.Specification{}
	if req.Namespace != "" {
		filters = append(filters, specification.ByNamespace{Namespace: req.Namespace})
	}
	if req.Search != "" {
		filters = append(filters, specification.TitleContains{Term: req.Search})
	}

	total, err := uow.DocumentRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	page := append(filters,
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)

	docs, err := uow.DocumentRepository().FindAll(ctx, page...)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.DocumentSummary, len(docs))
	for i, d := range docs {
		summaries[i] = dto.DocumentSummary{
			Id:        d.Id,
			Title:     d.Title,
			Namespace: d.Namespace,
			Seq:       d.Seq,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		}
	}

	return &dto.ListDocumentsResponse{
		Documents: summaries,
		Total:     total,
	}, nil
}

func (s *documentService) Update(ctx context.Context, req *dto.UpdateDocumentRequest) (*dto.UpdateDocumentResponse, error) {
	normalized, _, err := s.normalize(req.Content)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	now := time.Now()
	doc.Title = req.Title
	doc.Content = normalized
	doc.Seq = doc.Seq + 1
	doc.UpdatedAt = &now

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}

	rev := entity.Revision{
		Id:         uuid.New(),
		DocumentId: doc.Id,
		Seq:        doc.Seq,
		Content:    normalized,
		CreatedAt:  now,
	}
	if err := uow.RevisionRepository().Create(ctx, &rev); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if err := s.publishUpdated(ctx, doc.Id, doc.Seq); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, "DOCUMENT_UPDATED", doc)

	return &dto.UpdateDocumentResponse{
		Id:  doc.Id,
		Seq: doc.Seq,
	}, nil
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	// Revision history goes with the document; the soft-deleted row keeps
	// the latest content.
	if err := uow.RevisionRepository().DeleteAllByDocumentId(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.renderCache.Invalidate(id)
	s.publishEvent(ctx, "DOCUMENT_DELETED", doc)
	return nil
}

func (s *documentService) Export(ctx context.Context, id uuid.UUID, format string) (*dto.ExportDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	if rendered, found := s.renderCache.Get(doc.Id, format, doc.Seq); found {
		return &dto.ExportDocumentResponse{
			Id:       doc.Id,
			Format:   format,
			Seq:      doc.Seq,
			Rendered: rendered,
			Cached:   true,
		}, nil
	}

	rendered, err := s.render(doc.Content, format)
	if err != nil {
		return nil, err
	}

	s.renderCache.Save(doc.Id, format, doc.Seq, rendered)

	return &dto.ExportDocumentResponse{
		Id:       doc.Id,
		Format:   format,
		Seq:      doc.Seq,
		Rendered: rendered,
		Cached:   false,
	}, nil
}

func (s *documentService) render(content, format string) (string, error) {
	ser, err := lexical.ParseEditorState([]byte(content))
	if err != nil {
		return "", err
	}
	st, err := lexical.ImportEditorState(s.registry, ser)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatMarkdown:
		return lexical.ExportMarkdown(s.registry, st)
	case FormatHTML:
		raw, err := lexical.RenderHTML(s.registry, st, s.theme)
		if err != nil {
			return "", err
		}
		sanitized := s.sanitizer.Sanitize(raw)
		minified, err := s.minifier.String("text/html", sanitized)
		if err != nil {
			return "", err
		}
		return minified, nil
	case FormatText:
		return lexical.StateTextContent(s.registry, st), nil
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}

func (s *documentService) Validate(ctx context.Context, req *dto.ValidateDocumentRequest) *dto.ValidateDocumentResponse {
	normalized, nodeCount, err := s.normalize(req.Content)
	if err != nil {
		return &dto.ValidateDocumentResponse{
			Valid: false,
			Issue: err.Error(),
		}
	}
	return &dto.ValidateDocumentResponse{
		Valid:      true,
		Normalized: normalized,
		NodeCount:  nodeCount,
	}
}

func (s *documentService) Revisions(ctx context.Context, id uuid.UUID) ([]*dto.RevisionSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	revs, err := uow.RevisionRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: id},
		specification.OrderBy{Field: "seq", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	summaries := make([]*dto.RevisionSummary, len(revs))
	for i, r := range revs {
		summaries[i] = &dto.RevisionSummary{
			Id:        r.Id,
			Seq:       r.Seq,
			CreatedAt: r.CreatedAt,
		}
	}
	return summaries, nil
}

func (s *documentService) publishUpdated(ctx context.Context, id uuid.UUID, seq int) error {
	payload := dto.DocumentUpdatedMessage{
		DocumentId: id,
		Seq:        seq,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payloadJson)
}

// publishEvent forwards a document lifecycle event to the external bus.
// Failures are logged, not returned; the write already committed.
func (s *documentService) publishEvent(ctx context.Context, eventType string, doc *entity.Document) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"document_id": doc.Id,
			"namespace":   doc.Namespace,
			"title":       doc.Title,
			"seq":         doc.Seq,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}
