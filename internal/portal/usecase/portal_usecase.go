package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/google/uuid"

	auditDomain "github.com/tribunatech/casevault/internal/audit/domain"
	auditUsecase "github.com/tribunatech/casevault/internal/audit/usecase"
	casesDomain "github.com/tribunatech/casevault/internal/cases/domain"
	documentsDomain "github.com/tribunatech/casevault/internal/documents/domain"
	documentsUsecase "github.com/tribunatech/casevault/internal/documents/usecase"
	"github.com/tribunatech/casevault/internal/portal/domain"
	timelineDomain "github.com/tribunatech/casevault/internal/timeline/domain"
)

// clientUploader is the author recorded on documents sent through the portal.
const clientUploader = "client"

// PortalUploadInput contains the input data for a client document upload.
type PortalUploadInput struct {
	Token       string
	Title       string
	Description string
	Content     []byte
	ContentType string
	RemoteAddr  string
}

// PortalUseCase serves the token-gated client projection of a case. Every
// method takes the plain token; nothing here is reachable without one.
type PortalUseCase interface {
	GetView(ctx context.Context, token, remoteAddr string) (*domain.PortalView, error)
	ListDocuments(ctx context.Context, token, remoteAddr string) ([]domain.PortalDocument, error)
	UploadDocument(ctx context.Context, input PortalUploadInput) error
}

// TimelineRepository defines the timeline lookups the portal module needs.
type TimelineRepository interface {
	GetByCaseID(ctx context.Context, caseID uuid.UUID) (*timelineDomain.Timeline, error)
}

// DocumentService defines the document operations the portal module needs.
type DocumentService interface {
	Upload(ctx context.Context, input documentsUsecase.UploadDocumentInput) (*documentsDomain.Document, error)
	ListVisibleByCase(ctx context.Context, caseID uuid.UUID) ([]*documentsDomain.Document, error)
}

type portalUseCase struct {
	access       AccessUseCase
	caseRepo     CaseRepository
	timelineRepo TimelineRepository
	documents    DocumentService
	auditor      AccessAuditor
	tokens       tokenPrefixer
}

type tokenPrefixer interface {
	Prefix(hash string) string
}

// NewPortalUseCase creates a new PortalUseCase.
func NewPortalUseCase(
	access AccessUseCase,
	caseRepo CaseRepository,
	timelineRepo TimelineRepository,
	documents DocumentService,
	auditor AccessAuditor,
	tokens tokenPrefixer,
) PortalUseCase {
	return &portalUseCase{
		access:       access,
		caseRepo:     caseRepo,
		timelineRepo: timelineRepo,
		documents:    documents,
		auditor:      auditor,
		tokens:       tokens,
	}
}

// GetView assembles the client-facing case projection: title, journey
// progress, milestones, and the client-visible documents. The loads run
// concurrently; any failure collapses to ErrInvalidToken so the portal
// surface never explains itself to an unauthenticated caller.
func (uc *portalUseCase) GetView(ctx context.Context, token, remoteAddr string) (*domain.PortalView, error) {
	access, err := uc.access.Validate(ctx, token, remoteAddr)
	if err != nil {
		return nil, err
	}

	var (
		legalCase *casesDomain.Case
		timeline  *timelineDomain.Timeline
		docs      []*documentsDomain.Document
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		legalCase, err = uc.caseRepo.GetByID(gctx, access.CaseID)
		return err
	})
	g.Go(func() error {
		var err error
		timeline, err = uc.timelineRepo.GetByCaseID(gctx, access.CaseID)
		return err
	})
	g.Go(func() error {
		var err error
		docs, err = uc.documents.ListVisibleByCase(gctx, access.CaseID)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.recordView(ctx, access, auditDomain.ActionViewTimeline, false, remoteAddr)
		return nil, domain.ErrInvalidToken
	}

	view := &domain.PortalView{
		CaseTitle:       legalCase.Title,
		CurrentStage:    timeline.CurrentStage,
		StageLabel:      timeline.CurrentStage.Label(),
		ProgressPercent: timeline.ProgressPercent(),
		Milestones:      toPortalMilestones(timeline.Milestones),
		Documents:       toPortalDocuments(docs),
	}

	uc.recordView(ctx, access, auditDomain.ActionViewTimeline, true, remoteAddr)
	return view, nil
}

// ListDocuments retrieves the client-visible documents of the token's case.
func (uc *portalUseCase) ListDocuments(ctx context.Context, token, remoteAddr string) ([]domain.PortalDocument, error) {
	access, err := uc.access.Validate(ctx, token, remoteAddr)
	if err != nil {
		return nil, err
	}

	docs, err := uc.documents.ListVisibleByCase(ctx, access.CaseID)
	if err != nil {
		uc.recordView(ctx, access, auditDomain.ActionViewDocuments, false, remoteAddr)
		return nil, domain.ErrInvalidToken
	}

	uc.recordView(ctx, access, auditDomain.ActionViewDocuments, true, remoteAddr)
	return toPortalDocuments(docs), nil
}

// UploadDocument stores a document sent by the client. Portal uploads are
// always evidence and always visible back to the client who sent them.
func (uc *portalUseCase) UploadDocument(ctx context.Context, input PortalUploadInput) error {
	access, err := uc.access.Validate(ctx, input.Token, input.RemoteAddr)
	if err != nil {
		return err
	}

	_, err = uc.documents.Upload(ctx, documentsUsecase.UploadDocumentInput{
		CaseID:          access.CaseID,
		DocumentType:    string(documentsDomain.DocumentTypeEvidence),
		Title:           input.Title,
		Description:     input.Description,
		Content:         input.Content,
		ContentType:     input.ContentType,
		UploadedBy:      clientUploader,
		VisibleToClient: true,
	})

	uc.recordView(ctx, access, auditDomain.ActionUploadDocument, err == nil, input.RemoteAddr)
	return err
}

func (uc *portalUseCase) recordView(ctx context.Context, access *domain.PortalAccess, action auditDomain.Action, success bool, remoteAddr string) {
	uc.auditor.RecordBestEffort(ctx, auditUsecase.RecordAccessInput{
		TokenPrefix: uc.tokens.Prefix(access.TokenHash),
		CaseID:      &access.CaseID,
		Action:      action,
		Success:     success,
		RemoteAddr:  remoteAddr,
	})
}

func toPortalMilestones(milestones []timelineDomain.Milestone) []domain.PortalMilestone {
	out := make([]domain.PortalMilestone, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, domain.PortalMilestone{
			Stage:      m.Stage,
			StageLabel: m.Stage.Label(),
			Notes:      m.Notes,
			Date:       m.Date,
		})
	}
	return out
}

func toPortalDocuments(docs []*documentsDomain.Document) []domain.PortalDocument {
	out := make([]domain.PortalDocument, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.PortalDocument{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			ContentType: d.ContentType,
			SizeBytes:   d.SizeBytes,
			UploadedAt:  d.UploadedAt,
		})
	}
	return out
}
