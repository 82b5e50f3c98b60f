package usecase

import (
	"context"
	"time"

	"github.com/tribunatech/casevault/internal/metrics"
	"github.com/tribunatech/casevault/internal/portal/domain"
)

// portalUseCaseWithMetrics decorates PortalUseCase with metrics instrumentation.
type portalUseCaseWithMetrics struct {
	next    PortalUseCase
	metrics metrics.BusinessMetrics
}

// NewPortalUseCaseWithMetrics wraps a PortalUseCase with metrics recording.
func NewPortalUseCaseWithMetrics(useCase PortalUseCase, m metrics.BusinessMetrics) PortalUseCase {
	return &portalUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *portalUseCaseWithMetrics) GetView(ctx context.Context, token, remoteAddr string) (*domain.PortalView, error) {
	start := time.Now()
	view, err := p.next.GetView(ctx, token, remoteAddr)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "portal", "portal_view", status)
	p.metrics.RecordDuration(ctx, "portal", "portal_view", time.Since(start), status)

	return view, err
}

func (p *portalUseCaseWithMetrics) ListDocuments(ctx context.Context, token, remoteAddr string) ([]domain.PortalDocument, error) {
	start := time.Now()
	docs, err := p.next.ListDocuments(ctx, token, remoteAddr)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "portal", "portal_documents", status)
	p.metrics.RecordDuration(ctx, "portal", "portal_documents", time.Since(start), status)

	return docs, err
}

func (p *portalUseCaseWithMetrics) UploadDocument(ctx context.Context, input PortalUploadInput) error {
	start := time.Now()
	err := p.next.UploadDocument(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "portal", "portal_upload", status)
	p.metrics.RecordDuration(ctx, "portal", "portal_upload", time.Since(start), status)

	return err
}

// accessUseCaseWithMetrics decorates AccessUseCase with metrics instrumentation.
type accessUseCaseWithMetrics struct {
	next    AccessUseCase
	metrics metrics.BusinessMetrics
}

// NewAccessUseCaseWithMetrics wraps an AccessUseCase with metrics recording.
func NewAccessUseCaseWithMetrics(useCase AccessUseCase, m metrics.BusinessMetrics) AccessUseCase {
	return &accessUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *accessUseCaseWithMetrics) Issue(ctx context.Context, input IssueAccessInput) (*domain.PortalAccess, string, error) {
	start := time.Now()
	access, plain, err := a.next.Issue(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "portal", "access_issue", status)
	a.metrics.RecordDuration(ctx, "portal", "access_issue", time.Since(start), status)

	return access, plain, err
}

func (a *accessUseCaseWithMetrics) Validate(ctx context.Context, token, remoteAddr string) (*domain.PortalAccess, error) {
	start := time.Now()
	access, err := a.next.Validate(ctx, token, remoteAddr)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "portal", "access_validate", status)
	a.metrics.RecordDuration(ctx, "portal", "access_validate", time.Since(start), status)

	return access, err
}

func (a *accessUseCaseWithMetrics) Revoke(ctx context.Context, input RevokeAccessInput) error {
	start := time.Now()
	err := a.next.Revoke(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "portal", "access_revoke", status)
	a.metrics.RecordDuration(ctx, "portal", "access_revoke", time.Since(start), status)

	return err
}
