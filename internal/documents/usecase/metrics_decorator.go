package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/documents/domain"
	"github.com/tribunatech/casevault/internal/metrics"
)

// documentUseCaseWithMetrics decorates DocumentUseCase with metrics instrumentation.
type documentUseCaseWithMetrics struct {
	next    DocumentUseCase
	metrics metrics.BusinessMetrics
}

// NewDocumentUseCaseWithMetrics wraps a DocumentUseCase with metrics recording.
func NewDocumentUseCaseWithMetrics(useCase DocumentUseCase, m metrics.BusinessMetrics) DocumentUseCase {
	return &documentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (d *documentUseCaseWithMetrics) Upload(
	ctx context.Context,
	input UploadDocumentInput,
) (*domain.Document, error) {
	start := time.Now()
	doc, err := d.next.Upload(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "documents", "document_upload", status)
	d.metrics.RecordDuration(ctx, "documents", "document_upload", time.Since(start), status)

	return doc, err
}

func (d *documentUseCaseWithMetrics) ListByCase(
	ctx context.Context,
	caseID uuid.UUID,
) ([]*domain.Document, error) {
	start := time.Now()
	docs, err := d.next.ListByCase(ctx, caseID)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "documents", "document_list", status)
	d.metrics.RecordDuration(ctx, "documents", "document_list", time.Since(start), status)

	return docs, err
}

func (d *documentUseCaseWithMetrics) ListVisibleByCase(
	ctx context.Context,
	caseID uuid.UUID,
) ([]*domain.Document, error) {
	start := time.Now()
	docs, err := d.next.ListVisibleByCase(ctx, caseID)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "documents", "document_list_visible", status)
	d.metrics.RecordDuration(ctx, "documents", "document_list_visible", time.Since(start), status)

	return docs, err
}
