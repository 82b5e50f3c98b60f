package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/cases/domain"
	"github.com/tribunatech/casevault/internal/metrics"
)

// caseUseCaseWithMetrics decorates CaseUseCase with metrics instrumentation.
type caseUseCaseWithMetrics struct {
	next    CaseUseCase
	metrics metrics.BusinessMetrics
}

// NewCaseUseCaseWithMetrics wraps a CaseUseCase with metrics recording.
func NewCaseUseCaseWithMetrics(useCase CaseUseCase, m metrics.BusinessMetrics) CaseUseCase {
	return &caseUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *caseUseCaseWithMetrics) CreateCase(ctx context.Context, input CreateCaseInput) (*domain.Case, error) {
	start := time.Now()
	legalCase, err := c.next.CreateCase(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "cases", "case_create", status)
	c.metrics.RecordDuration(ctx, "cases", "case_create", time.Since(start), status)

	return legalCase, err
}

func (c *caseUseCaseWithMetrics) GetCase(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	start := time.Now()
	legalCase, err := c.next.GetCase(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "cases", "case_get", status)
	c.metrics.RecordDuration(ctx, "cases", "case_get", time.Since(start), status)

	return legalCase, err
}

func (c *caseUseCaseWithMetrics) ListCases(ctx context.Context, offset, limit int) ([]*domain.Case, error) {
	start := time.Now()
	cases, err := c.next.ListCases(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "cases", "case_list", status)
	c.metrics.RecordDuration(ctx, "cases", "case_list", time.Since(start), status)

	return cases, err
}

func (c *caseUseCaseWithMetrics) ListCasesByClient(
	ctx context.Context,
	clientID uuid.UUID,
	offset, limit int,
) ([]*domain.Case, error) {
	start := time.Now()
	cases, err := c.next.ListCasesByClient(ctx, clientID, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "cases", "case_list_by_client", status)
	c.metrics.RecordDuration(ctx, "cases", "case_list_by_client", time.Since(start), status)

	return cases, err
}
