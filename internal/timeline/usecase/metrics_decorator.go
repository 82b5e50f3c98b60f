package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/metrics"
	"github.com/tribunatech/casevault/internal/timeline/domain"
)

// timelineUseCaseWithMetrics decorates TimelineUseCase with metrics instrumentation.
type timelineUseCaseWithMetrics struct {
	next    TimelineUseCase
	metrics metrics.BusinessMetrics
}

// NewTimelineUseCaseWithMetrics wraps a TimelineUseCase with metrics recording.
func NewTimelineUseCaseWithMetrics(useCase TimelineUseCase, m metrics.BusinessMetrics) TimelineUseCase {
	return &timelineUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *timelineUseCaseWithMetrics) AdvanceStage(
	ctx context.Context,
	input AdvanceStageInput,
) (*domain.Timeline, error) {
	start := time.Now()
	timeline, err := t.next.AdvanceStage(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "timeline", "stage_advance", status)
	t.metrics.RecordDuration(ctx, "timeline", "stage_advance", time.Since(start), status)

	return timeline, err
}

func (t *timelineUseCaseWithMetrics) GetByCaseID(
	ctx context.Context,
	caseID uuid.UUID,
) (*domain.Timeline, error) {
	start := time.Now()
	timeline, err := t.next.GetByCaseID(ctx, caseID)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "timeline", "timeline_get", status)
	t.metrics.RecordDuration(ctx, "timeline", "timeline_get", time.Since(start), status)

	return timeline, err
}
