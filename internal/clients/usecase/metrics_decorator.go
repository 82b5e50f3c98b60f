package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/clients/domain"
	"github.com/tribunatech/casevault/internal/metrics"
)

// clientUseCaseWithMetrics decorates ClientUseCase with metrics instrumentation.
type clientUseCaseWithMetrics struct {
	next    ClientUseCase
	metrics metrics.BusinessMetrics
}

// NewClientUseCaseWithMetrics wraps a ClientUseCase with metrics recording.
func NewClientUseCaseWithMetrics(useCase ClientUseCase, m metrics.BusinessMetrics) ClientUseCase {
	return &clientUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *clientUseCaseWithMetrics) CreateClient(
	ctx context.Context,
	input CreateClientInput,
) (*domain.Client, error) {
	start := time.Now()
	client, err := c.next.CreateClient(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "clients", "client_create", status)
	c.metrics.RecordDuration(ctx, "clients", "client_create", time.Since(start), status)

	return client, err
}

func (c *clientUseCaseWithMetrics) GetClient(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	start := time.Now()
	client, err := c.next.GetClient(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "clients", "client_get", status)
	c.metrics.RecordDuration(ctx, "clients", "client_get", time.Since(start), status)

	return client, err
}

func (c *clientUseCaseWithMetrics) ListClients(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Client, error) {
	start := time.Now()
	clients, err := c.next.ListClients(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "clients", "client_list", status)
	c.metrics.RecordDuration(ctx, "clients", "client_list", time.Since(start), status)

	return clients, err
}
