package app

import (
	"context"
	"fmt"

	auditHTTP "github.com/tribunatech/casevault/internal/audit/http"
	casesHTTP "github.com/tribunatech/casevault/internal/cases/http"
	clientsHTTP "github.com/tribunatech/casevault/internal/clients/http"
	documentsHTTP "github.com/tribunatech/casevault/internal/documents/http"
	"github.com/tribunatech/casevault/internal/http"
	portalHTTP "github.com/tribunatech/casevault/internal/portal/http"
	timelineHTTP "github.com/tribunatech/casevault/internal/timeline/http"
)

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	logger := c.Logger()

	clientUseCase, err := c.ClientUseCase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get client use case for http server: %w", err)
	}

	caseUseCase, err := c.CaseUseCase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get case use case for http server: %w", err)
	}

	timelineUseCase, err := c.TimelineUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get timeline use case for http server: %w", err)
	}

	documentUseCase, err := c.DocumentUseCase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get document use case for http server: %w", err)
	}

	accessUseCase, err := c.AccessUseCase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get access use case for http server: %w", err)
	}

	portalUseCase, err := c.PortalUseCase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get portal use case for http server: %w", err)
	}

	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for http server: %w", err)
	}

	handlers := http.Handlers{
		Client:   clientsHTTP.NewClientHandler(clientUseCase, logger),
		Case:     casesHTTP.NewCaseHandler(caseUseCase, logger),
		Timeline: timelineHTTP.NewTimelineHandler(timelineUseCase, logger),
		Document: documentsHTTP.NewDocumentHandler(documentUseCase, logger),
		Access:   portalHTTP.NewAccessHandler(accessUseCase, logger),
		Portal:   portalHTTP.NewPortalHandler(portalUseCase, logger),
		Audit:    auditHTTP.NewAuditHandler(auditUseCase, logger),
	}

	return http.NewServer(c.config, handlers, logger), nil
}
