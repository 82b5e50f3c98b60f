// Package http provides HTTP handlers for audit log operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tribunatech/casevault/internal/audit/http/dto"
	auditUseCase "github.com/tribunatech/casevault/internal/audit/usecase"
	"github.com/tribunatech/casevault/internal/httputil"
)

// AuditHandler handles staff HTTP requests for the portal access audit trail.
type AuditHandler struct {
	auditUseCase auditUseCase.AuditUseCase
	logger       *slog.Logger
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(uc auditUseCase.AuditUseCase, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		auditUseCase: uc,
		logger:       logger,
	}
}

// ListHandler retrieves a page of audit records, newest first.
// GET /v1/audit-logs?offset=0&limit=50
func (h *AuditHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	logs, err := h.auditUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccessLogsResponse(logs, offset, limit))
}
