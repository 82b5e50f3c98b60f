// Package http provides HTTP handlers for the client portal.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/httputil"
	"github.com/tribunatech/casevault/internal/portal/http/dto"
	portalUseCase "github.com/tribunatech/casevault/internal/portal/usecase"
)

// AccessHandler handles staff HTTP requests for portal access grants.
type AccessHandler struct {
	accessUseCase portalUseCase.AccessUseCase
	logger        *slog.Logger
}

// NewAccessHandler creates a new access handler.
func NewAccessHandler(accessUseCase portalUseCase.AccessUseCase, logger *slog.Logger) *AccessHandler {
	return &AccessHandler{
		accessUseCase: accessUseCase,
		logger:        logger,
	}
}

// IssueHandler issues a portal token for a client and case pair. The plain
// token appears in this response only.
// POST /v1/portal-access
func (h *AccessHandler) IssueHandler(c *gin.Context) {
	var req dto.IssueAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	caseID, err := uuid.Parse(req.CaseID)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	access, token, err := h.accessUseCase.Issue(c.Request.Context(), portalUseCase.IssueAccessInput{
		ClientID:   clientID,
		CaseID:     caseID,
		RemoteAddr: c.ClientIP(),
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToIssueAccessResponse(access, token))
}

// RevokeHandler revokes the active portal token for a client and case pair.
// POST /v1/portal-access/revoke
func (h *AccessHandler) RevokeHandler(c *gin.Context) {
	var req dto.RevokeAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	caseID, err := uuid.Parse(req.CaseID)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	err = h.accessUseCase.Revoke(c.Request.Context(), portalUseCase.RevokeAccessInput{
		ClientID:   clientID,
		CaseID:     caseID,
		RemoteAddr: c.ClientIP(),
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
