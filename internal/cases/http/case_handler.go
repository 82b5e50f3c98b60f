// Package http provides HTTP handlers for case management operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/cases/http/dto"
	casesUseCase "github.com/tribunatech/casevault/internal/cases/usecase"
	"github.com/tribunatech/casevault/internal/httputil"
)

// CaseHandler handles HTTP requests for case management operations.
type CaseHandler struct {
	caseUseCase casesUseCase.CaseUseCase
	logger      *slog.Logger
}

// NewCaseHandler creates a new case handler.
func NewCaseHandler(caseUseCase casesUseCase.CaseUseCase, logger *slog.Logger) *CaseHandler {
	return &CaseHandler{
		caseUseCase: caseUseCase,
		logger:      logger,
	}
}

// CreateHandler registers a new case and opens its timeline.
// POST /v1/cases
func (h *CaseHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateCaseRequest
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

	input := dto.ToCreateCaseInput(req, clientID, httputil.StaffActor(c))
	legalCase, err := h.caseUseCase.CreateCase(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCaseResponse(legalCase))
}

// GetHandler retrieves a case by ID.
// GET /v1/cases/:id
func (h *CaseHandler) GetHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	legalCase, err := h.caseUseCase.GetCase(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToCaseResponse(legalCase))
}

// ListHandler retrieves a page of cases, optionally filtered by client.
// GET /v1/cases?offset=0&limit=50&client_id=...
func (h *CaseHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if clientIDParam := c.Query("client_id"); clientIDParam != "" {
		clientID, err := uuid.Parse(clientIDParam)
		if err != nil {
			httputil.HandleValidationErrorGin(c, err, h.logger)
			return
		}

		cases, err := h.caseUseCase.ListCasesByClient(c.Request.Context(), clientID, offset, limit)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}

		c.JSON(http.StatusOK, dto.ToListCasesResponse(cases, offset, limit))
		return
	}

	cases, err := h.caseUseCase.ListCases(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListCasesResponse(cases, offset, limit))
}
