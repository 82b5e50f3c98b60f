// Package http provides HTTP handlers for case timeline operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/httputil"
	"github.com/tribunatech/casevault/internal/timeline/http/dto"
	timelineUseCase "github.com/tribunatech/casevault/internal/timeline/usecase"
)

// TimelineHandler handles HTTP requests for case timeline operations.
type TimelineHandler struct {
	timelineUseCase timelineUseCase.TimelineUseCase
	logger          *slog.Logger
}

// NewTimelineHandler creates a new timeline handler.
func NewTimelineHandler(uc timelineUseCase.TimelineUseCase, logger *slog.Logger) *TimelineHandler {
	return &TimelineHandler{
		timelineUseCase: uc,
		logger:          logger,
	}
}

// AdvanceHandler moves a case forward in its journey.
// POST /v1/cases/:id/advance
func (h *TimelineHandler) AdvanceHandler(c *gin.Context) {
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.AdvanceStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	timeline, err := h.timelineUseCase.AdvanceStage(c.Request.Context(), timelineUseCase.AdvanceStageInput{
		CaseID:    caseID,
		Stage:     req.Stage,
		Notes:     req.Notes,
		UpdatedBy: httputil.StaffActor(c),
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimelineResponse(timeline))
}

// GetHandler retrieves the timeline of a case.
// GET /v1/cases/:id/timeline
func (h *TimelineHandler) GetHandler(c *gin.Context) {
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	timeline, err := h.timelineUseCase.GetByCaseID(c.Request.Context(), caseID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimelineResponse(timeline))
}
