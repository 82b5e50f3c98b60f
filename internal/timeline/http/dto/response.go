// Package dto provides data transfer objects for the timeline HTTP layer.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/timeline/domain"
)

// MilestoneResponse represents one recorded milestone.
type MilestoneResponse struct {
	Stage      string    `json:"stage"`
	StageLabel string    `json:"stage_label"`
	Notes      string    `json:"notes"`
	UpdatedBy  string    `json:"updated_by"`
	Date       time.Time `json:"date"`
}

// TimelineResponse represents the API response for a case timeline.
type TimelineResponse struct {
	CaseID            uuid.UUID           `json:"case_id"`
	CurrentStage      string              `json:"current_stage"`
	CurrentStageLabel string              `json:"current_stage_label"`
	ProgressPercent   int                 `json:"progress_percent"`
	Version           int                 `json:"version"`
	Milestones        []MilestoneResponse `json:"milestones"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// ToTimelineResponse converts a domain Timeline to a TimelineResponse DTO.
func ToTimelineResponse(timeline *domain.Timeline) TimelineResponse {
	milestones := make([]MilestoneResponse, 0, len(timeline.Milestones))
	for _, m := range timeline.Milestones {
		milestones = append(milestones, MilestoneResponse{
			Stage:      string(m.Stage),
			StageLabel: m.Stage.Label(),
			Notes:      m.Notes,
			UpdatedBy:  m.UpdatedBy,
			Date:       m.Date,
		})
	}

	return TimelineResponse{
		CaseID:            timeline.CaseID,
		CurrentStage:      string(timeline.CurrentStage),
		CurrentStageLabel: timeline.CurrentStage.Label(),
		ProgressPercent:   timeline.ProgressPercent(),
		Version:           timeline.Version,
		Milestones:        milestones,
		UpdatedAt:         timeline.UpdatedAt,
	}
}
