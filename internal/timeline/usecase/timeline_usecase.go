// Package usecase implements the timeline business logic.
package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/database"
	"github.com/tribunatech/casevault/internal/timeline/domain"
	appValidation "github.com/tribunatech/casevault/internal/validation"
)

// AdvanceStageInput contains the input data for advancing a case's journey.
type AdvanceStageInput struct {
	CaseID    uuid.UUID `json:"case_id"`
	Stage     string    `json:"stage"`
	Notes     string    `json:"notes"`
	UpdatedBy string    `json:"updated_by"`
}

// TimelineUseCase defines the interface for timeline business logic operations.
type TimelineUseCase interface {
	AdvanceStage(ctx context.Context, input AdvanceStageInput) (*domain.Timeline, error)
	GetByCaseID(ctx context.Context, caseID uuid.UUID) (*domain.Timeline, error)
}

// TimelineRepository defines timeline repository operations.
type TimelineRepository interface {
	Create(ctx context.Context, timeline *domain.Timeline) error
	GetByCaseID(ctx context.Context, caseID uuid.UUID) (*domain.Timeline, error)
	Update(ctx context.Context, timeline *domain.Timeline) error
}

type timelineUseCase struct {
	txManager    database.TxManager
	timelineRepo TimelineRepository
}

// NewTimelineUseCase creates a new TimelineUseCase.
func NewTimelineUseCase(txManager database.TxManager, timelineRepo TimelineRepository) TimelineUseCase {
	return &timelineUseCase{
		txManager:    txManager,
		timelineRepo: timelineRepo,
	}
}

func (uc *timelineUseCase) validateAdvanceStageInput(input AdvanceStageInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Stage,
			validation.Required.Error("stage is required"),
		),
		validation.Field(&input.Notes,
			validation.Length(0, 2000).Error("notes must be at most 2000 characters"),
		),
		validation.Field(&input.UpdatedBy,
			validation.Required.Error("updated_by is required"),
			appValidation.NotBlank,
		),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	if input.CaseID == uuid.Nil {
		return appValidation.WrapValidationError(validation.NewError("validation_required", "case_id is required"))
	}
	return nil
}

// AdvanceStage moves a case forward in its journey and records the milestone.
//
// Load, advance, and persist run in one transaction; the persist checks the
// version the timeline was loaded at, so two staff members advancing the same
// case concurrently cannot silently overwrite each other. The loser gets a
// Conflict and retries against fresh state.
func (uc *timelineUseCase) AdvanceStage(ctx context.Context, input AdvanceStageInput) (*domain.Timeline, error) {
	if err := uc.validateAdvanceStageInput(input); err != nil {
		return nil, err
	}

	stage, err := domain.ParseStage(input.Stage)
	if err != nil {
		return nil, err
	}

	var timeline *domain.Timeline
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		timeline, err = uc.timelineRepo.GetByCaseID(ctx, input.CaseID)
		if err != nil {
			return err
		}

		if err := timeline.Advance(stage, strings.TrimSpace(input.Notes), input.UpdatedBy, time.Now()); err != nil {
			return err
		}

		return uc.timelineRepo.Update(ctx, timeline)
	})
	if err != nil {
		return nil, err
	}

	return timeline, nil
}

// GetByCaseID retrieves the timeline of a case.
func (uc *timelineUseCase) GetByCaseID(ctx context.Context, caseID uuid.UUID) (*domain.Timeline, error) {
	return uc.timelineRepo.GetByCaseID(ctx, caseID)
}
