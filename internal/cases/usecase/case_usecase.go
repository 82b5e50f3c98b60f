// Package usecase implements the legal case business logic.
package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/cases/domain"
	clientsDomain "github.com/tribunatech/casevault/internal/clients/domain"
	cryptoDomain "github.com/tribunatech/casevault/internal/crypto/domain"
	"github.com/tribunatech/casevault/internal/database"
	timelineDomain "github.com/tribunatech/casevault/internal/timeline/domain"
	appValidation "github.com/tribunatech/casevault/internal/validation"
)

// CreateCaseInput contains the input data for case registration.
type CreateCaseInput struct {
	ClientID         uuid.UUID `json:"client_id"`
	Title            string    `json:"title"`
	Area             string    `json:"area"`
	ProcessNumber    string    `json:"process_number"`
	Description      string    `json:"description"`
	RiskLevel        string    `json:"risk_level"`
	ContingencyCents int64     `json:"contingency_cents"`
	CreatedBy        string    `json:"created_by"`
}

// CaseUseCase defines the interface for case business logic operations.
type CaseUseCase interface {
	CreateCase(ctx context.Context, input CreateCaseInput) (*domain.Case, error)
	GetCase(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	ListCases(ctx context.Context, offset, limit int) ([]*domain.Case, error)
	ListCasesByClient(ctx context.Context, clientID uuid.UUID, offset, limit int) ([]*domain.Case, error)
}

// CaseRepository defines case repository operations.
type CaseRepository interface {
	Create(ctx context.Context, legalCase *domain.Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Case, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, offset, limit int) ([]*domain.Case, error)
}

// ClientRepository defines the client lookups the case module needs.
type ClientRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*clientsDomain.Client, error)
}

// TimelineRepository defines the timeline operations the case module needs.
type TimelineRepository interface {
	Create(ctx context.Context, timeline *timelineDomain.Timeline) error
}

type caseUseCase struct {
	txManager    database.TxManager
	caseRepo     CaseRepository
	clientRepo   ClientRepository
	timelineRepo TimelineRepository
}

// NewCaseUseCase creates a new CaseUseCase.
func NewCaseUseCase(
	txManager database.TxManager,
	caseRepo CaseRepository,
	clientRepo ClientRepository,
	timelineRepo TimelineRepository,
) CaseUseCase {
	return &caseUseCase{
		txManager:    txManager,
		caseRepo:     caseRepo,
		clientRepo:   clientRepo,
		timelineRepo: timelineRepo,
	}
}

func (uc *caseUseCase) validateCreateCaseInput(input CreateCaseInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&input.Area,
			validation.Required.Error("area is required"),
		),
		validation.Field(&input.ProcessNumber,
			validation.Length(0, 100).Error("process_number must be at most 100 characters"),
		),
		validation.Field(&input.ContingencyCents,
			validation.Min(int64(0)).Error("contingency_cents must not be negative"),
		),
		validation.Field(&input.CreatedBy,
			validation.Required.Error("created_by is required"),
			appValidation.NotBlank,
		),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	if input.ClientID == uuid.Nil {
		return appValidation.WrapValidationError(validation.NewError("validation_required", "client_id is required"))
	}
	return nil
}

// CreateCase registers a new case and opens its timeline at the start of the
// journey. The case row, the timeline row, and the first milestone are
// written in one transaction so a case is never visible without a journey.
func (uc *caseUseCase) CreateCase(ctx context.Context, input CreateCaseInput) (*domain.Case, error) {
	if err := uc.validateCreateCaseInput(input); err != nil {
		return nil, err
	}

	area, err := domain.ParseArea(input.Area)
	if err != nil {
		return nil, err
	}

	riskLevel := domain.RiskLow
	if input.RiskLevel != "" {
		riskLevel, err = domain.ParseRiskLevel(input.RiskLevel)
		if err != nil {
			return nil, err
		}
	}

	if _, err := uc.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	legalCase := &domain.Case{
		ID:               uuid.Must(uuid.NewV7()),
		ClientID:         input.ClientID,
		Title:            strings.TrimSpace(input.Title),
		Area:             area,
		Status:           domain.StatusAnalysis,
		ProcessNumber:    cryptoDomain.NewProtectedValue(strings.TrimSpace(input.ProcessNumber)),
		Description:      strings.TrimSpace(input.Description),
		RiskLevel:        riskLevel,
		ContingencyCents: input.ContingencyCents,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.caseRepo.Create(ctx, legalCase); err != nil {
			return err
		}

		timeline := timelineDomain.NewTimeline(legalCase.ID, input.CreatedBy, time.Now())
		return uc.timelineRepo.Create(ctx, timeline)
	})
	if err != nil {
		return nil, err
	}

	return legalCase, nil
}

// GetCase retrieves a case by ID.
func (uc *caseUseCase) GetCase(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	return uc.caseRepo.GetByID(ctx, id)
}

// ListCases retrieves a page of cases.
func (uc *caseUseCase) ListCases(ctx context.Context, offset, limit int) ([]*domain.Case, error) {
	return uc.caseRepo.List(ctx, offset, limit)
}

// ListCasesByClient retrieves a page of one client's cases.
func (uc *caseUseCase) ListCasesByClient(
	ctx context.Context,
	clientID uuid.UUID,
	offset, limit int,
) ([]*domain.Case, error) {
	if _, err := uc.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return uc.caseRepo.ListByClient(ctx, clientID, offset, limit)
}
