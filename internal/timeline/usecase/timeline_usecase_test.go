package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tribunatech/casevault/internal/errors"
	"github.com/tribunatech/casevault/internal/timeline/domain"
)

// MockTxManager is a mock implementation of database.TxManager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// MockTimelineRepository is a mock implementation of TimelineRepository
type MockTimelineRepository struct {
	mock.Mock
}

func (m *MockTimelineRepository) Create(ctx context.Context, timeline *domain.Timeline) error {
	args := m.Called(ctx, timeline)
	return args.Error(0)
}

func (m *MockTimelineRepository) GetByCaseID(ctx context.Context, caseID uuid.UUID) (*domain.Timeline, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Timeline), args.Error(1)
}

func (m *MockTimelineRepository) Update(ctx context.Context, timeline *domain.Timeline) error {
	args := m.Called(ctx, timeline)
	return args.Error(0)
}

func TestTimelineUseCase_AdvanceStage(t *testing.T) {
	ctx := context.Background()

	newFixture := func(caseID uuid.UUID) (*MockTimelineRepository, TimelineUseCase, *domain.Timeline) {
		txManager := &MockTxManager{}
		repo := &MockTimelineRepository{}
		txManager.On("WithTx", ctx, mock.Anything).Return(nil)

		timeline := domain.NewTimeline(caseID, "Dra. Ana Lima", time.Now())
		return repo, NewTimelineUseCase(txManager, repo), timeline
	}

	t.Run("advances and persists", func(t *testing.T) {
		caseID := uuid.Must(uuid.NewV7())
		repo, uc, timeline := newFixture(caseID)

		repo.On("GetByCaseID", ctx, caseID).Return(timeline, nil)
		repo.On("Update", ctx, timeline).Return(nil)

		result, err := uc.AdvanceStage(ctx, AdvanceStageInput{
			CaseID:    caseID,
			Stage:     "FILED",
			Notes:     "Protocolo no TJSP",
			UpdatedBy: "Dra. Ana Lima",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.StageFiled, result.CurrentStage)
		assert.Equal(t, 37, result.ProgressPercent())
		require.Len(t, result.Milestones, 2)
		assert.Equal(t, "Protocolo no TJSP", result.Milestones[1].Notes)

		repo.AssertExpectations(t)
	})

	t.Run("backward transition is rejected before persisting", func(t *testing.T) {
		caseID := uuid.Must(uuid.NewV7())
		repo, uc, timeline := newFixture(caseID)
		require.NoError(t, timeline.Advance(domain.StageHearing, "", "Dra. Ana Lima", time.Now()))

		repo.On("GetByCaseID", ctx, caseID).Return(timeline, nil)

		_, err := uc.AdvanceStage(ctx, AdvanceStageInput{
			CaseID:    caseID,
			Stage:     "ANALYSIS",
			UpdatedBy: "Dra. Ana Lima",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("unknown stage", func(t *testing.T) {
		caseID := uuid.Must(uuid.NewV7())
		repo, uc, _ := newFixture(caseID)

		_, err := uc.AdvanceStage(ctx, AdvanceStageInput{
			CaseID:    caseID,
			Stage:     "SETTLED",
			UpdatedBy: "Dra. Ana Lima",
		})
		assert.ErrorIs(t, err, domain.ErrUnknownStage)
		repo.AssertNotCalled(t, "GetByCaseID")
	})

	t.Run("concurrent update surfaces as conflict", func(t *testing.T) {
		caseID := uuid.Must(uuid.NewV7())
		repo, uc, timeline := newFixture(caseID)

		repo.On("GetByCaseID", ctx, caseID).Return(timeline, nil)
		repo.On("Update", ctx, timeline).Return(domain.ErrStaleTimeline)

		_, err := uc.AdvanceStage(ctx, AdvanceStageInput{
			CaseID:    caseID,
			Stage:     "ANALYSIS",
			UpdatedBy: "Dra. Ana Lima",
		})
		assert.ErrorIs(t, err, domain.ErrStaleTimeline)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("timeline not found", func(t *testing.T) {
		caseID := uuid.Must(uuid.NewV7())
		repo, uc, _ := newFixture(caseID)

		repo.On("GetByCaseID", ctx, caseID).Return(nil, domain.ErrTimelineNotFound)

		_, err := uc.AdvanceStage(ctx, AdvanceStageInput{
			CaseID:    caseID,
			Stage:     "ANALYSIS",
			UpdatedBy: "Dra. Ana Lima",
		})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("validation failures", func(t *testing.T) {
		_, uc, _ := newFixture(uuid.Must(uuid.NewV7()))

		_, err := uc.AdvanceStage(ctx, AdvanceStageInput{Stage: "FILED", UpdatedBy: "x"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "missing case id")

		_, err = uc.AdvanceStage(ctx, AdvanceStageInput{CaseID: uuid.Must(uuid.NewV7()), UpdatedBy: "x"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "missing stage")

		_, err = uc.AdvanceStage(ctx, AdvanceStageInput{CaseID: uuid.Must(uuid.NewV7()), Stage: "FILED"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "missing author")
	})
}
