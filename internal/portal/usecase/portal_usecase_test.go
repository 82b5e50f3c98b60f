package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/tribunatech/casevault/internal/audit/domain"
	auditUsecase "github.com/tribunatech/casevault/internal/audit/usecase"
	casesDomain "github.com/tribunatech/casevault/internal/cases/domain"
	documentsDomain "github.com/tribunatech/casevault/internal/documents/domain"
	documentsUsecase "github.com/tribunatech/casevault/internal/documents/usecase"
	apperrors "github.com/tribunatech/casevault/internal/errors"
	"github.com/tribunatech/casevault/internal/portal/domain"
	"github.com/tribunatech/casevault/internal/portal/service"
	timelineDomain "github.com/tribunatech/casevault/internal/timeline/domain"
)

// MockAccessUseCase is a mock implementation of AccessUseCase
type MockAccessUseCase struct {
	mock.Mock
}

func (m *MockAccessUseCase) Issue(ctx context.Context, input IssueAccessInput) (*domain.PortalAccess, string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.PortalAccess), args.String(1), args.Error(2)
}

func (m *MockAccessUseCase) Validate(ctx context.Context, token, remoteAddr string) (*domain.PortalAccess, error) {
	args := m.Called(ctx, token, remoteAddr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PortalAccess), args.Error(1)
}

func (m *MockAccessUseCase) Revoke(ctx context.Context, input RevokeAccessInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

// MockTimelineRepository is a mock implementation of TimelineRepository
type MockTimelineRepository struct {
	mock.Mock
}

func (m *MockTimelineRepository) GetByCaseID(ctx context.Context, caseID uuid.UUID) (*timelineDomain.Timeline, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timelineDomain.Timeline), args.Error(1)
}

// MockDocumentService is a mock implementation of DocumentService
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, input documentsUsecase.UploadDocumentInput) (*documentsDomain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentsDomain.Document), args.Error(1)
}

func (m *MockDocumentService) ListVisibleByCase(ctx context.Context, caseID uuid.UUID) ([]*documentsDomain.Document, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documentsDomain.Document), args.Error(1)
}

type portalFixture struct {
	access       *MockAccessUseCase
	caseRepo     *MockCaseRepository
	timelineRepo *MockTimelineRepository
	documents    *MockDocumentService
	auditor      *MockAccessAuditor
	uc           PortalUseCase
}

func newPortalFixture(t *testing.T) *portalFixture {
	t.Helper()

	f := &portalFixture{
		access:       &MockAccessUseCase{},
		caseRepo:     &MockCaseRepository{},
		timelineRepo: &MockTimelineRepository{},
		documents:    &MockDocumentService{},
		auditor:      &MockAccessAuditor{},
	}
	f.uc = NewPortalUseCase(f.access, f.caseRepo, f.timelineRepo, f.documents, f.auditor, service.NewTokenService())
	return f
}

func grantedAccess() *domain.PortalAccess {
	return &domain.PortalAccess{
		ID:        uuid.Must(uuid.NewV7()),
		ClientID:  uuid.Must(uuid.NewV7()),
		CaseID:    uuid.Must(uuid.NewV7()),
		TokenHash: service.NewTokenService().Hash("portal-token"),
		IsActive:  true,
	}
}

func TestPortalUseCase_GetView(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles the client projection", func(t *testing.T) {
		f := newPortalFixture(t)
		access := grantedAccess()
		now := time.Now().UTC()

		timeline := timelineDomain.NewTimeline(access.CaseID, "Dra. Ana Lima", now)
		require.NoError(t, timeline.Advance(timelineDomain.StageFiled, "Protocolado no TJSP", "Dra. Ana Lima", now))

		f.access.On("Validate", ctx, "portal-token", "203.0.113.7").Return(access, nil)
		f.caseRepo.On("GetByID", mock.Anything, access.CaseID).
			Return(&casesDomain.Case{ID: access.CaseID, ClientID: access.ClientID, Title: "Ação de cobrança"}, nil)
		f.timelineRepo.On("GetByCaseID", mock.Anything, access.CaseID).Return(timeline, nil)
		f.documents.On("ListVisibleByCase", mock.Anything, access.CaseID).
			Return([]*documentsDomain.Document{{ID: uuid.Must(uuid.NewV7()), Title: "Petição inicial", VisibleToClient: true}}, nil)
		f.auditor.On("RecordBestEffort", ctx, auditAction(auditDomain.ActionViewTimeline)).Return()

		view, err := f.uc.GetView(ctx, "portal-token", "203.0.113.7")
		require.NoError(t, err)

		assert.Equal(t, "Ação de cobrança", view.CaseTitle)
		assert.Equal(t, timelineDomain.StageFiled, view.CurrentStage)
		assert.Equal(t, 37, view.ProgressPercent)
		require.Len(t, view.Milestones, 2)
		assert.Equal(t, "Triagem Inicial", view.Milestones[0].StageLabel)
		require.Len(t, view.Documents, 1)
		assert.Equal(t, "Petição inicial", view.Documents[0].Title)
		f.auditor.AssertExpectations(t)
	})

	t.Run("invalid token passes through", func(t *testing.T) {
		f := newPortalFixture(t)

		f.access.On("Validate", ctx, "bad", "203.0.113.7").Return(nil, domain.ErrInvalidToken)

		_, err := f.uc.GetView(ctx, "bad", "203.0.113.7")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
		f.caseRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("load failure collapses to invalid token", func(t *testing.T) {
		f := newPortalFixture(t)
		access := grantedAccess()

		f.access.On("Validate", ctx, "portal-token", "203.0.113.7").Return(access, nil)
		f.caseRepo.On("GetByID", mock.Anything, access.CaseID).Return(nil, apperrors.New("database down"))
		f.timelineRepo.On("GetByCaseID", mock.Anything, access.CaseID).
			Return(timelineDomain.NewTimeline(access.CaseID, "staff", time.Now()), nil).Maybe()
		f.documents.On("ListVisibleByCase", mock.Anything, access.CaseID).
			Return([]*documentsDomain.Document{}, nil).Maybe()
		f.auditor.On("RecordBestEffort", ctx, mock.Anything).Return()

		_, err := f.uc.GetView(ctx, "portal-token", "203.0.113.7")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}

func TestPortalUseCase_ListDocuments(t *testing.T) {
	ctx := context.Background()
	f := newPortalFixture(t)
	access := grantedAccess()

	docs := []*documentsDomain.Document{
		{ID: uuid.Must(uuid.NewV7()), Title: "Contrato", ContentType: "application/pdf", SizeBytes: 1024},
	}

	f.access.On("Validate", ctx, "portal-token", "203.0.113.7").Return(access, nil)
	f.documents.On("ListVisibleByCase", ctx, access.CaseID).Return(docs, nil)
	f.auditor.On("RecordBestEffort", ctx, auditAction(auditDomain.ActionViewDocuments)).Return()

	got, err := f.uc.ListDocuments(ctx, "portal-token", "203.0.113.7")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Contrato", got[0].Title)
	assert.Equal(t, int64(1024), got[0].SizeBytes)
	f.auditor.AssertExpectations(t)
}

func TestPortalUseCase_UploadDocument(t *testing.T) {
	ctx := context.Background()

	input := PortalUploadInput{
		Token:       "portal-token",
		Title:       "Comprovante de pagamento",
		Content:     []byte("conteudo"),
		ContentType: "application/pdf",
		RemoteAddr:  "203.0.113.7",
	}

	t.Run("uploads as client-visible evidence", func(t *testing.T) {
		f := newPortalFixture(t)
		access := grantedAccess()

		f.access.On("Validate", ctx, "portal-token", "203.0.113.7").Return(access, nil)
		f.documents.On("Upload", ctx, mock.MatchedBy(func(in documentsUsecase.UploadDocumentInput) bool {
			return in.CaseID == access.CaseID &&
				in.DocumentType == string(documentsDomain.DocumentTypeEvidence) &&
				in.VisibleToClient &&
				in.UploadedBy == "client"
		})).Return(&documentsDomain.Document{ID: uuid.Must(uuid.NewV7())}, nil)
		f.auditor.On("RecordBestEffort", ctx, auditAction(auditDomain.ActionUploadDocument)).Return()

		require.NoError(t, f.uc.UploadDocument(ctx, input))
		f.auditor.AssertExpectations(t)
	})

	t.Run("invalid token blocks the upload", func(t *testing.T) {
		f := newPortalFixture(t)

		f.access.On("Validate", ctx, "portal-token", "203.0.113.7").Return(nil, domain.ErrInvalidToken)

		err := f.uc.UploadDocument(ctx, input)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
		f.documents.AssertNotCalled(t, "Upload")
	})

	t.Run("upload failure is audited as unsuccessful", func(t *testing.T) {
		f := newPortalFixture(t)
		access := grantedAccess()

		f.access.On("Validate", ctx, "portal-token", "203.0.113.7").Return(access, nil)
		f.documents.On("Upload", ctx, mock.Anything).Return(nil, documentsDomain.ErrEmptyDocument)
		f.auditor.On("RecordBestEffort", ctx, mock.MatchedBy(func(in auditUsecase.RecordAccessInput) bool {
			return in.Action == auditDomain.ActionUploadDocument && !in.Success
		})).Return()

		err := f.uc.UploadDocument(ctx, input)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		f.auditor.AssertExpectations(t)
	})
}
