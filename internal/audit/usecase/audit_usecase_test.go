package usecase

import (
	"context"
	"encoding/base64"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tribunatech/casevault/internal/audit/domain"
	"github.com/tribunatech/casevault/internal/audit/service"
	apperrors "github.com/tribunatech/casevault/internal/errors"
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

// MockAccessLogRepository is a mock implementation of AccessLogRepository
type MockAccessLogRepository struct {
	mock.Mock
}

func (m *MockAccessLogRepository) Create(ctx context.Context, log *domain.AccessLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAccessLogRepository) LastSignature(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockAccessLogRepository) List(ctx context.Context, offset, limit int) ([]*domain.AccessLog, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AccessLog), args.Error(1)
}

func (m *MockAccessLogRepository) ListChronological(ctx context.Context, offset, limit int) ([]*domain.AccessLog, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AccessLog), args.Error(1)
}

func testSigningKeyBase64() string {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return base64.StdEncoding.EncodeToString(key)
}

type auditFixture struct {
	txManager *MockTxManager
	logRepo   *MockAccessLogRepository
	uc        AuditUseCase
}

func newAuditFixture(t *testing.T) *auditFixture {
	t.Helper()

	f := &auditFixture{
		txManager: &MockTxManager{},
		logRepo:   &MockAccessLogRepository{},
	}

	uc, err := NewAuditUseCase(
		f.txManager, f.logRepo, service.NewAuditSigner(),
		testSigningKeyBase64(), slog.New(slog.DiscardHandler),
	)
	require.NoError(t, err)
	f.uc = uc
	return f
}

func TestNewAuditUseCase(t *testing.T) {
	txManager := &MockTxManager{}
	logRepo := &MockAccessLogRepository{}
	logger := slog.New(slog.DiscardHandler)

	t.Run("rejects invalid base64", func(t *testing.T) {
		_, err := NewAuditUseCase(txManager, logRepo, service.NewAuditSigner(), "not-base64!!", logger)
		assert.ErrorIs(t, err, domain.ErrInvalidSigningKey)
	})

	t.Run("rejects short key", func(t *testing.T) {
		short := base64.StdEncoding.EncodeToString([]byte("too short"))
		_, err := NewAuditUseCase(txManager, logRepo, service.NewAuditSigner(), short, logger)
		assert.ErrorIs(t, err, domain.ErrInvalidSigningKey)
	})
}

func TestAuditUseCase_Record(t *testing.T) {
	ctx := context.Background()
	caseID := uuid.Must(uuid.NewV7())

	input := RecordAccessInput{
		TokenPrefix: "a1b2c3d4",
		CaseID:      &caseID,
		Action:      domain.ActionViewTimeline,
		Success:     true,
		RemoteAddr:  "203.0.113.7",
	}

	t.Run("signs over the previous signature", func(t *testing.T) {
		f := newAuditFixture(t)
		prev := []byte{0xde, 0xad, 0xbe, 0xef}

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.logRepo.On("LastSignature", ctx).Return(prev, nil)

		var created *domain.AccessLog
		f.logRepo.On("Create", ctx, mock.AnythingOfType("*domain.AccessLog")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*domain.AccessLog)
			}).Return(nil)

		require.NoError(t, f.uc.Record(ctx, input))
		require.NotNil(t, created)
		assert.Len(t, created.Signature, 32)

		key, err := base64.StdEncoding.DecodeString(testSigningKeyBase64())
		require.NoError(t, err)
		signer := service.NewAuditSigner()
		assert.NoError(t, signer.Verify(key, created, prev))
		assert.ErrorIs(t, signer.Verify(key, created, nil), domain.ErrSignatureInvalid)
	})

	t.Run("genesis record chains from nil", func(t *testing.T) {
		f := newAuditFixture(t)

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.logRepo.On("LastSignature", ctx).Return(nil, nil)
		f.logRepo.On("Create", ctx, mock.Anything).Return(nil)

		assert.NoError(t, f.uc.Record(ctx, input))
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		f := newAuditFixture(t)

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.logRepo.On("LastSignature", ctx).Return(nil, apperrors.New("database down"))

		assert.Error(t, f.uc.Record(ctx, input))
		f.logRepo.AssertNotCalled(t, "Create")
	})

	t.Run("best effort swallows failure", func(t *testing.T) {
		f := newAuditFixture(t)

		f.txManager.On("WithTx", ctx, mock.Anything).Return(apperrors.New("database down"))

		f.uc.RecordBestEffort(ctx, input)
	})
}

func TestAuditUseCase_VerifyChain(t *testing.T) {
	ctx := context.Background()

	chainOf := func(t *testing.T, n int) []*domain.AccessLog {
		t.Helper()
		key, err := base64.StdEncoding.DecodeString(testSigningKeyBase64())
		require.NoError(t, err)
		signer := service.NewAuditSigner()

		logs := make([]*domain.AccessLog, 0, n)
		var prev []byte
		for i := 0; i < n; i++ {
			log := &domain.AccessLog{
				ID:          uuid.Must(uuid.NewV7()),
				TokenPrefix: "a1b2c3d4",
				Action:      domain.ActionViewDocuments,
				Success:     true,
				RemoteAddr:  "203.0.113.7",
			}
			log.Signature, err = signer.Sign(key, log, prev)
			require.NoError(t, err)
			prev = log.Signature
			logs = append(logs, log)
		}
		return logs
	}

	t.Run("intact chain verifies", func(t *testing.T) {
		f := newAuditFixture(t)
		logs := chainOf(t, 3)

		f.logRepo.On("ListChronological", ctx, 0, verifyBatchSize).Return(logs, nil)
		f.logRepo.On("ListChronological", ctx, verifyBatchSize, verifyBatchSize).Return([]*domain.AccessLog{}, nil)

		verified, err := f.uc.VerifyChain(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, verified)
	})

	t.Run("tampered record detected", func(t *testing.T) {
		f := newAuditFixture(t)
		logs := chainOf(t, 3)
		logs[1].Success = false

		f.logRepo.On("ListChronological", ctx, 0, verifyBatchSize).Return(logs, nil)

		verified, err := f.uc.VerifyChain(ctx)
		assert.ErrorIs(t, err, domain.ErrSignatureInvalid)
		assert.Equal(t, 1, verified)
	})

	t.Run("deleted record breaks successors", func(t *testing.T) {
		f := newAuditFixture(t)
		logs := chainOf(t, 3)
		withoutSecond := []*domain.AccessLog{logs[0], logs[2]}

		f.logRepo.On("ListChronological", ctx, 0, verifyBatchSize).Return(withoutSecond, nil)

		verified, err := f.uc.VerifyChain(ctx)
		assert.ErrorIs(t, err, domain.ErrSignatureInvalid)
		assert.Equal(t, 1, verified)
	})

	t.Run("empty chain verifies", func(t *testing.T) {
		f := newAuditFixture(t)

		f.logRepo.On("ListChronological", ctx, 0, verifyBatchSize).Return([]*domain.AccessLog{}, nil)

		verified, err := f.uc.VerifyChain(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, verified)
	})
}
