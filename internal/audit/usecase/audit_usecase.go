// Package usecase implements the portal access audit business logic.
package usecase

import (
	"context"
	"encoding/base64"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/audit/domain"
	"github.com/tribunatech/casevault/internal/audit/service"
	"github.com/tribunatech/casevault/internal/database"

	apperrors "github.com/tribunatech/casevault/internal/errors"
)

// verifyBatchSize bounds how many records a verification pass loads at once.
const verifyBatchSize = 500

// RecordAccessInput contains the input data for appending an audit record.
type RecordAccessInput struct {
	TokenPrefix string
	CaseID      *uuid.UUID
	Action      domain.Action
	Success     bool
	RemoteAddr  string
}

// AuditUseCase defines the interface for audit business logic operations.
type AuditUseCase interface {
	Record(ctx context.Context, input RecordAccessInput) error
	RecordBestEffort(ctx context.Context, input RecordAccessInput)
	List(ctx context.Context, offset, limit int) ([]*domain.AccessLog, error)
	VerifyChain(ctx context.Context) (int, error)
}

// AccessLogRepository defines access log repository operations.
type AccessLogRepository interface {
	Create(ctx context.Context, log *domain.AccessLog) error
	LastSignature(ctx context.Context) ([]byte, error)
	List(ctx context.Context, offset, limit int) ([]*domain.AccessLog, error)
	ListChronological(ctx context.Context, offset, limit int) ([]*domain.AccessLog, error)
}

type auditUseCase struct {
	txManager  database.TxManager
	logRepo    AccessLogRepository
	signer     service.AuditSigner
	signingKey []byte
	logger     *slog.Logger
}

// NewAuditUseCase creates a new AuditUseCase. The signing key is the
// base64-encoded 32-byte value from configuration.
func NewAuditUseCase(
	txManager database.TxManager,
	logRepo AccessLogRepository,
	signer service.AuditSigner,
	signingKeyBase64 string,
	logger *slog.Logger,
) (AuditUseCase, error) {
	signingKey, err := base64.StdEncoding.DecodeString(signingKeyBase64)
	if err != nil {
		return nil, apperrors.Wrap(domain.ErrInvalidSigningKey, "audit signing key is not valid base64")
	}
	if len(signingKey) != 32 {
		return nil, domain.ErrInvalidSigningKey
	}

	return &auditUseCase{
		txManager:  txManager,
		logRepo:    logRepo,
		signer:     signer,
		signingKey: signingKey,
		logger:     logger,
	}, nil
}

// Record appends a signed audit record. The previous signature lookup and the
// insert share a transaction so the chain never forks under concurrency.
func (uc *auditUseCase) Record(ctx context.Context, input RecordAccessInput) error {
	log := &domain.AccessLog{
		ID:          uuid.Must(uuid.NewV7()),
		TokenPrefix: input.TokenPrefix,
		CaseID:      input.CaseID,
		Action:      input.Action,
		Success:     input.Success,
		RemoteAddr:  input.RemoteAddr,
		CreatedAt:   time.Now().UTC(),
	}

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		prevSignature, err := uc.logRepo.LastSignature(ctx)
		if err != nil {
			return err
		}

		log.Signature, err = uc.signer.Sign(uc.signingKey, log, prevSignature)
		if err != nil {
			return apperrors.Wrap(err, "failed to sign access log")
		}

		return uc.logRepo.Create(ctx, log)
	})
}

// RecordBestEffort appends an audit record and swallows failures. Read-path
// auditing must never turn a working portal request into an error.
func (uc *auditUseCase) RecordBestEffort(ctx context.Context, input RecordAccessInput) {
	if err := uc.Record(ctx, input); err != nil {
		uc.logger.Warn("failed to record access log",
			"action", input.Action, "token_prefix", input.TokenPrefix, "error", err)
	}
}

// List retrieves access logs newest first.
func (uc *auditUseCase) List(ctx context.Context, offset, limit int) ([]*domain.AccessLog, error) {
	return uc.logRepo.List(ctx, offset, limit)
}

// VerifyChain walks every record in chain order and verifies each signature
// against its contents and predecessor. Returns the number of records checked.
func (uc *auditUseCase) VerifyChain(ctx context.Context) (int, error) {
	var prevSignature []byte
	verified := 0

	for offset := 0; ; offset += verifyBatchSize {
		batch, err := uc.logRepo.ListChronological(ctx, offset, verifyBatchSize)
		if err != nil {
			return verified, err
		}
		if len(batch) == 0 {
			return verified, nil
		}

		for _, log := range batch {
			if err := uc.signer.Verify(uc.signingKey, log, prevSignature); err != nil {
				return verified, apperrors.Wrap(err, "access log "+log.ID.String())
			}
			prevSignature = log.Signature
			verified++
		}
	}
}
