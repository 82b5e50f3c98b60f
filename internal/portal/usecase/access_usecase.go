// Package usecase implements the client portal business logic.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/tribunatech/casevault/internal/audit/domain"
	auditUsecase "github.com/tribunatech/casevault/internal/audit/usecase"
	casesDomain "github.com/tribunatech/casevault/internal/cases/domain"
	"github.com/tribunatech/casevault/internal/database"
	"github.com/tribunatech/casevault/internal/portal/domain"
	"github.com/tribunatech/casevault/internal/portal/service"

	apperrors "github.com/tribunatech/casevault/internal/errors"
)

// IssueAccessInput contains the input data for issuing a portal token.
type IssueAccessInput struct {
	ClientID   uuid.UUID
	CaseID     uuid.UUID
	RemoteAddr string
}

// RevokeAccessInput contains the input data for revoking a portal token.
type RevokeAccessInput struct {
	ClientID   uuid.UUID
	CaseID     uuid.UUID
	RemoteAddr string
}

// AccessUseCase defines the interface for portal access grant operations.
// Issue returns the plain token exactly once; afterwards only its hash exists.
type AccessUseCase interface {
	Issue(ctx context.Context, input IssueAccessInput) (*domain.PortalAccess, string, error)
	Validate(ctx context.Context, token, remoteAddr string) (*domain.PortalAccess, error)
	Revoke(ctx context.Context, input RevokeAccessInput) error
}

// PortalAccessRepository defines portal access repository operations.
type PortalAccessRepository interface {
	Create(ctx context.Context, access *domain.PortalAccess) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.PortalAccess, error)
	GetActiveByClientAndCase(ctx context.Context, clientID, caseID uuid.UUID) (*domain.PortalAccess, error)
	TouchLastAccessed(ctx context.Context, id uuid.UUID, at time.Time)
	Revoke(ctx context.Context, id uuid.UUID) error
}

// CaseRepository defines the case lookups the portal module needs.
type CaseRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*casesDomain.Case, error)
}

// AccessAuditor records portal access decisions in the audit chain.
type AccessAuditor interface {
	Record(ctx context.Context, input auditUsecase.RecordAccessInput) error
	RecordBestEffort(ctx context.Context, input auditUsecase.RecordAccessInput)
}

type accessUseCase struct {
	txManager  database.TxManager
	accessRepo PortalAccessRepository
	caseRepo   CaseRepository
	tokens     service.TokenService
	auditor    AccessAuditor
}

// NewAccessUseCase creates a new AccessUseCase.
func NewAccessUseCase(
	txManager database.TxManager,
	accessRepo PortalAccessRepository,
	caseRepo CaseRepository,
	tokens service.TokenService,
	auditor AccessAuditor,
) AccessUseCase {
	return &accessUseCase{
		txManager:  txManager,
		accessRepo: accessRepo,
		caseRepo:   caseRepo,
		tokens:     tokens,
		auditor:    auditor,
	}
}

// Issue creates an access grant for a client and case pair and returns the
// plain token. One active grant per pair; issue a new one after revoking.
func (uc *accessUseCase) Issue(ctx context.Context, input IssueAccessInput) (*domain.PortalAccess, string, error) {
	if input.ClientID == uuid.Nil || input.CaseID == uuid.Nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInvalidInput, "client_id and case_id are required")
	}

	legalCase, err := uc.caseRepo.GetByID(ctx, input.CaseID)
	if err != nil {
		return nil, "", err
	}
	if legalCase.ClientID != input.ClientID {
		return nil, "", apperrors.Wrap(apperrors.ErrInvalidInput, "case does not belong to client")
	}

	if _, err := uc.accessRepo.GetActiveByClientAndCase(ctx, input.ClientID, input.CaseID); err == nil {
		return nil, "", domain.ErrAccessAlreadyExists
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, "", err
	}

	plain, hash, err := uc.tokens.Generate()
	if err != nil {
		return nil, "", err
	}

	access := &domain.PortalAccess{
		ID:        uuid.Must(uuid.NewV7()),
		ClientID:  input.ClientID,
		CaseID:    input.CaseID,
		TokenHash: hash,
		IsActive:  true,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.accessRepo.Create(ctx, access); err != nil {
			return err
		}
		return uc.auditor.Record(ctx, auditUsecase.RecordAccessInput{
			TokenPrefix: uc.tokens.Prefix(hash),
			CaseID:      &access.CaseID,
			Action:      auditDomain.ActionTokenIssued,
			Success:     true,
			RemoteAddr:  input.RemoteAddr,
		})
	})
	if err != nil {
		return nil, "", err
	}

	return access, plain, nil
}

// Validate resolves a plain token to its active grant. Every failure mode
// collapses to ErrInvalidToken and leaves a rejection in the audit chain.
func (uc *accessUseCase) Validate(ctx context.Context, token, remoteAddr string) (*domain.PortalAccess, error) {
	hash := uc.tokens.Hash(token)
	prefix := uc.tokens.Prefix(hash)

	reject := func(caseID *uuid.UUID) (*domain.PortalAccess, error) {
		uc.auditor.RecordBestEffort(ctx, auditUsecase.RecordAccessInput{
			TokenPrefix: prefix,
			CaseID:      caseID,
			Action:      auditDomain.ActionTokenRejected,
			Success:     false,
			RemoteAddr:  remoteAddr,
		})
		return nil, domain.ErrInvalidToken
	}

	if token == "" {
		return reject(nil)
	}

	access, err := uc.accessRepo.GetByTokenHash(ctx, hash)
	if err != nil {
		return reject(nil)
	}
	if !access.IsActive || !service.HashEqual(access.TokenHash, hash) {
		return reject(&access.CaseID)
	}

	uc.accessRepo.TouchLastAccessed(ctx, access.ID, time.Now().UTC())
	return access, nil
}

// Revoke deactivates the active grant for a client and case pair. The token
// stops working immediately; the grant row stays for the audit trail.
func (uc *accessUseCase) Revoke(ctx context.Context, input RevokeAccessInput) error {
	access, err := uc.accessRepo.GetActiveByClientAndCase(ctx, input.ClientID, input.CaseID)
	if err != nil {
		return err
	}

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.accessRepo.Revoke(ctx, access.ID); err != nil {
			return err
		}
		return uc.auditor.Record(ctx, auditUsecase.RecordAccessInput{
			TokenPrefix: uc.tokens.Prefix(access.TokenHash),
			CaseID:      &access.CaseID,
			Action:      auditDomain.ActionTokenRevoked,
			Success:     true,
			RemoteAddr:  input.RemoteAddr,
		})
	})
}
