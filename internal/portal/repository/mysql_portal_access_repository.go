package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/database"
	"github.com/tribunatech/casevault/internal/portal/domain"

	apperrors "github.com/tribunatech/casevault/internal/errors"
)

// MySQLPortalAccessRepository handles portal access persistence for MySQL.
type MySQLPortalAccessRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewMySQLPortalAccessRepository creates a new MySQLPortalAccessRepository.
func NewMySQLPortalAccessRepository(db *sql.DB, logger *slog.Logger) *MySQLPortalAccessRepository {
	return &MySQLPortalAccessRepository{db: db, logger: logger}
}

// Create inserts a new portal access grant.
func (r *MySQLPortalAccessRepository) Create(ctx context.Context, access *domain.PortalAccess) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO portal_accesses (id, client_id, case_id, token_hash, is_active, created_at)
			  VALUES (?, ?, ?, ?, ?, NOW())`

	_, err := querier.ExecContext(ctx, query,
		access.ID, access.ClientID, access.CaseID, access.TokenHash, access.IsActive,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrAccessAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create portal access")
	}
	return nil
}

// GetByTokenHash retrieves an access grant by its token hash, active or not.
func (r *MySQLPortalAccessRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.PortalAccess, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, client_id, case_id, token_hash, is_active, created_at, last_accessed_at
			  FROM portal_accesses WHERE token_hash = ?`

	access, err := scanPortalAccess(querier.QueryRowContext(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccessNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get portal access by token hash")
	}
	return access, nil
}

// GetActiveByClientAndCase retrieves the active grant for a client and case pair.
func (r *MySQLPortalAccessRepository) GetActiveByClientAndCase(ctx context.Context, clientID, caseID uuid.UUID) (*domain.PortalAccess, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, client_id, case_id, token_hash, is_active, created_at, last_accessed_at
			  FROM portal_accesses WHERE client_id = ? AND case_id = ? AND is_active = TRUE`

	access, err := scanPortalAccess(querier.QueryRowContext(ctx, query, clientID, caseID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccessNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get active portal access")
	}
	return access, nil
}

// TouchLastAccessed records the access time on a grant. Failures are logged
// and swallowed so a metadata update can never block a valid portal request.
func (r *MySQLPortalAccessRepository) TouchLastAccessed(ctx context.Context, id uuid.UUID, at time.Time) {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE portal_accesses SET last_accessed_at = ? WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, at, id); err != nil {
		r.logger.Warn("failed to touch portal access", "access_id", id, "error", err)
	}
}

// Revoke deactivates an access grant.
func (r *MySQLPortalAccessRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE portal_accesses SET is_active = FALSE WHERE id = ? AND is_active = TRUE`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke portal access")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check revoked rows")
	}
	if affected == 0 {
		return domain.ErrAccessNotFound
	}
	return nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "error 1062") || strings.Contains(errMsg, "duplicate entry")
}
