// Package repository provides data persistence implementations for portal access grants.
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

// PostgreSQLPortalAccessRepository handles portal access persistence for PostgreSQL.
type PostgreSQLPortalAccessRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgreSQLPortalAccessRepository creates a new PostgreSQLPortalAccessRepository.
func NewPostgreSQLPortalAccessRepository(db *sql.DB, logger *slog.Logger) *PostgreSQLPortalAccessRepository {
	return &PostgreSQLPortalAccessRepository{db: db, logger: logger}
}

// Create inserts a new portal access grant.
func (r *PostgreSQLPortalAccessRepository) Create(ctx context.Context, access *domain.PortalAccess) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO portal_accesses (id, client_id, case_id, token_hash, is_active, created_at)
			  VALUES ($1, $2, $3, $4, $5, NOW())`

	_, err := querier.ExecContext(ctx, query,
		access.ID, access.ClientID, access.CaseID, access.TokenHash, access.IsActive,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrAccessAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create portal access")
	}
	return nil
}

// GetByTokenHash retrieves an access grant by its token hash, active or not.
func (r *PostgreSQLPortalAccessRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.PortalAccess, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, client_id, case_id, token_hash, is_active, created_at, last_accessed_at
			  FROM portal_accesses WHERE token_hash = $1`

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
func (r *PostgreSQLPortalAccessRepository) GetActiveByClientAndCase(ctx context.Context, clientID, caseID uuid.UUID) (*domain.PortalAccess, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, client_id, case_id, token_hash, is_active, created_at, last_accessed_at
			  FROM portal_accesses WHERE client_id = $1 AND case_id = $2 AND is_active = TRUE`

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
func (r *PostgreSQLPortalAccessRepository) TouchLastAccessed(ctx context.Context, id uuid.UUID, at time.Time) {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE portal_accesses SET last_accessed_at = $1 WHERE id = $2`

	if _, err := querier.ExecContext(ctx, query, at, id); err != nil {
		r.logger.Warn("failed to touch portal access", "access_id", id, "error", err)
	}
}

// Revoke deactivates an access grant.
func (r *PostgreSQLPortalAccessRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE portal_accesses SET is_active = FALSE WHERE id = $1 AND is_active = TRUE`

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

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPortalAccess(row rowScanner) (*domain.PortalAccess, error) {
	var access domain.PortalAccess
	var lastAccessedAt sql.NullTime

	err := row.Scan(
		&access.ID, &access.ClientID, &access.CaseID,
		&access.TokenHash, &access.IsActive, &access.CreatedAt, &lastAccessedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastAccessedAt.Valid {
		access.LastAccessedAt = &lastAccessedAt.Time
	}
	return &access, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
