// Package repository provides data persistence implementations for portal access logs.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/audit/domain"
	"github.com/tribunatech/casevault/internal/database"

	apperrors "github.com/tribunatech/casevault/internal/errors"
)

// PostgreSQLAccessLogRepository handles access log persistence for PostgreSQL.
type PostgreSQLAccessLogRepository struct {
	db *sql.DB
}

// NewPostgreSQLAccessLogRepository creates a new PostgreSQLAccessLogRepository.
func NewPostgreSQLAccessLogRepository(db *sql.DB) *PostgreSQLAccessLogRepository {
	return &PostgreSQLAccessLogRepository{db: db}
}

// Create appends a new access log record. The chain position comes from the
// database sequence, so rows order totally even at identical timestamps.
func (r *PostgreSQLAccessLogRepository) Create(ctx context.Context, log *domain.AccessLog) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO portal_access_logs (id, token_prefix, case_id, action, success, remote_addr, signature, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(ctx, query,
		log.ID, log.TokenPrefix, caseIDParam(log.CaseID), log.Action,
		log.Success, log.RemoteAddr, log.Signature, log.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create access log")
	}
	return nil
}

// LastSignature returns the signature of the newest record, locking it for
// the duration of the transaction so concurrent appends chain correctly.
// Returns nil on an empty chain.
func (r *PostgreSQLAccessLogRepository) LastSignature(ctx context.Context) ([]byte, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT signature FROM portal_access_logs ORDER BY position DESC LIMIT 1 FOR UPDATE`

	var signature []byte
	err := querier.QueryRowContext(ctx, query).Scan(&signature)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "failed to get last access log signature")
	}
	return signature, nil
}

// List retrieves access logs newest first for the staff API.
func (r *PostgreSQLAccessLogRepository) List(ctx context.Context, offset, limit int) ([]*domain.AccessLog, error) {
	query := `SELECT id, token_prefix, case_id, action, success, remote_addr, signature, created_at
			  FROM portal_access_logs ORDER BY position DESC LIMIT $1 OFFSET $2`
	return r.queryLogs(ctx, query, limit, offset)
}

// ListChronological retrieves access logs in chain order for verification.
func (r *PostgreSQLAccessLogRepository) ListChronological(ctx context.Context, offset, limit int) ([]*domain.AccessLog, error) {
	query := `SELECT id, token_prefix, case_id, action, success, remote_addr, signature, created_at
			  FROM portal_access_logs ORDER BY position ASC LIMIT $1 OFFSET $2`
	return r.queryLogs(ctx, query, limit, offset)
}

func (r *PostgreSQLAccessLogRepository) queryLogs(ctx context.Context, query string, args ...any) ([]*domain.AccessLog, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list access logs")
	}
	defer func() { _ = rows.Close() }()

	var logs []*domain.AccessLog
	for rows.Next() {
		log, err := scanAccessLog(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan access log")
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate access logs")
	}
	return logs, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccessLog(row rowScanner) (*domain.AccessLog, error) {
	var log domain.AccessLog
	var caseID uuid.NullUUID

	err := row.Scan(
		&log.ID, &log.TokenPrefix, &caseID, &log.Action,
		&log.Success, &log.RemoteAddr, &log.Signature, &log.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if caseID.Valid {
		log.CaseID = &caseID.UUID
	}
	return &log, nil
}

func caseIDParam(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
