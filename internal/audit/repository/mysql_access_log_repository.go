package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tribunatech/casevault/internal/audit/domain"
	"github.com/tribunatech/casevault/internal/database"

	apperrors "github.com/tribunatech/casevault/internal/errors"
)

// MySQLAccessLogRepository handles access log persistence for MySQL.
type MySQLAccessLogRepository struct {
	db *sql.DB
}

// NewMySQLAccessLogRepository creates a new MySQLAccessLogRepository.
func NewMySQLAccessLogRepository(db *sql.DB) *MySQLAccessLogRepository {
	return &MySQLAccessLogRepository{db: db}
}

// Create appends a new access log record. The chain position comes from the
// auto-increment column, so rows order totally even at identical timestamps.
func (r *MySQLAccessLogRepository) Create(ctx context.Context, log *domain.AccessLog) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO portal_access_logs (id, token_prefix, case_id, action, success, remote_addr, signature, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

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
func (r *MySQLAccessLogRepository) LastSignature(ctx context.Context) ([]byte, error) {
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
func (r *MySQLAccessLogRepository) List(ctx context.Context, offset, limit int) ([]*domain.AccessLog, error) {
	query := `SELECT id, token_prefix, case_id, action, success, remote_addr, signature, created_at
			  FROM portal_access_logs ORDER BY position DESC LIMIT ? OFFSET ?`
	return r.queryLogs(ctx, query, limit, offset)
}

// ListChronological retrieves access logs in chain order for verification.
func (r *MySQLAccessLogRepository) ListChronological(ctx context.Context, offset, limit int) ([]*domain.AccessLog, error) {
	query := `SELECT id, token_prefix, case_id, action, success, remote_addr, signature, created_at
			  FROM portal_access_logs ORDER BY position ASC LIMIT ? OFFSET ?`
	return r.queryLogs(ctx, query, limit, offset)
}

func (r *MySQLAccessLogRepository) queryLogs(ctx context.Context, query string, args ...any) ([]*domain.AccessLog, error) {
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
