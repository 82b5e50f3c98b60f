// Package repository provides data persistence implementations for case entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/cases/domain"
	cryptoService "github.com/tribunatech/casevault/internal/crypto/service"
	"github.com/tribunatech/casevault/internal/database"

	apperrors "github.com/tribunatech/casevault/internal/errors"
)

// PostgreSQLCaseRepository handles case persistence for PostgreSQL.
type PostgreSQLCaseRepository struct {
	db     *sql.DB
	cipher cryptoService.FieldCipher
	logger *slog.Logger
}

// NewPostgreSQLCaseRepository creates a new PostgreSQLCaseRepository.
func NewPostgreSQLCaseRepository(
	db *sql.DB,
	cipher cryptoService.FieldCipher,
	logger *slog.Logger,
) *PostgreSQLCaseRepository {
	return &PostgreSQLCaseRepository{
		db:     db,
		cipher: cipher,
		logger: logger,
	}
}

// Create inserts a new case, encrypting the process number.
func (r *PostgreSQLCaseRepository) Create(ctx context.Context, legalCase *domain.Case) error {
	querier := database.GetTx(ctx, r.db)

	processNumber, ok := legalCase.ProcessNumber.Plaintext()
	if !ok {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "process number must be readable on create")
	}

	processNumberBlob, err := r.cipher.EncryptString(processNumber)
	if err != nil {
		return apperrors.Wrap(err, "failed to encrypt process number")
	}

	query := `INSERT INTO cases (id, client_id, title, area, status, process_number, description, risk_level, contingency_cents, entry_date, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())`

	_, err = querier.ExecContext(ctx, query,
		legalCase.ID, legalCase.ClientID, legalCase.Title, legalCase.Area, legalCase.Status,
		processNumberBlob, legalCase.Description, legalCase.RiskLevel, legalCase.ContingencyCents,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create case")
	}
	return nil
}

// GetByID retrieves a case by ID.
func (r *PostgreSQLCaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, client_id, title, area, status, process_number, description, risk_level, contingency_cents, entry_date, updated_at
			  FROM cases WHERE id = $1`

	legalCase, err := r.scanCase(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get case by id")
	}
	return legalCase, nil
}

// List retrieves cases ordered by entry date, newest first.
func (r *PostgreSQLCaseRepository) List(ctx context.Context, offset, limit int) ([]*domain.Case, error) {
	query := `SELECT id, client_id, title, area, status, process_number, description, risk_level, contingency_cents, entry_date, updated_at
			  FROM cases ORDER BY entry_date DESC LIMIT $1 OFFSET $2`

	return r.queryCases(ctx, query, limit, offset)
}

// ListByClient retrieves the cases of a single client, newest first.
func (r *PostgreSQLCaseRepository) ListByClient(
	ctx context.Context,
	clientID uuid.UUID,
	offset, limit int,
) ([]*domain.Case, error) {
	query := `SELECT id, client_id, title, area, status, process_number, description, risk_level, contingency_cents, entry_date, updated_at
			  FROM cases WHERE client_id = $1 ORDER BY entry_date DESC LIMIT $2 OFFSET $3`

	return r.queryCases(ctx, query, clientID, limit, offset)
}

func (r *PostgreSQLCaseRepository) queryCases(ctx context.Context, query string, args ...any) ([]*domain.Case, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list cases")
	}
	defer func() { _ = rows.Close() }()

	var cases []*domain.Case
	for rows.Next() {
		legalCase, err := r.scanCase(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan case")
		}
		cases = append(cases, legalCase)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate cases")
	}
	return cases, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCase maps a row to a Case, decrypting the process number. A process
// number that fails to decrypt becomes the unreadable marker; the load
// continues and the condition is logged with the case id only.
func (r *PostgreSQLCaseRepository) scanCase(row rowScanner) (*domain.Case, error) {
	var legalCase domain.Case
	var processNumberBlob []byte

	err := row.Scan(
		&legalCase.ID, &legalCase.ClientID, &legalCase.Title, &legalCase.Area, &legalCase.Status,
		&processNumberBlob, &legalCase.Description, &legalCase.RiskLevel, &legalCase.ContingencyCents,
		&legalCase.EntryDate, &legalCase.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	legalCase.ProcessNumber = r.cipher.DecryptValue(processNumberBlob)
	if legalCase.ProcessNumber.Unreadable() {
		r.logger.Warn("case attribute unreadable", "case_id", legalCase.ID, "attribute", "process_number")
	}

	return &legalCase, nil
}
