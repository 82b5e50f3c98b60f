// Package repository provides data persistence implementations for client entities.
//
// Protected attributes are encrypted on write and decrypted on read at this
// layer: rows always hold ciphertext blobs, entities always hold plaintext
// (or the unreadable marker when a blob no longer decrypts).
package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/clients/domain"
	cryptoService "github.com/tribunatech/casevault/internal/crypto/service"
	"github.com/tribunatech/casevault/internal/database"

	apperrors "github.com/tribunatech/casevault/internal/errors"
)

// PostgreSQLClientRepository handles client persistence for PostgreSQL.
type PostgreSQLClientRepository struct {
	db     *sql.DB
	cipher cryptoService.FieldCipher
	hasher cryptoService.LookupHasher
	logger *slog.Logger
}

// NewPostgreSQLClientRepository creates a new PostgreSQLClientRepository.
func NewPostgreSQLClientRepository(
	db *sql.DB,
	cipher cryptoService.FieldCipher,
	hasher cryptoService.LookupHasher,
	logger *slog.Logger,
) *PostgreSQLClientRepository {
	return &PostgreSQLClientRepository{
		db:     db,
		cipher: cipher,
		hasher: hasher,
		logger: logger,
	}
}

// Create inserts a new client, encrypting the protected attributes.
func (r *PostgreSQLClientRepository) Create(ctx context.Context, client *domain.Client) error {
	querier := database.GetTx(ctx, r.db)

	nationalID, ok := client.NationalID.Plaintext()
	if !ok {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "national id must be readable on create")
	}
	phone, ok := client.Phone.Plaintext()
	if !ok {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "phone must be readable on create")
	}

	nationalIDBlob, err := r.cipher.EncryptString(nationalID)
	if err != nil {
		return apperrors.Wrap(err, "failed to encrypt national id")
	}
	phoneBlob, err := r.cipher.EncryptString(phone)
	if err != nil {
		return apperrors.Wrap(err, "failed to encrypt phone")
	}

	query := `INSERT INTO clients (id, full_name, client_type, national_id, national_id_hash, phone, email, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`

	_, err = querier.ExecContext(ctx, query,
		client.ID, client.FullName, client.ClientType,
		nationalIDBlob, r.hasher.Hash(nationalID), phoneBlob, client.Email,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrClientAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create client")
	}
	return nil
}

// GetByID retrieves a client by ID.
func (r *PostgreSQLClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, full_name, client_type, national_id, phone, email, created_at, updated_at
			  FROM clients WHERE id = $1`

	client, err := r.scanClient(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get client by id")
	}
	return client, nil
}

// GetByNationalID retrieves a client by the lookup hash of its national ID.
func (r *PostgreSQLClientRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.Client, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, full_name, client_type, national_id, phone, email, created_at, updated_at
			  FROM clients WHERE national_id_hash = $1`

	client, err := r.scanClient(querier.QueryRowContext(ctx, query, r.hasher.Hash(nationalID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get client by national id")
	}
	return client, nil
}

// List retrieves clients ordered by creation time, newest first.
func (r *PostgreSQLClientRepository) List(ctx context.Context, offset, limit int) ([]*domain.Client, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, full_name, client_type, national_id, phone, email, created_at, updated_at
			  FROM clients ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list clients")
	}
	defer func() { _ = rows.Close() }()

	var clients []*domain.Client
	for rows.Next() {
		client, err := r.scanClient(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan client")
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate clients")
	}
	return clients, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanClient maps a row to a Client, decrypting the protected attributes.
// An attribute that fails to decrypt becomes the unreadable marker; the load
// itself succeeds and the condition is logged with the client id only.
func (r *PostgreSQLClientRepository) scanClient(row rowScanner) (*domain.Client, error) {
	var client domain.Client
	var nationalIDBlob, phoneBlob []byte

	err := row.Scan(
		&client.ID, &client.FullName, &client.ClientType,
		&nationalIDBlob, &phoneBlob, &client.Email,
		&client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	client.NationalID = r.cipher.DecryptValue(nationalIDBlob)
	if client.NationalID.Unreadable() {
		r.logger.Warn("client attribute unreadable", "client_id", client.ID, "attribute", "national_id")
	}
	client.Phone = r.cipher.DecryptValue(phoneBlob)
	if client.Phone.Unreadable() {
		r.logger.Warn("client attribute unreadable", "client_id", client.ID, "attribute", "phone")
	}

	return &client, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
