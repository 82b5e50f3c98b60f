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

// MySQLClientRepository handles client persistence for MySQL.
type MySQLClientRepository struct {
	db     *sql.DB
	cipher cryptoService.FieldCipher
	hasher cryptoService.LookupHasher
	logger *slog.Logger
}

// NewMySQLClientRepository creates a new MySQLClientRepository.
func NewMySQLClientRepository(
	db *sql.DB,
	cipher cryptoService.FieldCipher,
	hasher cryptoService.LookupHasher,
	logger *slog.Logger,
) *MySQLClientRepository {
	return &MySQLClientRepository{
		db:     db,
		cipher: cipher,
		hasher: hasher,
		logger: logger,
	}
}

// Create inserts a new client, encrypting the protected attributes.
func (r *MySQLClientRepository) Create(ctx context.Context, client *domain.Client) error {
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
			  VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err = querier.ExecContext(ctx, query,
		client.ID, client.FullName, client.ClientType,
		nationalIDBlob, r.hasher.Hash(nationalID), phoneBlob, client.Email,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrClientAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create client")
	}
	return nil
}

// GetByID retrieves a client by ID.
func (r *MySQLClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, full_name, client_type, national_id, phone, email, created_at, updated_at
			  FROM clients WHERE id = ?`

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
func (r *MySQLClientRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.Client, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, full_name, client_type, national_id, phone, email, created_at, updated_at
			  FROM clients WHERE national_id_hash = ?`

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
func (r *MySQLClientRepository) List(ctx context.Context, offset, limit int) ([]*domain.Client, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, full_name, client_type, national_id, phone, email, created_at, updated_at
			  FROM clients ORDER BY created_at DESC LIMIT ? OFFSET ?`

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

// scanClient maps a row to a Client, decrypting the protected attributes.
func (r *MySQLClientRepository) scanClient(row rowScanner) (*domain.Client, error) {
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

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "error 1062") || strings.Contains(errMsg, "duplicate entry")
}
