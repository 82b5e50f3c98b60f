// Package repository provides data persistence implementations for document metadata.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/database"
	"github.com/tribunatech/casevault/internal/documents/domain"

	apperrors "github.com/tribunatech/casevault/internal/errors"
)

// PostgreSQLDocumentRepository handles document metadata persistence for PostgreSQL.
type PostgreSQLDocumentRepository struct {
	db *sql.DB
}

// NewPostgreSQLDocumentRepository creates a new PostgreSQLDocumentRepository.
func NewPostgreSQLDocumentRepository(db *sql.DB) *PostgreSQLDocumentRepository {
	return &PostgreSQLDocumentRepository{db: db}
}

// Create inserts a new document metadata row.
func (r *PostgreSQLDocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO case_documents (id, case_id, document_type, title, description, storage_key, content_type, size_bytes, uploaded_by, visible_to_client, uploaded_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())`

	_, err := querier.ExecContext(ctx, query,
		doc.ID, doc.CaseID, doc.DocumentType, doc.Title, doc.Description,
		doc.StorageKey, doc.ContentType, doc.SizeBytes, doc.UploadedBy, doc.VisibleToClient,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create document")
	}
	return nil
}

// GetByID retrieves a document by ID.
func (r *PostgreSQLDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, case_id, document_type, title, description, storage_key, content_type, size_bytes, uploaded_by, visible_to_client, uploaded_at
			  FROM case_documents WHERE id = $1`

	var doc domain.Document
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&doc.ID, &doc.CaseID, &doc.DocumentType, &doc.Title, &doc.Description,
		&doc.StorageKey, &doc.ContentType, &doc.SizeBytes, &doc.UploadedBy,
		&doc.VisibleToClient, &doc.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get document by id")
	}
	return &doc, nil
}

// ListByCase retrieves all documents of a case, newest first.
func (r *PostgreSQLDocumentRepository) ListByCase(ctx context.Context, caseID uuid.UUID) ([]*domain.Document, error) {
	query := `SELECT id, case_id, document_type, title, description, storage_key, content_type, size_bytes, uploaded_by, visible_to_client, uploaded_at
			  FROM case_documents WHERE case_id = $1 ORDER BY uploaded_at DESC`

	return r.queryDocuments(ctx, query, caseID)
}

// ListVisibleByCase retrieves the client-visible documents of a case, newest first.
func (r *PostgreSQLDocumentRepository) ListVisibleByCase(ctx context.Context, caseID uuid.UUID) ([]*domain.Document, error) {
	query := `SELECT id, case_id, document_type, title, description, storage_key, content_type, size_bytes, uploaded_by, visible_to_client, uploaded_at
			  FROM case_documents WHERE case_id = $1 AND visible_to_client = TRUE ORDER BY uploaded_at DESC`

	return r.queryDocuments(ctx, query, caseID)
}

func (r *PostgreSQLDocumentRepository) queryDocuments(ctx context.Context, query string, args ...any) ([]*domain.Document, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list documents")
	}
	defer func() { _ = rows.Close() }()

	var docs []*domain.Document
	for rows.Next() {
		var doc domain.Document
		err := rows.Scan(
			&doc.ID, &doc.CaseID, &doc.DocumentType, &doc.Title, &doc.Description,
			&doc.StorageKey, &doc.ContentType, &doc.SizeBytes, &doc.UploadedBy,
			&doc.VisibleToClient, &doc.UploadedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan document")
		}
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate documents")
	}
	return docs, nil
}
