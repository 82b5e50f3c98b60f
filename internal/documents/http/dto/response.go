// Package dto provides data transfer objects for the document HTTP layer.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/documents/domain"
)

// DocumentResponse represents a document in staff API responses.
type DocumentResponse struct {
	ID              uuid.UUID `json:"id"`
	CaseID          uuid.UUID `json:"case_id"`
	DocumentType    string    `json:"document_type"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	ContentType     string    `json:"content_type"`
	SizeBytes       int64     `json:"size_bytes"`
	UploadedBy      string    `json:"uploaded_by"`
	VisibleToClient bool      `json:"visible_to_client"`
	UploadedAt      time.Time `json:"uploaded_at"`
}

// ToDocumentResponse maps a document to the API response.
func ToDocumentResponse(doc *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:              doc.ID,
		CaseID:          doc.CaseID,
		DocumentType:    string(doc.DocumentType),
		Title:           doc.Title,
		Description:     doc.Description,
		ContentType:     doc.ContentType,
		SizeBytes:       doc.SizeBytes,
		UploadedBy:      doc.UploadedBy,
		VisibleToClient: doc.VisibleToClient,
		UploadedAt:      doc.UploadedAt,
	}
}

// ListDocumentsResponse represents a document listing.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// ToListDocumentsResponse maps documents to the listing response.
func ToListDocumentsResponse(docs []*domain.Document) ListDocumentsResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, ToDocumentResponse(doc))
	}
	return ListDocumentsResponse{Documents: out}
}
