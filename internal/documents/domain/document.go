// Package domain defines the case document domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/errors"
)

// DocumentType classifies a case document.
type DocumentType string

const (
	DocumentTypePetition       DocumentType = "PETITION"
	DocumentTypeEvidence       DocumentType = "EVIDENCE"
	DocumentTypeCourtOrder     DocumentType = "COURT_ORDER"
	DocumentTypeCorrespondence DocumentType = "CORRESPONDENCE"
	DocumentTypeContract       DocumentType = "CONTRACT"
	DocumentTypeOther          DocumentType = "OTHER"
)

// ParseDocumentType converts a string into a DocumentType.
func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(s) {
	case DocumentTypePetition, DocumentTypeEvidence, DocumentTypeCourtOrder,
		DocumentTypeCorrespondence, DocumentTypeContract, DocumentTypeOther:
		return DocumentType(s), nil
	default:
		return "", ErrInvalidDocumentType
	}
}

// Document is the metadata record of a file attached to a case. The bytes
// themselves live in the blob store under StorageKey; rows never carry file
// content. VisibleToClient controls whether the document appears in the
// portal projection.
type Document struct {
	ID              uuid.UUID
	CaseID          uuid.UUID
	DocumentType    DocumentType
	Title           string
	Description     string
	StorageKey      string
	ContentType     string
	SizeBytes       int64
	UploadedBy      string
	VisibleToClient bool
	UploadedAt      time.Time
}

// Domain-specific errors for document operations.
var (
	// ErrDocumentNotFound indicates the requested document does not exist.
	ErrDocumentNotFound = errors.Wrap(errors.ErrNotFound, "document not found")

	// ErrInvalidDocumentType indicates a document type outside the catalog.
	ErrInvalidDocumentType = errors.Wrap(errors.ErrInvalidInput, "invalid document type")

	// ErrEmptyDocument indicates an upload without file content.
	ErrEmptyDocument = errors.Wrap(errors.ErrInvalidInput, "document content is empty")
)
