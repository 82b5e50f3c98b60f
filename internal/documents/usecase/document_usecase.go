// Package usecase implements the case document business logic.
package usecase

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	casesDomain "github.com/tribunatech/casevault/internal/cases/domain"
	"github.com/tribunatech/casevault/internal/documents/domain"
	"github.com/tribunatech/casevault/internal/documents/service"
	appValidation "github.com/tribunatech/casevault/internal/validation"
)

// maxDocumentSize bounds uploads at 25 MiB.
const maxDocumentSize = 25 << 20

// UploadDocumentInput contains the input data for a document upload.
type UploadDocumentInput struct {
	CaseID          uuid.UUID
	DocumentType    string
	Title           string
	Description     string
	Content         []byte
	ContentType     string
	UploadedBy      string
	VisibleToClient bool
}

// DocumentUseCase defines the interface for document business logic operations.
type DocumentUseCase interface {
	Upload(ctx context.Context, input UploadDocumentInput) (*domain.Document, error)
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]*domain.Document, error)
	ListVisibleByCase(ctx context.Context, caseID uuid.UUID) ([]*domain.Document, error)
}

// DocumentRepository defines document metadata repository operations.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]*domain.Document, error)
	ListVisibleByCase(ctx context.Context, caseID uuid.UUID) ([]*domain.Document, error)
}

// CaseRepository defines the case lookups the document module needs.
type CaseRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*casesDomain.Case, error)
}

type documentUseCase struct {
	documentRepo DocumentRepository
	caseRepo     CaseRepository
	fileStore    service.FileStore
}

// NewDocumentUseCase creates a new DocumentUseCase.
func NewDocumentUseCase(
	documentRepo DocumentRepository,
	caseRepo CaseRepository,
	fileStore service.FileStore,
) DocumentUseCase {
	return &documentUseCase{
		documentRepo: documentRepo,
		caseRepo:     caseRepo,
		fileStore:    fileStore,
	}
}

func (uc *documentUseCase) validateUploadInput(input UploadDocumentInput) error {
	if len(input.Content) == 0 {
		return domain.ErrEmptyDocument
	}

	err := validation.ValidateStruct(&input,
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&input.DocumentType,
			validation.Required.Error("document_type is required"),
		),
		validation.Field(&input.UploadedBy,
			validation.Required.Error("uploaded_by is required"),
			appValidation.NotBlank,
		),
		validation.Field(&input.Content,
			validation.Length(0, maxDocumentSize).Error("document exceeds the maximum size"),
		),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	if input.CaseID == uuid.Nil {
		return appValidation.WrapValidationError(validation.NewError("validation_required", "case_id is required"))
	}
	return nil
}

// Upload stores the document bytes in the blob store and records the
// metadata row. The bytes go to the store first: an orphan blob is harmless,
// a metadata row pointing at nothing is not.
func (uc *documentUseCase) Upload(ctx context.Context, input UploadDocumentInput) (*domain.Document, error) {
	if err := uc.validateUploadInput(input); err != nil {
		return nil, err
	}

	documentType, err := domain.ParseDocumentType(input.DocumentType)
	if err != nil {
		return nil, err
	}

	if _, err := uc.caseRepo.GetByID(ctx, input.CaseID); err != nil {
		return nil, err
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	doc := &domain.Document{
		ID:              uuid.Must(uuid.NewV7()),
		CaseID:          input.CaseID,
		DocumentType:    documentType,
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		ContentType:     contentType,
		SizeBytes:       int64(len(input.Content)),
		UploadedBy:      input.UploadedBy,
		VisibleToClient: input.VisibleToClient,
	}
	doc.StorageKey = fmt.Sprintf("cases/%s/%s", input.CaseID, doc.ID)

	if err := uc.fileStore.Put(ctx, doc.StorageKey, input.Content, contentType); err != nil {
		return nil, err
	}

	if err := uc.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// ListByCase retrieves all documents of a case for the staff surface.
func (uc *documentUseCase) ListByCase(ctx context.Context, caseID uuid.UUID) ([]*domain.Document, error) {
	if _, err := uc.caseRepo.GetByID(ctx, caseID); err != nil {
		return nil, err
	}
	return uc.documentRepo.ListByCase(ctx, caseID)
}

// ListVisibleByCase retrieves the client-visible documents of a case for the
// portal projection.
func (uc *documentUseCase) ListVisibleByCase(ctx context.Context, caseID uuid.UUID) ([]*domain.Document, error) {
	return uc.documentRepo.ListVisibleByCase(ctx, caseID)
}
