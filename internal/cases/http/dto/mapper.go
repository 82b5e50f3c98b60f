// Package dto provides data transfer objects for the case HTTP layer.
package dto

import (
	"github.com/google/uuid"

	"github.com/tribunatech/casevault/internal/cases/domain"
	"github.com/tribunatech/casevault/internal/cases/usecase"
	cryptoDomain "github.com/tribunatech/casevault/internal/crypto/domain"
)

// ToCreateCaseInput converts a CreateCaseRequest DTO to the use case input.
// The actor performing the operation comes from the staff identity header,
// not the request body.
func ToCreateCaseInput(req CreateCaseRequest, clientID uuid.UUID, createdBy string) usecase.CreateCaseInput {
	return usecase.CreateCaseInput{
		ClientID:         clientID,
		Title:            req.Title,
		Area:             req.Area,
		ProcessNumber:    req.ProcessNumber,
		Description:      req.Description,
		RiskLevel:        req.RiskLevel,
		ContingencyCents: req.ContingencyCents,
		CreatedBy:        createdBy,
	}
}

// ToCaseResponse converts a domain Case to a CaseResponse DTO.
func ToCaseResponse(legalCase *domain.Case) CaseResponse {
	return CaseResponse{
		ID:               legalCase.ID,
		ClientID:         legalCase.ClientID,
		Title:            legalCase.Title,
		Area:             string(legalCase.Area),
		Status:           string(legalCase.Status),
		ProcessNumber:    protectedToPtr(legalCase.ProcessNumber),
		Description:      legalCase.Description,
		RiskLevel:        string(legalCase.RiskLevel),
		ContingencyCents: legalCase.ContingencyCents,
		EntryDate:        legalCase.EntryDate,
		UpdatedAt:        legalCase.UpdatedAt,
	}
}

// ToListCasesResponse converts a page of cases to the list response DTO.
func ToListCasesResponse(cases []*domain.Case, offset, limit int) ListCasesResponse {
	items := make([]CaseResponse, 0, len(cases))
	for _, legalCase := range cases {
		items = append(items, ToCaseResponse(legalCase))
	}
	return ListCasesResponse{
		Cases:  items,
		Offset: offset,
		Limit:  limit,
	}
}

func protectedToPtr(value cryptoDomain.ProtectedValue) *string {
	plaintext, ok := value.Plaintext()
	if !ok {
		return nil
	}
	return &plaintext
}
