// Package dto provides data transfer objects for the case HTTP layer.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// CaseResponse represents the API response for a case.
// ProcessNumber is null when the stored ciphertext no longer decrypts.
type CaseResponse struct {
	ID               uuid.UUID `json:"id"`
	ClientID         uuid.UUID `json:"client_id"`
	Title            string    `json:"title"`
	Area             string    `json:"area"`
	Status           string    `json:"status"`
	ProcessNumber    *string   `json:"process_number"`
	Description      string    `json:"description"`
	RiskLevel        string    `json:"risk_level"`
	ContingencyCents int64     `json:"contingency_cents"`
	EntryDate        time.Time `json:"entry_date"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ListCasesResponse represents a paginated list of cases.
type ListCasesResponse struct {
	Cases  []CaseResponse `json:"cases"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}
