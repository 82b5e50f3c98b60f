// Package dto provides data transfer objects for the case HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/tribunatech/casevault/internal/validation"
)

// CreateCaseRequest represents the API request for case registration.
// ContingencyCents carries the provisioned contingency value in cents.
type CreateCaseRequest struct {
	ClientID         string `json:"client_id"`
	Title            string `json:"title"`
	Area             string `json:"area"`
	ProcessNumber    string `json:"process_number"`
	Description      string `json:"description"`
	RiskLevel        string `json:"risk_level"`
	ContingencyCents int64  `json:"contingency_cents"`
}

// Validate checks the request shape. Catalog membership (area, risk level)
// is enforced by the use case.
func (r *CreateCaseRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.ClientID,
			validation.Required.Error("client_id is required"),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
		),
		validation.Field(&r.Area,
			validation.Required.Error("area is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}
