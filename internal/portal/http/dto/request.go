// Package dto provides data transfer objects for the portal HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/tribunatech/casevault/internal/validation"
)

// IssueAccessRequest represents the staff API request for issuing a portal token.
type IssueAccessRequest struct {
	ClientID string `json:"client_id"`
	CaseID   string `json:"case_id"`
}

// Validate checks the request shape. UUID parsing happens in the handler.
func (r *IssueAccessRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.ClientID,
			validation.Required.Error("client_id is required"),
		),
		validation.Field(&r.CaseID,
			validation.Required.Error("case_id is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// RevokeAccessRequest represents the staff API request for revoking a portal token.
type RevokeAccessRequest struct {
	ClientID string `json:"client_id"`
	CaseID   string `json:"case_id"`
}

// Validate checks the request shape.
func (r *RevokeAccessRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.ClientID,
			validation.Required.Error("client_id is required"),
		),
		validation.Field(&r.CaseID,
			validation.Required.Error("case_id is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}
