// Package dto provides data transfer objects for the client HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/tribunatech/casevault/internal/validation"
)

// CreateClientRequest represents the API request for client registration.
type CreateClientRequest struct {
	FullName   string `json:"full_name"`
	ClientType string `json:"client_type"`
	NationalID string `json:"national_id"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// Validate checks the request shape. Business rules (national id digit
// count, client type catalog) are enforced by the use case.
func (r *CreateClientRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.FullName,
			validation.Required.Error("full_name is required"),
			appValidation.NotBlank,
		),
		validation.Field(&r.ClientType,
			validation.Required.Error("client_type is required"),
		),
		validation.Field(&r.NationalID,
			validation.Required.Error("national_id is required"),
			appValidation.NotBlank,
		),
		validation.Field(&r.Phone,
			validation.Required.Error("phone is required"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}
