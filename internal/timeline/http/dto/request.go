// Package dto provides data transfer objects for the timeline HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/tribunatech/casevault/internal/validation"
)

// AdvanceStageRequest represents the API request for advancing a case's journey.
type AdvanceStageRequest struct {
	Stage string `json:"stage"`
	Notes string `json:"notes"`
}

// Validate checks the request shape. Stage catalog membership and the
// monotonic transition rule are enforced by the domain.
func (r *AdvanceStageRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Stage,
			validation.Required.Error("stage is required"),
			appValidation.NotBlank,
		),
		validation.Field(&r.Notes,
			validation.Length(0, 2000).Error("notes must be at most 2000 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}
