// Package validation provides custom validation rules for request DTOs.
package validation

import (
	"net/mail"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/tribunatech/casevault/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that a string has no leading or trailing whitespace.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// Email validates that a string is a well-formed email address.
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := mail.ParseAddress(s)
		return err == nil
	},
	validation.NewError("validation_email", "must be a valid email address"),
)

// Digits validates that a string contains only decimal digits. Used for
// national registry numbers (CPF/CNPJ) after punctuation stripping.
var Digits = validation.NewStringRuleWithError(
	func(s string) bool {
		if s == "" {
			return false
		}
		for _, r := range s {
			if !unicode.IsDigit(r) {
				return false
			}
		}
		return true
	},
	validation.NewError("validation_digits", "must contain only digits"),
)
