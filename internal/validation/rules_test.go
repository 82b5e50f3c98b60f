package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/tribunatech/casevault/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, WrapValidationError(nil))
	})

	t.Run("wraps as invalid input", func(t *testing.T) {
		err := WrapValidationError(apperrors.New("title: must not be blank"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid string", "hello", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only tabs and newlines", "\t\n", true},
		{"string with surrounding spaces", "  hello  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NotBlank.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, NoWhitespace.Validate("token-value"))
	assert.Error(t, NoWhitespace.Validate(" token-value"))
	assert.Error(t, NoWhitespace.Validate("token-value "))
}

func TestDigits(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"cpf digits", "52998224725", false},
		{"cnpj digits", "11222333000181", false},
		{"empty", "", true},
		{"punctuation", "529.982.247-25", true},
		{"letters", "5299822472a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Digits.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email.Validate("maria@example.com"))
	assert.Error(t, Email.Validate("not-an-email"))
	assert.Error(t, Email.Validate("@example.com"))
}
