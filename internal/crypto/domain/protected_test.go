package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtectedValue_Readable(t *testing.T) {
	v := NewProtectedValue("529.982.247-25")

	plaintext, ok := v.Plaintext()
	assert.True(t, ok)
	assert.Equal(t, "529.982.247-25", plaintext)
	assert.False(t, v.Unreadable())
}

func TestProtectedValue_EmptyIsReadable(t *testing.T) {
	v := NewProtectedValue("")

	plaintext, ok := v.Plaintext()
	assert.True(t, ok, "empty plaintext is readable, not unreadable")
	assert.Empty(t, plaintext)
	assert.False(t, v.Unreadable())
}

func TestProtectedValue_Unreadable(t *testing.T) {
	v := UnreadableValue()

	plaintext, ok := v.Plaintext()
	assert.False(t, ok)
	assert.Empty(t, plaintext)
	assert.True(t, v.Unreadable())
}

func TestProtectedValue_StringNeverLeaksPlaintext(t *testing.T) {
	v := NewProtectedValue("sensitive-cpf")

	assert.NotContains(t, fmt.Sprintf("%v", v), "sensitive-cpf")
	assert.Equal(t, "[protected]", v.String())
	assert.Equal(t, "[unreadable]", UnreadableValue().String())
}

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3}
	Zero(b)
	assert.Equal(t, []byte{0, 0, 0}, b)

	// nil-safe
	Zero(nil)
}
